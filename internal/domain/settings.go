package domain

// Settings is the single administrative configuration document stored at
// the "settings" path.
type Settings struct {
	SiteName                 string `json:"siteName"`
	NotificationEmail        string `json:"notificationEmail"`
	LowStockThreshold        int    `json:"lowStockThreshold"`
	AutoApproveRequests      bool   `json:"autoApproveRequests"`
	DefaultBorrowDays        int    `json:"defaultBorrowDays"`
	RequirePurpose           bool   `json:"requirePurpose"`
	SendEmailNotifications   bool   `json:"sendEmailNotifications"`
	AllowStudentRegistration bool   `json:"allowStudentRegistration"`
	NotifyOnMetricAlerts     bool   `json:"notifyOnMetricAlerts"`
}

// DefaultSettings mirrors the values the system ships with before an admin
// saves the settings screen for the first time.
func DefaultSettings() Settings {
	return Settings{
		SiteName:                 "Smart Lab Inventory & Monitoring System",
		NotificationEmail:        "admin@admin.com",
		LowStockThreshold:        20,
		AutoApproveRequests:      false,
		DefaultBorrowDays:        7,
		RequirePurpose:           true,
		SendEmailNotifications:   true,
		AllowStudentRegistration: false,
		NotifyOnMetricAlerts:     true,
	}
}
