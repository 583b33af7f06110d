package domain

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Recipient addresses a notification either to a single user or to every
// user holding a role. Exactly one of UserID and Role is set.
type Recipient struct {
	UserID string `json:"userId,omitempty"`
	Role   Role   `json:"role,omitempty"`
}

func RecipientUser(userID string) Recipient {
	return Recipient{UserID: userID}
}

func RecipientRole(role Role) Recipient {
	return Recipient{Role: role}
}

// Matches reports whether a notification addressed to r should be shown to
// the given user.
func (r Recipient) Matches(userID string, role Role) bool {
	if r.UserID != "" {
		return r.UserID == userID
	}
	return r.Role == role
}

type Notification struct {
	ID        string           `json:"id"`
	Recipient Recipient        `json:"recipient"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	Date      string           `json:"date"`
	Type      NotificationType `json:"type"`
}
