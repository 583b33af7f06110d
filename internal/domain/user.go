package domain

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Department   string `json:"department,omitempty"`
	StudentID    string `json:"studentId,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

// Session identifies the authenticated actor of an operation. It is passed
// explicitly into services rather than read from ambient state.
type Session struct {
	UserID string
	Name   string
	Role   Role
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
