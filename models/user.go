package models

// Role names used by the platform. Only admins may use this client.
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// UserProfile is a platform account as seen by administrators.
type UserProfile struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role,omitempty"`
}
