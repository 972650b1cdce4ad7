package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ValidRole reports whether role is one of the two enumerated values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// ValidStatus reports whether status is one of the two enumerated values.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

// User models an administrable account. PasswordHash is write-only and never
// serialized into API responses.
type User struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UpdatedBy    string    `json:"updated_by,omitempty"`
}
