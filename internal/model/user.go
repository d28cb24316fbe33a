package model

import "time"

// Roles form a closed set; RoleViewer is the least privileged and the
// registration default.
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
	RoleViewer  = "viewer"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAnalyst, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name,omitempty"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TokenClaims is the decoded content of a session token. Validity of the
// session itself is decided by the auth service, not by these fields alone.
type TokenClaims struct {
	UserID    string
	Username  string
	Email     string
	Role      string
	ExpiresAt time.Time
}
