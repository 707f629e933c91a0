package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayName falls back to the mailbox part of the email when no name is set.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// UserAccount is the admin console view of a user with per-user activity counts.
type UserAccount struct {
	User
	TotalAnalyses int `json:"total_analyses"`
	TotalReports  int `json:"total_reports"`
}

// Profile is the self-service view of an account.
type Profile struct {
	User
	LastActivity  time.Time `json:"last_activity"`
	TotalAnalyses int       `json:"total_analyses"`
	TotalReports  int       `json:"total_reports"`
}

// Principal identifies the authenticated caller for authorization decisions.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
