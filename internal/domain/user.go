package domain

import "time"

type UserID string

type Role string

const (
	RoleWriter Role = "writer"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID          UserID
	Email       string
	DisplayName string
	Role        Role
	CreatedAt   time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Name returns the display name, falling back to the email address.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}

	return u.Email
}
