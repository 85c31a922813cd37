package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Role decides which screen a user lands on after login.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ErrUserNotFound is returned by UserStore.FindUser when no row matches.
var ErrUserNotFound = errors.New("user not found")

// User is an account record. PasswordHash is opaque here; hashing and
// verification belong to the login collaborator.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin matches the role case-insensitively.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(string(u.Role), string(RoleAdmin))
}

// UserStore is the account lookup the canvas host depends on.
type UserStore interface {
	FindUser(ctx context.Context, username string) (*User, error)
	InsertUser(ctx context.Context, username, passwordHash string, role Role) (bool, error)
}
