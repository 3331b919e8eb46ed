package models

import (
	"time"
)

// Auth flag values stored on users.auth
const (
	AuthNormal = "0"
	AuthAdmin  = "1"
)

// PlaceholderToken is sent by clients that are not logged in
const PlaceholderToken = "default_token"

// User represents a registered account. Password holds a bcrypt hash.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	Auth      string    `json:"auth" db:"auth"`
	Token     string    `json:"-" db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsAdmin reports whether the auth flag grants admin access
func (u *User) IsAdmin() bool {
	return u != nil && u.Auth == AuthAdmin
}

// LoginRequest is the /auth/login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the /auth/register payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
