package user

import (
	"strings"
	"time"
)

// User is a pool participant. Email is the natural key and is stored
// lowercased.
type User struct {
	ID        int64
	Email     string
	Name      string
	IsAdmin   bool
	CreatedAt time.Time
}

// Session is an opaque-token login session. Creation and password
// handling live outside this core; the core only validates tokens.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
