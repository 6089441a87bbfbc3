package user

import (
	"context"
	"time"
)

// Repository describes user/session persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	// UpsertByEmail finds or creates a user keyed by normalized email.
	// A non-empty name replaces the stored one.
	UpsertByEmail(ctx context.Context, email, name string) (User, error)
	SetAdmin(ctx context.Context, userID int64, isAdmin bool) error
	// GetBySessionToken resolves a session token to its user; the
	// second return is false for unknown or expired tokens.
	GetBySessionToken(ctx context.Context, token string, now time.Time) (User, bool, error)
}
