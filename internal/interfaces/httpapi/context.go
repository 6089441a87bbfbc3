package httpapi

import (
	"context"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
)

type contextKey string

const sessionUserContextKey contextKey = "session_user"

func withSessionUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, sessionUserContextKey, u)
}

func sessionUserFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(sessionUserContextKey).(user.User)
	return u, ok
}
