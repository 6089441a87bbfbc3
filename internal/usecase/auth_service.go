package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
)

type AuthService struct {
	userRepo user.Repository
	now      func() time.Time
}

func NewAuthService(userRepo user.Repository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// ValidateSession resolves a session token to its user. Expired or
// unknown tokens return ErrUnauthorized.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ValidateSession")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return user.User{}, fmt.Errorf("%w: session token is required", ErrUnauthorized)
	}

	owner, exists, err := s.userRepo.GetBySessionToken(ctx, token, s.now().UTC())
	if err != nil {
		return user.User{}, fmt.Errorf("get user by session token: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: invalid or expired session", ErrUnauthorized)
	}

	return owner, nil
}
