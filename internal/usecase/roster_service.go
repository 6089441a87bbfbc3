package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
)

type RosterService struct {
	provider RosterProvider
}

func NewRosterService(provider RosterProvider) *RosterService {
	return &RosterService{provider: provider}
}

type SearchPlayersInput struct {
	Position string
	Query    string
}

// SearchPlayers looks up playoff-eligible players by position and name
// fragment. An empty query returns the full position pool.
func (s *RosterService) SearchPlayers(ctx context.Context, input SearchPlayersInput) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SearchPlayers")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: roster provider is not configured", ErrDependencyUnavailable)
	}

	pos, err := player.ParsePosition(input.Position)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	players, err := s.provider.SearchPlayoffPlayers(ctx, pos, strings.TrimSpace(input.Query))
	if err != nil {
		return nil, fmt.Errorf("%w: search players: %v", ErrProviderUnavailable, err)
	}

	return players, nil
}
