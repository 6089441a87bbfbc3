package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
)

type stubRosterProvider struct {
	players []player.Player
	err     error

	gotPos   player.Position
	gotQuery string
}

func (p *stubRosterProvider) SearchPlayoffPlayers(_ context.Context, pos player.Position, query string) ([]player.Player, error) {
	p.gotPos = pos
	p.gotQuery = query
	return p.players, p.err
}

func TestRosterService_SearchPlayers(t *testing.T) {
	t.Parallel()

	provider := &stubRosterProvider{players: []player.Player{
		{ID: "1", Name: "Josh Allen", Team: "BUF", Position: player.PositionQB},
	}}
	svc := NewRosterService(provider)

	got, err := svc.SearchPlayers(t.Context(), SearchPlayersInput{Position: "qb", Query: " allen "})
	if err != nil {
		t.Fatalf("search players: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Josh Allen" {
		t.Fatalf("unexpected players: %+v", got)
	}
	if provider.gotPos != player.PositionQB {
		t.Errorf("position = %q, want QB", provider.gotPos)
	}
	if provider.gotQuery != "allen" {
		t.Errorf("query = %q, want trimmed", provider.gotQuery)
	}
}

func TestRosterService_SearchPlayers_InvalidPosition(t *testing.T) {
	t.Parallel()

	svc := NewRosterService(&stubRosterProvider{})

	_, err := svc.SearchPlayers(t.Context(), SearchPlayersInput{Position: "K"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_SearchPlayers_ProviderDown(t *testing.T) {
	t.Parallel()

	svc := NewRosterService(&stubRosterProvider{err: errors.New("timeout")})

	_, err := svc.SearchPlayers(t.Context(), SearchPlayersInput{Position: "WR"})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
