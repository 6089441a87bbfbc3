package usecase

import (
	"context"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
)

// RosterProvider serves the searchable pool of playoff-eligible players.
type RosterProvider interface {
	// SearchPlayoffPlayers returns active players on playoff teams at the
	// given position whose name contains the query, sorted by name.
	SearchPlayoffPlayers(ctx context.Context, pos player.Position, query string) ([]player.Player, error)
}

// StatsProvider fetches per-week fantasy points for a single player.
type StatsProvider interface {
	// WeeklyStats returns PPR points keyed by week number. Weeks without
	// recorded points are absent from the map.
	WeeklyStats(ctx context.Context, playerID string) (map[int]float64, error)
}
