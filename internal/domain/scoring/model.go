package scoring

import (
	"fmt"
	"math"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
)

const (
	SeasonTypeRegular = "regular"
	SeasonTypePost    = "post"
)

// Window fixes which weeks of which season count toward totals. It is
// loaded once at startup and never changes for the lifetime of the
// process; weeks outside the set are ignored even when stats exist.
type Window struct {
	Season     string
	SeasonType string
	Weeks      []int
}

func (w Window) Validate() error {
	if w.Season == "" {
		return fmt.Errorf("season is required")
	}
	if w.SeasonType != SeasonTypeRegular && w.SeasonType != SeasonTypePost {
		return fmt.Errorf("invalid season type %q: valid values are %s, %s", w.SeasonType, SeasonTypeRegular, SeasonTypePost)
	}
	if len(w.Weeks) == 0 {
		return fmt.Errorf("scoring weeks cannot be empty")
	}
	seen := make(map[int]struct{}, len(w.Weeks))
	for _, week := range w.Weeks {
		if week < 1 {
			return fmt.Errorf("scoring week must be >= 1, got %d", week)
		}
		if _, dup := seen[week]; dup {
			return fmt.Errorf("duplicate scoring week %d", week)
		}
		seen[week] = struct{}{}
	}
	return nil
}

// ScoreStatus distinguishes a real zero from a degraded one. Totals
// always fold NoData and FetchFailed to zero; the status travels with
// the score so the presentation layer can render a warning instead of
// silently showing 0.0.
type ScoreStatus string

const (
	StatusScored      ScoreStatus = "scored"
	StatusNoData      ScoreStatus = "no_data"
	StatusFetchFailed ScoreStatus = "fetch_failed"
)

// PlayerScore is one player's rounded point total for the window.
type PlayerScore struct {
	PlayerID string
	Points   float64
	Status   ScoreStatus
}

// TeamScore is derived per request and never persisted; stats move
// while games are live, so a stored total would immediately go stale.
type TeamScore struct {
	Total     float64
	Breakdown map[player.Position]PlayerScore
	Degraded  bool
}

// ScorePlayer sums the window's weeks over the given weekly points,
// treating missing weeks as zero, and rounds half-up to one decimal.
// Pure: identical inputs always produce identical output.
func ScorePlayer(weeklyPoints map[int]float64, w Window) float64 {
	var total float64
	for _, week := range w.Weeks {
		total += weeklyPoints[week]
	}
	return Round1(total)
}

// ScoreTeam combines four already-rounded player scores. The total is
// the rounded sum of the rounded parts; rounding per player first is
// observable in the breakdown and must not be skipped.
func ScoreTeam(picks map[player.Position]PlayerScore) TeamScore {
	breakdown := make(map[player.Position]PlayerScore, len(picks))
	degraded := false
	var sum float64
	for pos, score := range picks {
		breakdown[pos] = score
		sum += score.Points
		if score.Status == StatusFetchFailed {
			degraded = true
		}
	}
	return TeamScore{
		Total:     Round1(sum),
		Breakdown: breakdown,
		Degraded:  degraded,
	}
}

// Round1 rounds half-up to one decimal place. floor(x*10+0.5)/10
// matches the rounding the scoreboard has always displayed, including
// for negative totals.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
