package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/entry"
	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
	"github.com/mlahargou/fantasy-playoffs/internal/domain/scoring"
)

type LeaderboardServiceConfig struct {
	Window      scoring.Window
	EntryFee    float64
	PayoutSplit []float64
	// MaxWorkers bounds concurrent stats fetches. FetchTimeout caps each
	// individual fetch, so one slow player cannot starve the rest of the
	// pool's budget.
	MaxWorkers   int
	FetchTimeout time.Duration
}

type LeaderboardService struct {
	cfg       LeaderboardServiceConfig
	entryRepo entry.Repository
	stats     StatsProvider
}

func NewLeaderboardService(cfg LeaderboardServiceConfig, entryRepo entry.Repository, stats StatsProvider) *LeaderboardService {
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 8
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	return &LeaderboardService{
		cfg:       cfg,
		entryRepo: entryRepo,
		stats:     stats,
	}
}

type LeaderboardRow struct {
	Rank       int               `json:"rank"`
	Email      string            `json:"email"`
	TeamNumber int               `json:"team_number"`
	Entry      entry.TeamEntry   `json:"entry"`
	Score      scoring.TeamScore `json:"score"`
}

type Payout struct {
	Place  int     `json:"place"`
	Amount float64 `json:"amount"`
}

type LeaderboardSummary struct {
	Participants int      `json:"participants"`
	EntryCount   int      `json:"entry_count"`
	TopScore     float64  `json:"top_score"`
	Pot          float64  `json:"pot"`
	Payouts      []Payout `json:"payouts"`
	Degraded     bool     `json:"degraded"`
}

type Leaderboard struct {
	Rows    []LeaderboardRow   `json:"rows"`
	Summary LeaderboardSummary `json:"summary"`
}

// ComputeLeaderboard scores every submitted entry against the scoring
// window and ranks them with competition ranking: tied totals share a
// rank and the next distinct total skips the tied positions.
func (s *LeaderboardService) ComputeLeaderboard(ctx context.Context) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ComputeLeaderboard")
	defer span.End()

	if err := s.cfg.Window.Validate(); err != nil {
		return Leaderboard{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entries, err := s.entryRepo.ListAll(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list all entries: %w", err)
	}

	scores, err := s.ScoreEntries(ctx, entries)
	if err != nil {
		return Leaderboard{}, err
	}

	rows := make([]LeaderboardRow, 0, len(entries))
	for i, item := range entries {
		rows = append(rows, LeaderboardRow{
			Email:      item.Email,
			TeamNumber: item.TeamNumber,
			Entry:      item,
			Score:      scores[i],
		})
	}

	// Entries arrive newest-first from the repository; a stable sort on
	// total keeps that order inside each tie group.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score.Total > rows[j].Score.Total
	})
	rankRows(rows)

	return Leaderboard{
		Rows:    rows,
		Summary: s.summarize(rows),
	}, nil
}

// ComputeTeamScore scores a single entry against the scoring window.
func (s *LeaderboardService) ComputeTeamScore(ctx context.Context, item entry.TeamEntry) (scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ComputeTeamScore")
	defer span.End()

	scores, err := s.ScoreEntries(ctx, []entry.TeamEntry{item})
	if err != nil {
		return scoring.TeamScore{}, err
	}
	return scores[0], nil
}

// ScoreEntries fetches weekly stats for the distinct players across all
// entries and returns one TeamScore per entry, index-aligned with the
// input. Each distinct player is fetched exactly once regardless of how
// many entries picked them.
func (s *LeaderboardService) ScoreEntries(ctx context.Context, entries []entry.TeamEntry) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ScoreEntries")
	defer span.End()

	if s.stats == nil {
		return nil, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}

	playerIDs := distinctPlayerIDs(entries)
	byPlayer, err := s.fetchPlayerScores(ctx, playerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]scoring.TeamScore, len(entries))
	for i, item := range entries {
		picks := make(map[player.Position]scoring.PlayerScore, 4)
		for pos, pick := range item.Picks() {
			score, ok := byPlayer[pick.ID]
			if !ok {
				// Picks without a resolvable id (legacy free-text
				// entries) score zero with an explicit status.
				score = scoring.PlayerScore{PlayerID: pick.ID, Status: scoring.StatusNoData}
			}
			picks[pos] = score
		}
		out[i] = scoring.ScoreTeam(picks)
	}

	return out, nil
}

func (s *LeaderboardService) fetchPlayerScores(ctx context.Context, playerIDs []string) (map[string]scoring.PlayerScore, error) {
	out := make(map[string]scoring.PlayerScore, len(playerIDs))
	if len(playerIDs) == 0 {
		return out, nil
	}

	workerCount := s.cfg.MaxWorkers
	if workerCount > len(playerIDs) {
		workerCount = len(playerIDs)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan scoring.PlayerScore, len(playerIDs))

	var workers sync.WaitGroup
	for _, playerID := range playerIDs {
		playerID := playerID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- s.scorePlayer(ctx, playerID)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit fetch to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		out[row.PlayerID] = row
	}

	return out, nil
}

// scorePlayer never fails the whole pass: a fetch error or timeout
// scores the player at zero and flags the result so callers can
// surface staleness. Each fetch gets its own timeout budget.
func (s *LeaderboardService) scorePlayer(ctx context.Context, playerID string) scoring.PlayerScore {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	weekly, err := s.stats.WeeklyStats(ctx, playerID)
	if err != nil {
		return scoring.PlayerScore{PlayerID: playerID, Status: scoring.StatusFetchFailed}
	}

	hasData := false
	for _, week := range s.cfg.Window.Weeks {
		if _, ok := weekly[week]; ok {
			hasData = true
			break
		}
	}
	if !hasData {
		return scoring.PlayerScore{PlayerID: playerID, Status: scoring.StatusNoData}
	}

	return scoring.PlayerScore{
		PlayerID: playerID,
		Points:   scoring.ScorePlayer(weekly, s.cfg.Window),
		Status:   scoring.StatusScored,
	}
}

func (s *LeaderboardService) summarize(rows []LeaderboardRow) LeaderboardSummary {
	participants := make(map[string]struct{}, len(rows))
	degraded := false
	for _, row := range rows {
		participants[row.Entry.NormalizedEmail()] = struct{}{}
		if row.Score.Degraded {
			degraded = true
		}
	}

	summary := LeaderboardSummary{
		Participants: len(participants),
		EntryCount:   len(rows),
		Pot:          float64(len(rows)) * s.cfg.EntryFee,
		Degraded:     degraded,
	}
	if len(rows) > 0 {
		summary.TopScore = rows[0].Score.Total
	}

	summary.Payouts = make([]Payout, 0, len(s.cfg.PayoutSplit))
	for i, share := range s.cfg.PayoutSplit {
		summary.Payouts = append(summary.Payouts, Payout{
			Place:  i + 1,
			Amount: math.Round(summary.Pot * share),
		})
	}

	return summary
}

// rankRows assigns competition ranking over rows already sorted by
// total descending: [10 10 8] ranks as [1 1 3].
func rankRows(rows []LeaderboardRow) {
	for i := range rows {
		if i > 0 && rows[i].Score.Total == rows[i-1].Score.Total {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}
}

func distinctPlayerIDs(entries []entry.TeamEntry) []string {
	seen := make(map[string]struct{}, len(entries)*4)
	out := make([]string, 0, len(entries)*4)
	for _, item := range entries {
		for _, id := range item.PlayerIDs() {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
