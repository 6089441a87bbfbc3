package scoring

import (
	"testing"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
)

func TestScorePlayer_SumsOnlyConfiguredWeeks(t *testing.T) {
	t.Parallel()

	window := Window{Season: "2025", SeasonType: SeasonTypeRegular, Weeks: []int{1, 2, 3}}
	stats := map[int]float64{
		1: 10.4,
		3: 7.0,
		9: 55.5, // outside the window, must be ignored
	}

	got := ScorePlayer(stats, window)
	if got != 17.4 {
		t.Fatalf("expected 17.4, got %v", got)
	}
}

func TestScorePlayer_EmptyStatsScoreZero(t *testing.T) {
	t.Parallel()

	window := Window{Season: "2025", SeasonType: SeasonTypePost, Weeks: []int{1, 2, 3, 4}}
	if got := ScorePlayer(nil, window); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestRound1_HalfUp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want float64
	}{
		{12.34, 12.3},
		{6.05, 6.1},
		{3.3, 3.3},
		{0, 0},
		{-1.25, -1.2},
		{17.45, 17.5},
	}
	for _, tc := range cases {
		if got := Round1(tc.in); got != tc.want {
			t.Fatalf("Round1(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestScoreTeam_RoundsPerPlayerBeforeSumming(t *testing.T) {
	t.Parallel()

	picks := map[player.Position]PlayerScore{
		player.PositionQB: {PlayerID: "qb1", Points: Round1(12.34), Status: StatusScored},
		player.PositionWR: {PlayerID: "wr1", Points: Round1(0), Status: StatusNoData},
		player.PositionRB: {PlayerID: "rb1", Points: Round1(6.05), Status: StatusScored},
		player.PositionTE: {PlayerID: "te1", Points: Round1(3.3), Status: StatusScored},
	}

	score := ScoreTeam(picks)
	if score.Total != 21.7 {
		t.Fatalf("expected total 21.7, got %v", score.Total)
	}
	if score.Breakdown[player.PositionQB].Points != 12.3 {
		t.Fatalf("expected QB 12.3, got %v", score.Breakdown[player.PositionQB].Points)
	}
	if score.Breakdown[player.PositionRB].Points != 6.1 {
		t.Fatalf("expected RB 6.1, got %v", score.Breakdown[player.PositionRB].Points)
	}
	if score.Degraded {
		t.Fatal("no fetch failures, team must not be degraded")
	}
}

func TestScoreTeam_FetchFailureMarksDegraded(t *testing.T) {
	t.Parallel()

	picks := map[player.Position]PlayerScore{
		player.PositionQB: {PlayerID: "qb1", Points: 20.0, Status: StatusScored},
		player.PositionWR: {PlayerID: "wr1", Points: 0, Status: StatusFetchFailed},
		player.PositionRB: {PlayerID: "rb1", Points: 5.5, Status: StatusScored},
		player.PositionTE: {PlayerID: "te1", Points: 0, Status: StatusNoData},
	}

	score := ScoreTeam(picks)
	if !score.Degraded {
		t.Fatal("fetch failure must mark the team degraded")
	}
	if score.Total != 25.5 {
		t.Fatalf("failed pick must fold to zero in the total, got %v", score.Total)
	}
}

func TestWindowValidate(t *testing.T) {
	t.Parallel()

	valid := Window{Season: "2025", SeasonType: SeasonTypePost, Weeks: []int{1, 2, 3, 4}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}

	cases := []Window{
		{Season: "", SeasonType: SeasonTypePost, Weeks: []int{1}},
		{Season: "2025", SeasonType: "preseason", Weeks: []int{1}},
		{Season: "2025", SeasonType: SeasonTypeRegular, Weeks: nil},
		{Season: "2025", SeasonType: SeasonTypeRegular, Weeks: []int{0}},
		{Season: "2025", SeasonType: SeasonTypeRegular, Weeks: []int{15, 15}},
	}
	for i, w := range cases {
		if err := w.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, w)
		}
	}
}
