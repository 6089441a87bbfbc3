package sleeper

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
	"github.com/mlahargou/fantasy-playoffs/internal/platform/resilience"
)

const rosterFixture = `{
	"4046": {"player_id": "4046", "full_name": "Patrick Mahomes", "team": "KC", "position": "QB", "active": true, "status": "Active"},
	"4984": {"player_id": "4984", "full_name": "Josh Allen", "team": "BUF", "position": "QB", "active": true, "status": "Active"},
	"1234": {"player_id": "1234", "full_name": "Aaron Rodgers", "team": "NYJ", "position": "QB", "active": true, "status": "Active"},
	"5678": {"player_id": "5678", "full_name": "Injured Guy", "team": "KC", "position": "QB", "active": true, "status": "Injured Reserve"},
	"9012": {"player_id": "9012", "full_name": "Retired Guy", "team": "KC", "position": "QB", "active": false, "status": "Active"},
	"3456": {"player_id": "3456", "full_name": "Travis Kelce", "team": "KC", "position": "TE", "active": true, "status": "Active"}
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:      server.URL,
		StatsBaseURL: server.URL,
		Season:       "2024",
		SeasonType:   "post",
		PlayoffTeams: []string{"KC", "BUF"},
		MaxRetries:   2,
		Timeout:      5 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	})
}

func TestClient_SearchPlayoffPlayers_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/players/nfl" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		requests.Add(1)
		_, _ = w.Write([]byte(rosterFixture))
	}))

	got, err := client.SearchPlayoffPlayers(t.Context(), player.PositionQB, "")
	if err != nil {
		t.Fatalf("search playoff players: %v", err)
	}

	// Non-playoff team, inactive, and non-Active status players are out;
	// the TE stays out of a QB search.
	if len(got) != 2 {
		t.Fatalf("player count = %d, want 2: %+v", len(got), got)
	}
	if got[0].Name != "Josh Allen" || got[1].Name != "Patrick Mahomes" {
		t.Errorf("expected name-sorted results, got %q then %q", got[0].Name, got[1].Name)
	}
}

func TestClient_SearchPlayoffPlayers_SubstringMatchCaseInsensitive(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rosterFixture))
	}))

	got, err := client.SearchPlayoffPlayers(t.Context(), player.PositionQB, "MAHOM")
	if err != nil {
		t.Fatalf("search playoff players: %v", err)
	}
	if len(got) != 1 || got[0].ID != "4046" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestClient_SearchPlayoffPlayers_CachesRosterDump(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(rosterFixture))
	}))

	ctx := t.Context()
	if _, err := client.SearchPlayoffPlayers(ctx, player.PositionQB, ""); err != nil {
		t.Fatalf("first search: %v", err)
	}
	if _, err := client.SearchPlayoffPlayers(ctx, player.PositionTE, ""); err != nil {
		t.Fatalf("second search: %v", err)
	}

	if got := requests.Load(); got != 1 {
		t.Fatalf("expected one roster fetch, got %d", got)
	}
}

func TestClient_WeeklyStats_SkipsNullAndMalformedWeeks(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats/nfl/player/4046" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("season") != "2024" || query.Get("season_type") != "post" || query.Get("grouping") != "week" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{
			"1": {"stats": {"pts_ppr": 10.4, "rec": 5}},
			"2": null,
			"3": {"stats": {"pts_ppr": 7.0}},
			"4": {"stats": {}},
			"weird": {"stats": {"pts_ppr": 99}}
		}`))
	}))

	got, err := client.WeeklyStats(t.Context(), "4046")
	if err != nil {
		t.Fatalf("weekly stats: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("week count = %d, want 2: %v", len(got), got)
	}
	if got[1] != 10.4 || got[3] != 7.0 {
		t.Fatalf("unexpected points: %v", got)
	}
}

func TestClient_WeeklyStats_FetchesFreshPerCall(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"1": {"stats": {"pts_ppr": 10.4}}}`))
	}))

	ctx := t.Context()
	if _, err := client.WeeklyStats(ctx, "4046"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := client.WeeklyStats(ctx, "4046"); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	// Stats move while games are live: unlike the roster dump, a second
	// call must go back upstream instead of serving a stored response.
	if got := requests.Load(); got != 2 {
		t.Fatalf("request count = %d, want 2 (one per call)", got)
	}
}

func TestClient_WeeklyStats_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"1": {"stats": {"pts_ppr": 3.3}}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		StatsBaseURL:   server.URL,
		Season:         "2024",
		SeasonType:     "post",
		MaxRetries:     1,
		Timeout:        5 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	got, err := client.WeeklyStats(t.Context(), "4046")
	if err != nil {
		t.Fatalf("weekly stats: %v", err)
	}
	if got[1] != 3.3 {
		t.Fatalf("unexpected points: %v", got)
	}
	if requests.Load() != 2 {
		t.Fatalf("request count = %d, want 2", requests.Load())
	}
}

func TestClient_WeeklyStats_NoRetryOnClientError(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	if _, err := client.WeeklyStats(t.Context(), "missing"); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if requests.Load() != 1 {
		t.Fatalf("request count = %d, want 1 (no retry on 4xx)", requests.Load())
	}
}
