package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/player"
	"github.com/mlahargou/fantasy-playoffs/internal/platform/cache"
	"github.com/mlahargou/fantasy-playoffs/internal/platform/logging"
	"github.com/mlahargou/fantasy-playoffs/internal/platform/resilience"
	"github.com/mlahargou/fantasy-playoffs/internal/usecase"
)

const (
	defaultBaseURL      = "https://api.sleeper.app"
	defaultStatsBaseURL = "https://api.sleeper.com"

	rosterCacheKey = "sleeper:players:nfl"

	maxResponseBytes = 32 << 20
)

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient   *http.Client
	BaseURL      string
	StatsBaseURL string
	// Season and SeasonType scope every stats request.
	Season     string
	SeasonType string
	// PlayoffTeams is the abbreviation set eligible picks must play for.
	PlayoffTeams   []string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	RosterCache    *cache.Store
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the Sleeper public API. The full NFL roster dump is
// large and changes rarely, so it is cached aggressively; per-player
// stats move while games are live, so they are fetched fresh on every
// call and only concurrent callers share an in-flight request.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	statsBaseURL   string
	season         string
	seasonType     string
	playoffTeams   map[string]struct{}
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	rosterCache    *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	statsBaseURL := strings.TrimRight(strings.TrimSpace(cfg.StatsBaseURL), "/")
	if statsBaseURL == "" {
		statsBaseURL = defaultStatsBaseURL
	}

	playoffTeams := make(map[string]struct{}, len(cfg.PlayoffTeams))
	for _, team := range cfg.PlayoffTeams {
		team = strings.ToUpper(strings.TrimSpace(team))
		if team == "" {
			continue
		}
		playoffTeams[team] = struct{}{}
	}

	rosterCache := cfg.RosterCache
	if rosterCache == nil {
		rosterCache = cache.NewStore(24 * time.Hour)
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		statsBaseURL:   statsBaseURL,
		season:         strings.TrimSpace(cfg.Season),
		seasonType:     strings.TrimSpace(cfg.SeasonType),
		playoffTeams:   playoffTeams,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		rosterCache:    rosterCache,
	}
}

// playerRecord mirrors one value of the /v1/players/nfl map. The dump
// carries dozens of fields; only these drive eligibility.
type playerRecord struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Team      string `json:"team"`
	Position  string `json:"position"`
	Active    bool   `json:"active"`
	Status    string `json:"status"`
}

// SearchPlayoffPlayers filters the cached roster dump down to active
// players on playoff teams at the requested position whose name
// contains the query, sorted by name.
func (c *Client) SearchPlayoffPlayers(ctx context.Context, pos player.Position, query string) ([]player.Player, error) {
	roster, err := c.listPlayers(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]player.Player, 0, 64)
	for id, record := range roster {
		team := strings.ToUpper(strings.TrimSpace(record.Team))
		if _, ok := c.playoffTeams[team]; !ok {
			continue
		}
		if !record.Active || record.Status != "Active" {
			continue
		}
		if !strings.EqualFold(record.Position, string(pos)) {
			continue
		}

		name := playerDisplayName(record)
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}

		out = append(out, player.Player{
			ID:       firstNonEmpty(record.PlayerID, id),
			Name:     name,
			Team:     team,
			Position: pos,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (c *Client) listPlayers(ctx context.Context) (map[string]playerRecord, error) {
	out, err := c.rosterCache.GetOrLoad(ctx, rosterCacheKey, func(ctx context.Context) (any, error) {
		var roster map[string]playerRecord
		if err := c.doJSON(ctx, c.baseURL+"/v1/players/nfl", nil, &roster); err != nil {
			return nil, fmt.Errorf("fetch nfl players: %w", err)
		}
		return roster, nil
	})
	if err != nil {
		return nil, err
	}

	roster, ok := out.(map[string]playerRecord)
	if !ok {
		return nil, fmt.Errorf("unexpected roster cache payload type %T", out)
	}
	return roster, nil
}

// weekRecord mirrors one value of the weekly stats map. Null weeks and
// malformed entries are tolerated and skipped.
type weekRecord struct {
	Stats struct {
		PtsPPR *float64 `json:"pts_ppr"`
	} `json:"stats"`
}

// WeeklyStats returns PPR points by week for a player in the configured
// season. Weeks the provider reports as null or without pts_ppr are
// absent from the result. Results are never cached across calls: stats
// change whenever games are in progress, so every call reflects the
// provider's current data. Concurrent calls for the same player share
// one upstream request through the singleflight in doJSON.
func (c *Client) WeeklyStats(ctx context.Context, playerID string) (map[int]float64, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("player id is required")
	}
	return c.fetchWeeklyStats(ctx, playerID)
}

func (c *Client) fetchWeeklyStats(ctx context.Context, playerID string) (map[int]float64, error) {
	query := map[string]string{
		"season_type": c.seasonType,
		"season":      c.season,
		"grouping":    "week",
	}

	var byWeek map[string]json.RawMessage
	fullURL := c.statsBaseURL + "/stats/nfl/player/" + url.PathEscape(playerID)
	if err := c.doJSON(ctx, fullURL, query, &byWeek); err != nil {
		return nil, fmt.Errorf("fetch weekly stats player=%s: %w", playerID, err)
	}

	out := make(map[int]float64, len(byWeek))
	for weekKey, raw := range byWeek {
		week, err := strconv.Atoi(strings.TrimSpace(weekKey))
		if err != nil || week <= 0 {
			continue
		}
		trimmed := strings.TrimSpace(string(raw))
		if trimmed == "" || trimmed == "null" {
			continue
		}

		var record weekRecord
		if err := sonic.Unmarshal(raw, &record); err != nil {
			c.logger.WarnContext(ctx, "skip malformed weekly stats entry",
				"player_id", playerID,
				"week", weekKey,
				"error", err,
			)
			continue
		}
		if record.Stats.PtsPPR == nil {
			continue
		}
		out[week] = *record.Stats.PtsPPR
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, fullURL string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		if strings.TrimSpace(value) == "" {
			continue
		}
		values.Set(key, value)
	}
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errSleeperTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSleeperTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errSleeperTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errSleeperTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > 256 {
		return body[:256] + "..."
	}
	return body
}

func playerDisplayName(record playerRecord) string {
	if name := strings.TrimSpace(record.FullName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(record.FirstName) + " " + strings.TrimSpace(record.LastName))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
