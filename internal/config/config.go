package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/scoring"
	"github.com/mlahargou/fantasy-playoffs/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	DBURL              string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level

	Season             string
	SeasonType         string
	ScoringWeeks       []int
	PlayoffTeams       []string
	MaxTeamsPerPerson  int
	EntryFee           float64
	PayoutSplit        []float64
	SubmissionDeadline time.Time

	SleeperBaseURL             string
	SleeperStatsBaseURL        string
	SleeperTimeout             time.Duration
	SleeperMaxRetries          int
	SleeperCircuitEnabled      bool
	SleeperCircuitFailureCount int
	SleeperCircuitOpenTimeout  time.Duration
	SleeperCircuitHalfOpenMax  int
	RosterCacheTTL             time.Duration
	StatsFetchTimeout          time.Duration
	StatsFetchWorkers          int

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	season := strings.TrimSpace(getEnv("SEASON", "2024"))
	if season == "" {
		return Config{}, fmt.Errorf("SEASON cannot be empty")
	}

	seasonType := strings.ToLower(strings.TrimSpace(getEnv("SEASON_TYPE", scoring.SeasonTypePost)))
	if seasonType != scoring.SeasonTypeRegular && seasonType != scoring.SeasonTypePost {
		return Config{}, fmt.Errorf("invalid SEASON_TYPE %q: valid values are %s, %s", seasonType, scoring.SeasonTypeRegular, scoring.SeasonTypePost)
	}

	scoringWeeks, err := parseIntCSV(getEnv("SCORING_WEEKS", "1,2,3,4"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_WEEKS: %w", err)
	}
	if len(scoringWeeks) == 0 {
		return Config{}, fmt.Errorf("SCORING_WEEKS cannot be empty")
	}

	playoffTeams := splitCSV(strings.ToUpper(getEnv("PLAYOFF_TEAMS", defaultPlayoffTeams)))
	if len(playoffTeams) == 0 {
		return Config{}, fmt.Errorf("PLAYOFF_TEAMS cannot be empty")
	}

	maxTeams, err := getEnvAsInt("MAX_TEAMS_PER_PERSON", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAX_TEAMS_PER_PERSON: %w", err)
	}
	if maxTeams < 1 {
		return Config{}, fmt.Errorf("MAX_TEAMS_PER_PERSON must be >= 1")
	}

	entryFee, err := getEnvAsFloat("ENTRY_FEE", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse ENTRY_FEE: %w", err)
	}
	if entryFee < 0 {
		return Config{}, fmt.Errorf("ENTRY_FEE must be >= 0")
	}

	payoutSplit, err := parseFloatCSV(getEnv("PAYOUT_SPLIT", "0.9,0.1"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PAYOUT_SPLIT: %w", err)
	}
	if len(payoutSplit) == 0 {
		return Config{}, fmt.Errorf("PAYOUT_SPLIT cannot be empty")
	}
	sum := 0.0
	for _, share := range payoutSplit {
		if share <= 0 {
			return Config{}, fmt.Errorf("PAYOUT_SPLIT shares must be > 0")
		}
		sum += share
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return Config{}, fmt.Errorf("PAYOUT_SPLIT shares must sum to 1.0, got %v", sum)
	}

	submissionDeadline := time.Time{}
	if raw := strings.TrimSpace(getEnv("SUBMISSION_DEADLINE", "")); raw != "" {
		submissionDeadline, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse SUBMISSION_DEADLINE: %w", err)
		}
	}

	sleeperTimeout, err := time.ParseDuration(getEnv("SLEEPER_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_TIMEOUT: %w", err)
	}
	if sleeperTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_TIMEOUT must be > 0")
	}
	sleeperMaxRetries, err := getEnvAsInt("SLEEPER_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_MAX_RETRIES: %w", err)
	}
	if sleeperMaxRetries < 0 {
		return Config{}, fmt.Errorf("SLEEPER_MAX_RETRIES must be >= 0")
	}
	sleeperCircuitEnabled, err := strconv.ParseBool(getEnv("SLEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_ENABLED: %w", err)
	}
	sleeperCircuitFailureCount, err := getEnvAsInt("SLEEPER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if sleeperCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	sleeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("SLEEPER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if sleeperCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	sleeperCircuitHalfOpenMax, err := getEnvAsInt("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if sleeperCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	rosterCacheTTL, err := time.ParseDuration(getEnv("ROSTER_CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_CACHE_TTL: %w", err)
	}
	if rosterCacheTTL <= 0 {
		return Config{}, fmt.Errorf("ROSTER_CACHE_TTL must be > 0")
	}
	statsFetchTimeout, err := time.ParseDuration(getEnv("STATS_FETCH_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_FETCH_TIMEOUT: %w", err)
	}
	if statsFetchTimeout <= 0 {
		return Config{}, fmt.Errorf("STATS_FETCH_TIMEOUT must be > 0")
	}
	statsFetchWorkers, err := getEnvAsInt("STATS_FETCH_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_FETCH_WORKERS: %w", err)
	}
	if statsFetchWorkers < 1 {
		return Config{}, fmt.Errorf("STATS_FETCH_WORKERS must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "fantasy-playoffs-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		Season:             season,
		SeasonType:         seasonType,
		ScoringWeeks:       scoringWeeks,
		PlayoffTeams:       playoffTeams,
		MaxTeamsPerPerson:  maxTeams,
		EntryFee:           entryFee,
		PayoutSplit:        payoutSplit,
		SubmissionDeadline: submissionDeadline,

		SleeperBaseURL:             strings.TrimSpace(getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app")),
		SleeperStatsBaseURL:        strings.TrimSpace(getEnv("SLEEPER_STATS_BASE_URL", "https://api.sleeper.com")),
		SleeperTimeout:             sleeperTimeout,
		SleeperMaxRetries:          sleeperMaxRetries,
		SleeperCircuitEnabled:      sleeperCircuitEnabled,
		SleeperCircuitFailureCount: sleeperCircuitFailureCount,
		SleeperCircuitOpenTimeout:  sleeperCircuitOpenTimeout,
		SleeperCircuitHalfOpenMax:  sleeperCircuitHalfOpenMax,
		RosterCacheTTL:             rosterCacheTTL,
		StatsFetchTimeout:          statsFetchTimeout,
		StatsFetchWorkers:          statsFetchWorkers,

		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// Window builds the scoring window the pool plays under.
func (c Config) Window() scoring.Window {
	return scoring.Window{
		Season:     c.Season,
		SeasonType: c.SeasonType,
		Weeks:      c.ScoringWeeks,
	}
}

// PlayoffTeamSet returns the playoff field as a lookup set.
func (c Config) PlayoffTeamSet() map[string]struct{} {
	out := make(map[string]struct{}, len(c.PlayoffTeams))
	for _, team := range c.PlayoffTeams {
		out[team] = struct{}{}
	}
	return out
}

// 14-team playoff field; overridden each January via PLAYOFF_TEAMS.
const defaultPlayoffTeams = "KC,BUF,BAL,HOU,PIT,LAC,DEN,DET,PHI,TB,LAR,MIN,WAS,GB"

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseIntCSV(v string) ([]int, error) {
	parts := splitCSV(v)
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		out = append(out, n)
	}

	return out, nil
}

func parseFloatCSV(v string) ([]float64, error) {
	parts := splitCSV(v)
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		out = append(out, f)
	}

	return out, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
