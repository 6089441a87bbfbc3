package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mlahargou/fantasy-playoffs/external/sleeper"
	"github.com/mlahargou/fantasy-playoffs/internal/config"
	"github.com/mlahargou/fantasy-playoffs/internal/domain/entry"
	"github.com/mlahargou/fantasy-playoffs/internal/domain/payment"
	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
	"github.com/mlahargou/fantasy-playoffs/internal/infrastructure/repository/memory"
	"github.com/mlahargou/fantasy-playoffs/internal/infrastructure/repository/postgres"
	"github.com/mlahargou/fantasy-playoffs/internal/interfaces/httpapi"
	"github.com/mlahargou/fantasy-playoffs/internal/platform/cache"
	"github.com/mlahargou/fantasy-playoffs/internal/platform/logging"
	"github.com/mlahargou/fantasy-playoffs/internal/platform/resilience"
	"github.com/mlahargou/fantasy-playoffs/internal/usecase"
	"go.uber.org/zap/zapcore"
)

// NewHTTPServer wires repositories, the Sleeper client, and all
// services into one ready-to-run server. An empty DB_URL selects the
// in-memory repositories for DB-less dev runs.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		entryRepo   entry.Repository
		userRepo    user.Repository
		paymentRepo payment.Repository
	)
	if cfg.DBURL != "" {
		db, err := ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		entryRepo = postgres.NewEntryRepository(db)
		userRepo = postgres.NewUserRepository(db)
		paymentRepo = postgres.NewPaymentRepository(db)
		logger.Info("using postgres repositories")
	} else {
		entryRepo = memory.NewEntryRepository()
		userRepo = memory.NewUserRepository()
		paymentRepo = memory.NewPaymentRepository()
		logger.Warn("DB_URL is empty, using in-memory repositories")
	}

	sleeperClient := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:      cfg.SleeperBaseURL,
		StatsBaseURL: cfg.SleeperStatsBaseURL,
		Season:       cfg.Season,
		SeasonType:   cfg.SeasonType,
		PlayoffTeams: cfg.PlayoffTeams,
		Timeout:      cfg.SleeperTimeout,
		MaxRetries:   cfg.SleeperMaxRetries,
		Logger:       logging.Default(),
		RosterCache:  cache.NewStore(cfg.RosterCacheTTL),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMax,
		},
	})

	rosterService := usecase.NewRosterService(sleeperClient)
	entryService := usecase.NewEntryService(usecase.EntryServiceConfig{
		MaxTeamsPerPerson:  cfg.MaxTeamsPerPerson,
		SubmissionDeadline: cfg.SubmissionDeadline,
	}, entryRepo, userRepo)
	leaderboardService := usecase.NewLeaderboardService(usecase.LeaderboardServiceConfig{
		Window:       cfg.Window(),
		EntryFee:     cfg.EntryFee,
		PayoutSplit:  cfg.PayoutSplit,
		MaxWorkers:   cfg.StatsFetchWorkers,
		FetchTimeout: cfg.StatsFetchTimeout,
	}, entryRepo, sleeperClient)
	authService := usecase.NewAuthService(userRepo)
	adminService := usecase.NewAdminService(userRepo, entryRepo, paymentRepo)

	handler := httpapi.NewHandler(rosterService, entryService, leaderboardService, adminService, logger)
	router := httpapi.NewRouter(handler, authService, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// SlogLevel maps the zap-style configured level onto slog's scale for
// the handlers that log through log/slog.
func SlogLevel(level logging.Level) slog.Level {
	switch {
	case level <= zapcore.DebugLevel:
		return slog.LevelDebug
	case level == zapcore.InfoLevel:
		return slog.LevelInfo
	case level == zapcore.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
