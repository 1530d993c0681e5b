package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/matchpulse/football-sync/external/footballdata"
	"github.com/matchpulse/football-sync/internal/config"
	"github.com/matchpulse/football-sync/internal/infrastructure/jobqueue"
	"github.com/matchpulse/football-sync/internal/infrastructure/repository/postgres"
	"github.com/matchpulse/football-sync/internal/interfaces/httpapi"
	"github.com/matchpulse/football-sync/internal/platform/logging"
	"github.com/matchpulse/football-sync/internal/platform/ratelimit"
	"github.com/matchpulse/football-sync/internal/platform/resilience"
	"github.com/matchpulse/football-sync/internal/usecase"
)

// App bundles the wired HTTP server with the optional in-process
// scheduler and the shared DB handle.
type App struct {
	Server    *http.Server
	Scheduler *Scheduler
	db        *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, err := connectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	matchRepo := postgres.NewMatchRepository(db)
	historyRepo := postgres.NewMatchHistoryRepository(db)
	liveRepo := postgres.NewLiveMatchRepository(db)
	standingRepo := postgres.NewStandingRepository(db)
	runRepo := postgres.NewJobRunRepository(db)

	provider := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL: cfg.FootballDataBaseURL,
		Token:   cfg.FootballDataToken,
		Timeout: cfg.FootballDataTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})

	syncSvc := usecase.NewSyncService(
		provider,
		matchRepo,
		historyRepo,
		liveRepo,
		standingRepo,
		runRepo,
		ratelimit.NewIntervalGate(cfg.FootballDataFetchInterval),
		logger,
		usecase.SyncConfig{
			TrackedCompetitions: cfg.TrackedCompetitions,
			FixturesWindowDays:  cfg.FixturesWindowDays,
			HistoryWindowDays:   cfg.HistoryWindowDays,
		},
	)
	statusCacheTTL := time.Duration(0)
	if cfg.CacheEnabled {
		statusCacheTTL = cfg.CacheTTL
	}
	statusSvc := usecase.NewStatusService(matchRepo, historyRepo, liveRepo, standingRepo, runRepo, statusCacheTTL, logger)
	insightsSvc := usecase.NewInsightsService(provider, historyRepo, standingRepo, logger)

	handler := httpapi.NewHandler(syncSvc, statusSvc, insightsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	app := &App{
		Server: server,
		db:     db,
	}

	if cfg.SchedulerEnabled {
		publisher := jobqueue.NewTriggerPublisher(jobqueue.TriggerPublisherConfig{
			TargetBaseURL:    schedulerTargetBaseURL(cfg.HTTPAddr),
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.WriteTimeout,
		}, logger)
		app.Scheduler = NewScheduler(cfg, publisher, logger)
	}

	return app, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func connectDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

// The scheduler targets this process through the loopback interface so
// triggers pass the same middleware chain as external callers.
func schedulerTargetBaseURL(httpAddr string) string {
	addr := strings.TrimSpace(httpAddr)
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}
