package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/tendalyze/internal/config"
	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
	cacherepo "github.com/riskibarqy/tendalyze/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tendalyze/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tendalyze/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/tendalyze/internal/platform/cache"
	"github.com/riskibarqy/tendalyze/internal/platform/logging"
	"github.com/riskibarqy/tendalyze/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// OpenDB opens the Postgres pool with query tracing and verifies it with a ping.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DatabaseURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DatabaseURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Services holds the use cases shared by the HTTP server and the CLI.
type Services struct {
	Ingestion *usecase.IngestionService
	Roster    *usecase.TeamRosterService
	Reports   *usecase.ReportService
	Status    *usecase.StatusService
}

func NewServices(cfg config.Config, db *sqlx.DB, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	mode, err := usecase.ParseIngestMode(cfg.IngestMode)
	if err != nil {
		return nil, err
	}

	store := postgres.NewIngestionStore(db)

	var (
		reportRepo  report.Repository = postgres.NewReportRepository(db)
		teamRepo    team.Repository   = postgres.NewTeamRepository(db)
		gameRepo    game.Repository   = postgres.NewGameRepository(db)
		invalidator interface{ Invalidate(context.Context) }
	)
	if cfg.CacheEnabled {
		cache := basecache.NewStore(cfg.CacheTTL)
		reportRepo = cacherepo.NewReportRepository(reportRepo, cache)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, cache)
		gameRepo = cacherepo.NewGameRepository(gameRepo, cache)
		invalidator = cacherepo.NewInvalidator(cache)
	}

	return &Services{
		Ingestion: usecase.NewIngestionService(store, usecase.IngestionConfig{
			Mode:          mode,
			DefaultSource: cfg.IngestDefaultSource,
		}, invalidator, logger),
		Roster:  usecase.NewTeamRosterService(store, logger),
		Reports: usecase.NewReportService(reportRepo, teamRepo, gameRepo, cfg.ReportTopFormations),
		Status:  usecase.NewStatusService(postgres.NewStatusRepository(db)),
	}, nil
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler, err := httpapi.NewHandler(httpapi.Services{
		Ingestion: services.Ingestion,
		Roster:    services.Roster,
		Reports:   services.Reports,
		Status:    services.Status,
	}, cfg.UploadMaxBytes, logger)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
