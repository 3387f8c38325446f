package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
)

// StatusRepository answers the connection check and readiness probe.
type StatusRepository struct {
	db      *sqlx.DB
	reports *ReportRepository
}

func NewStatusRepository(db *sqlx.DB) *StatusRepository {
	return &StatusRepository{db: db, reports: NewReportRepository(db)}
}

func (r *StatusRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *StatusRepository) ServerVersion(ctx context.Context) (string, error) {
	var version string
	if err := r.db.GetContext(ctx, &version, "SELECT version()"); err != nil {
		return "", fmt.Errorf("select server version: %w", err)
	}
	return version, nil
}

func (r *StatusRepository) CountAllPlays(ctx context.Context) (int, error) {
	return r.reports.CountPlays(ctx, report.AllGames)
}
