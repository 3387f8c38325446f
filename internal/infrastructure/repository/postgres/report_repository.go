package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	qb "github.com/riskibarqy/tendalyze/internal/platform/querybuilder"
)

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CountPlays(ctx context.Context, gameID int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("plays").
		Where(gameScope(gameID)...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count plays query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count plays game=%d: %w", gameID, err)
	}
	return count, nil
}

func (r *ReportRepository) CountByPlayType(ctx context.Context, gameID int64) ([]report.PlayTypeCount, error) {
	query, args, err := qb.Select("COALESCE(play_type, '"+report.UnknownLabel+"') AS label", "COUNT(*) AS plays").
		From("plays").
		Where(gameScope(gameID)...).
		GroupBy("label").
		OrderBy("plays DESC", "label").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count plays by type query: %w", err)
	}

	var rows []labelCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count plays by type game=%d: %w", gameID, err)
	}

	out := make([]report.PlayTypeCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.PlayTypeCount{PlayType: row.Label, Plays: row.Plays})
	}
	return out, nil
}

func (r *ReportRepository) TopFormations(ctx context.Context, gameID int64, limit int) ([]report.FormationCount, error) {
	query, args, err := qb.Select("formation_norm AS label", "COUNT(*) AS plays").
		From("plays").
		Where(gameScope(gameID, qb.IsNotNull("formation_norm"))...).
		GroupBy("formation_norm").
		OrderBy("plays DESC", "label").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build top formations query: %w", err)
	}

	var rows []labelCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select top formations game=%d: %w", gameID, err)
	}

	out := make([]report.FormationCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.FormationCount{Formation: row.Label, Plays: row.Plays})
	}
	return out, nil
}

func (r *ReportRepository) AverageYardsByDown(ctx context.Context, gameID int64) ([]report.DownYards, error) {
	query, args, err := qb.Select("down", "COUNT(*) AS plays", "AVG(yards_gained)::float8 AS average_yards").
		From("plays").
		Where(gameScope(gameID, qb.IsNotNull("down"))...).
		GroupBy("down").
		OrderBy("down").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build yards by down query: %w", err)
	}

	var rows []downYardsModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select yards by down game=%d: %w", gameID, err)
	}

	out := make([]report.DownYards, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.DownYards{
			Down:         row.Down,
			Plays:        row.Plays,
			AverageYards: nullFloat64ToFloat64Ptr(row.AverageYards),
		})
	}
	return out, nil
}
