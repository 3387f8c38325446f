package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tendalyze/internal/domain/game"
	qb "github.com/riskibarqy/tendalyze/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Listing, error) {
	query, args, err := qb.Select(
		"g.game_id",
		"o.team_name AS offense_team",
		"d.team_name AS defense_team",
		"g.game_date",
		"g.season",
		"g.week",
		"g.venue",
		"g.source",
		"COUNT(p.play_id) AS play_count",
	).
		From(`games g
JOIN teams o ON o.team_id = g.offense_team_id
JOIN teams d ON d.team_id = g.defense_team_id
LEFT JOIN plays p ON p.game_id = g.game_id`).
		GroupBy("g.game_id", "o.team_name", "d.team_name").
		OrderBy("g.game_id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameListingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.Listing{
			ID:          row.ID,
			OffenseTeam: row.OffenseTeam,
			DefenseTeam: row.DefenseTeam,
			Date:        nullTimeToTimePtr(row.GameDate),
			Season:      nullInt64ToIntPtr(row.Season),
			Week:        nullInt64ToIntPtr(row.Week),
			Venue:       nullStringToStringPtr(row.Venue),
			Source:      row.Source,
			PlayCount:   row.PlayCount,
		})
	}

	return out, nil
}

func (r *GameRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.Select("game_id").From("games").
		Where(qb.Eq("game_id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build game exists query: %w", err)
	}

	var found int64
	if err := r.db.GetContext(ctx, &found, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("select game id=%d: %w", id, err)
	}
	return true, nil
}
