package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
	qb "github.com/riskibarqy/tendalyze/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("team_name", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:       row.ID,
			Name:     row.Name,
			Mascot:   nullStringToStringPtr(row.Mascot),
			City:     nullStringToStringPtr(row.City),
			State:    nullStringToStringPtr(row.State),
			Division: nullStringToStringPtr(row.Division),
			Region:   nullStringToStringPtr(row.Region),
			District: nullStringToStringPtr(row.District),
		})
	}

	return out, nil
}
