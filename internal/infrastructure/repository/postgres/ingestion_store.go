package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tendalyze/internal/domain/drive"
	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/ingestion"
	"github.com/riskibarqy/tendalyze/internal/domain/play"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
	qb "github.com/riskibarqy/tendalyze/internal/platform/querybuilder"
)

// playInsertBatchSize keeps one statement well under the 65535 bind parameter limit.
const playInsertBatchSize = 1000

type IngestionStore struct {
	db *sqlx.DB
}

func NewIngestionStore(db *sqlx.DB) *IngestionStore {
	return &IngestionStore{db: db}
}

func (s *IngestionStore) Begin(ctx context.Context) (ingestion.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin ingestion tx: %w", classifyWriteError(err))
	}
	return &ingestionTx{tx: tx}, nil
}

type ingestionTx struct {
	tx *sqlx.Tx
}

func (t *ingestionTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit ingestion tx: %w", classifyWriteError(err))
	}
	return nil
}

func (t *ingestionTx) Rollback() error {
	err := t.tx.Rollback()
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return fmt.Errorf("rollback ingestion tx: %w", err)
}

func (t *ingestionTx) FindTeamByName(ctx context.Context, name string) (int64, bool, error) {
	query, args, err := qb.Select("team_id").From("teams").
		Where(qb.Eq("team_name", name)).
		OrderBy("team_id").
		Limit(1).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build find team query: %w", err)
	}

	var id int64
	if err := t.tx.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find team name=%s: %w", name, classifyWriteError(err))
	}
	return id, true, nil
}

func (t *ingestionTx) InsertTeam(ctx context.Context, item team.Team) (int64, error) {
	query, args, err := qb.InsertModel("teams", teamInsertModelFrom(item), "RETURNING team_id")
	if err != nil {
		return 0, fmt.Errorf("build insert team query: %w", err)
	}

	var id int64
	if err := t.tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("team name=%s already exists: %w", item.Name, err)
		}
		return 0, fmt.Errorf("insert team name=%s: %w", item.Name, classifyWriteError(err))
	}
	return id, nil
}

func (t *ingestionTx) InsertTeamIfAbsent(ctx context.Context, item team.Team) (bool, error) {
	query, args, err := qb.InsertModel("teams", teamInsertModelFrom(item), "ON CONFLICT ON CONSTRAINT teams_unique_name_city_state DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert team query: %w", err)
	}

	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert team name=%s: %w", item.Name, classifyWriteError(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read inserted team rows: %w", err)
	}
	return affected > 0, nil
}

func (t *ingestionTx) FindGame(ctx context.Context, key game.Key) (int64, bool, error) {
	query, args, err := qb.Select("game_id").From("games").
		Where(
			qb.Eq("season", key.Season),
			qb.Eq("week", key.Week),
			qb.Eq("offense_team_id", key.OffenseTeamID),
			qb.Eq("defense_team_id", key.DefenseTeamID),
		).
		OrderBy("game_id").
		Limit(1).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build find game query: %w", err)
	}

	var id int64
	if err := t.tx.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find game season=%d week=%d: %w", key.Season, key.Week, classifyWriteError(err))
	}
	return id, true, nil
}

func (t *ingestionTx) InsertGame(ctx context.Context, item game.Game) (int64, error) {
	model := gameInsertModel{
		OffenseTeamID: item.OffenseTeamID,
		DefenseTeamID: item.DefenseTeamID,
		GameDate:      item.Date,
		Season:        item.Season,
		Week:          item.Week,
		Venue:         item.Venue,
		Source:        item.Source,
	}
	query, args, err := qb.InsertModel("games", model, "RETURNING game_id")
	if err != nil {
		return 0, fmt.Errorf("build insert game query: %w", err)
	}

	var id int64
	if err := t.tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert game offense=%d defense=%d: %w", item.OffenseTeamID, item.DefenseTeamID, classifyWriteError(err))
	}
	return id, nil
}

func (t *ingestionTx) InsertDrive(ctx context.Context, item drive.Drive) (int64, error) {
	model := driveInsertModel{
		GameID:        item.GameID,
		OffenseTeamID: item.OffenseTeamID,
		DefenseTeamID: item.DefenseTeamID,
	}
	query, args, err := qb.InsertModel("drives", model, "RETURNING drive_id")
	if err != nil {
		return 0, fmt.Errorf("build insert drive query: %w", err)
	}

	var id int64
	if err := t.tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert drive game=%d: %w", item.GameID, classifyWriteError(err))
	}
	return id, nil
}

func (t *ingestionTx) BulkInsertPlays(ctx context.Context, items []play.Play) error {
	for start := 0; start < len(items); start += playInsertBatchSize {
		end := min(start+playInsertBatchSize, len(items))

		models := make([]playInsertModel, 0, end-start)
		for _, item := range items[start:end] {
			models = append(models, playInsertModelFrom(item))
		}
		query, args, err := qb.InsertModels("plays", models, "")
		if err != nil {
			return fmt.Errorf("build insert plays query: %w", err)
		}
		if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert plays rows=%d-%d: %w", start, end-1, classifyWriteError(err))
		}
	}
	return nil
}

func teamInsertModelFrom(item team.Team) teamInsertModel {
	return teamInsertModel{
		Name:     item.Name,
		Mascot:   item.Mascot,
		City:     item.City,
		State:    item.State,
		Division: item.Division,
		Region:   item.Region,
		District: item.District,
	}
}

func playInsertModelFrom(item play.Play) playInsertModel {
	return playInsertModel{
		DriveID:       item.DriveID,
		GameID:        item.GameID,
		OffenseTeamID: item.OffenseTeamID,
		DefenseTeamID: item.DefenseTeamID,
		Quarter:       item.Quarter,
		Clock:         item.Clock,
		Down:          item.Down,
		Distance:      item.Distance,
		YardLine:      item.YardLine,
		HashMark:      item.HashMark,
		FormationRaw:  item.FormationRaw,
		FormationNorm: item.FormationNorm,
		Personnel:     item.Personnel,
		PlayType:      item.PlayType,
		RunDirection:  item.RunDirection,
		PassZone:      item.PassZone,
		YardsGained:   item.YardsGained,
		Result:        item.Result,
	}
}
