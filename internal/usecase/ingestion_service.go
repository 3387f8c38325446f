package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tendalyze/external/hudl"
	"github.com/riskibarqy/tendalyze/internal/domain/drive"
	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/ingestion"
	"github.com/riskibarqy/tendalyze/internal/domain/play"
	"github.com/riskibarqy/tendalyze/internal/platform/logging"
)

type IngestMode string

const (
	IngestModeSingleGame IngestMode = "single"
	IngestModeMultiGame  IngestMode = "multi"
)

func ParseIngestMode(raw string) (IngestMode, error) {
	switch IngestMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", IngestModeSingleGame:
		return IngestModeSingleGame, nil
	case IngestModeMultiGame:
		return IngestModeMultiGame, nil
	default:
		return "", fmt.Errorf("%w: unknown ingest mode %q", ErrInvalidInput, raw)
	}
}

type IngestionConfig struct {
	Mode          IngestMode
	DefaultSource string
}

// IngestPlaysInput is the caller-supplied game metadata. Only single-game
// mode reads it; in multi-game mode every row names its own game.
type IngestPlaysInput struct {
	OffenseTeamID int64
	DefenseTeamID int64
	GameDate      *time.Time
	Season        *int
	Week          *int
	Venue         *string
	Source        string
}

type IngestPlaysResult struct {
	GameID         int64
	GameIDs        []int64
	Plays          int
	Drives         int
	TeamsCreated   int
	GamesCreated   int
	NullifiedCells int
}

type reportInvalidator interface {
	Invalidate(ctx context.Context)
}

type IngestionService struct {
	store       ingestion.Store
	cfg         IngestionConfig
	invalidator reportInvalidator
	logger      *logging.Logger
}

func NewIngestionService(
	store ingestion.Store,
	cfg IngestionConfig,
	invalidator reportInvalidator,
	logger *logging.Logger,
) *IngestionService {
	if cfg.Mode == "" {
		cfg.Mode = IngestModeSingleGame
	}
	if strings.TrimSpace(cfg.DefaultSource) == "" {
		cfg.DefaultSource = game.DefaultSource
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestionService{
		store:       store,
		cfg:         cfg,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *IngestionService) Mode() IngestMode {
	return s.cfg.Mode
}

type driveKey struct {
	gameID  int64
	driveID int
}

// ingestRun carries the state of one pass over a file.
type ingestRun struct {
	tx       ingestion.Tx
	resolver *ReferenceResolver
	result   IngestPlaysResult
	drives   map[driveKey]int64
	games    map[int64]struct{}
	batch    []play.Play
	single   game.Game
}

// IngestPlays loads one play-by-play export. Every game, drive, team and play
// it creates is committed together; any failure leaves the store unchanged.
func (s *IngestionService) IngestPlays(ctx context.Context, src io.Reader, input IngestPlaysInput) (IngestPlaysResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestPlays")
	defer span.End()

	started := time.Now()
	result, err := s.ingestPlays(ctx, src, input)
	if err != nil {
		err = classifyStoreError(err)
		s.logger.WarnContext(ctx, "play ingestion aborted", "mode", s.cfg.Mode, "error", err)
		return IngestPlaysResult{}, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
	if result.Plays == 0 {
		s.logger.WarnContext(ctx, "play csv contained no rows", "game_id", result.GameID, "mode", s.cfg.Mode)
	}
	s.logger.InfoContext(ctx, "plays ingested",
		"mode", s.cfg.Mode,
		"game_id", result.GameID,
		"games", len(result.GameIDs),
		"plays", result.Plays,
		"drives", result.Drives,
		"teams_created", result.TeamsCreated,
		"games_created", result.GamesCreated,
		"nullified_cells", result.NullifiedCells,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return result, nil
}

func (s *IngestionService) ingestPlays(ctx context.Context, src io.Reader, input IngestPlaysInput) (IngestPlaysResult, error) {
	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = s.cfg.DefaultSource
	}

	var single game.Game
	if s.cfg.Mode == IngestModeSingleGame {
		single = game.Game{
			OffenseTeamID: input.OffenseTeamID,
			DefenseTeamID: input.DefenseTeamID,
			Date:          input.GameDate,
			Season:        input.Season,
			Week:          input.Week,
			Venue:         trimOptional(input.Venue),
			Source:        source,
		}
		if err := single.Validate(); err != nil {
			return IngestPlaysResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	reader, err := hudl.NewPlayReader(src)
	if err != nil {
		if errors.Is(err, hudl.ErrNoHeader) {
			return IngestPlaysResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return IngestPlaysResult{}, crerr.Wrap(err, "open play csv")
	}
	if s.cfg.Mode == IngestModeMultiGame {
		for _, col := range []hudl.Column{hudl.ColumnOffenseTeam, hudl.ColumnDefenseTeam, hudl.ColumnSeason, hudl.ColumnWeek} {
			if !reader.Has(col) {
				return IngestPlaysResult{}, fmt.Errorf("%w: column %s is required in multi-game mode", ErrInvalidInput, col)
			}
		}
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return IngestPlaysResult{}, crerr.Wrap(err, "begin ingestion transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	run := &ingestRun{
		tx:       tx,
		resolver: NewReferenceResolver(tx, source),
		drives:   make(map[driveKey]int64),
		games:    make(map[int64]struct{}),
	}
	if s.cfg.Mode == IngestModeSingleGame {
		gameID, err := tx.InsertGame(ctx, single)
		if err != nil {
			return IngestPlaysResult{}, crerr.Wrap(err, "insert game")
		}
		single.ID = gameID
		run.single = single
		run.trackGame(gameID)
	}

	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return IngestPlaysResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.ingestRow(ctx, run, rec); err != nil {
			return IngestPlaysResult{}, err
		}
	}

	if len(run.batch) > 0 {
		if err := tx.BulkInsertPlays(ctx, run.batch); err != nil {
			return IngestPlaysResult{}, crerr.Wrapf(err, "bulk insert %d plays", len(run.batch))
		}
	}
	if err := tx.Commit(); err != nil {
		return IngestPlaysResult{}, crerr.Wrap(err, "commit ingestion transaction")
	}

	result := run.result
	result.Plays = len(run.batch)
	result.TeamsCreated = run.resolver.TeamsCreated()
	result.GamesCreated = run.resolver.GamesCreated()
	if s.cfg.Mode == IngestModeSingleGame {
		result.GamesCreated++
	}
	if len(result.GameIDs) > 0 {
		result.GameID = result.GameIDs[0]
	}

	return result, nil
}

func (s *IngestionService) ingestRow(ctx context.Context, run *ingestRun, rec hudl.Record) error {
	current := run.single
	if s.cfg.Mode == IngestModeMultiGame {
		resolved, err := resolveRowGame(ctx, run.resolver, rec)
		if err != nil {
			return err
		}
		current = resolved
		run.trackGame(current.ID)
	}

	driveID, err := run.driveFor(ctx, current, rec)
	if err != nil {
		return crerr.Wrapf(err, "line %d: insert drive", rec.Line)
	}

	item := play.Play{
		DriveID:       driveID,
		GameID:        current.ID,
		OffenseTeamID: current.OffenseTeamID,
		DefenseTeamID: current.DefenseTeamID,
		Quarter:       rec.Int(hudl.ColumnQuarter),
		Clock:         rec.String(hudl.ColumnClock),
		Down:          rec.Int(hudl.ColumnDown),
		Distance:      rec.Int(hudl.ColumnDistance),
		YardLine:      rec.Int(hudl.ColumnYardLine),
		HashMark:      rec.String(hudl.ColumnHashMark),
		FormationRaw:  rec.String(hudl.ColumnFormationRaw),
		Personnel:     rec.String(hudl.ColumnPersonnel),
		PlayType:      play.NormalizePlayType(rec.String(hudl.ColumnPlayType)),
		RunDirection:  rec.String(hudl.ColumnRunDirection),
		PassZone:      rec.String(hudl.ColumnPassZone),
		YardsGained:   rec.Int(hudl.ColumnYardsGained),
		Result:        rec.String(hudl.ColumnResult),
	}
	if item.FormationRaw != nil {
		item.FormationNorm = play.NormalizeFormation(item.FormationRaw)
	} else {
		item.FormationNorm = play.NormalizeFormation(rec.String(hudl.ColumnFormationNorm))
	}
	if err := item.Validate(); err != nil {
		return crerr.Wrapf(err, "line %d", rec.Line)
	}

	run.batch = append(run.batch, item)
	run.result.NullifiedCells += rec.Nullified()
	return nil
}

// resolveRowGame maps the team names and season/week of a row to a game.
// Season and week decide game identity, so they abort ingestion when malformed.
func resolveRowGame(ctx context.Context, resolver *ReferenceResolver, rec hudl.Record) (game.Game, error) {
	season, err := requiredInt(rec, hudl.ColumnSeason)
	if err != nil {
		return game.Game{}, err
	}
	week, err := requiredInt(rec, hudl.ColumnWeek)
	if err != nil {
		return game.Game{}, err
	}

	offenseName := rec.String(hudl.ColumnOffenseTeam)
	defenseName := rec.String(hudl.ColumnDefenseTeam)
	if offenseName == nil || defenseName == nil {
		return game.Game{}, fmt.Errorf("%w: line %d: offense and defense team names are required", ErrInvalidInput, rec.Line)
	}

	offenseID, err := resolver.ResolveTeam(ctx, *offenseName)
	if err != nil {
		return game.Game{}, crerr.Wrapf(err, "line %d: resolve offense team", rec.Line)
	}
	defenseID, err := resolver.ResolveTeam(ctx, *defenseName)
	if err != nil {
		return game.Game{}, crerr.Wrapf(err, "line %d: resolve defense team", rec.Line)
	}

	key := game.Key{Season: season, Week: week, OffenseTeamID: offenseID, DefenseTeamID: defenseID}
	gameID, err := resolver.ResolveGame(ctx, key)
	if err != nil {
		return game.Game{}, crerr.Wrapf(err, "line %d: resolve game", rec.Line)
	}

	return game.Game{
		ID:            gameID,
		OffenseTeamID: offenseID,
		DefenseTeamID: defenseID,
		Season:        &season,
		Week:          &week,
	}, nil
}

func requiredInt(rec hudl.Record, col hudl.Column) (int, error) {
	raw, _ := rec.Raw(col)
	value := rec.Int(col)
	if value == nil {
		if strings.TrimSpace(raw) == "" {
			return 0, fmt.Errorf("%w: line %d: %s is required", ErrInvalidInput, rec.Line, col)
		}
		return 0, fmt.Errorf("%w: line %d: %s %q is not an integer", ErrInvalidInput, rec.Line, col, raw)
	}
	return *value, nil
}

func (r *ingestRun) trackGame(gameID int64) {
	if _, ok := r.games[gameID]; ok {
		return
	}
	r.games[gameID] = struct{}{}
	r.result.GameIDs = append(r.result.GameIDs, gameID)
}

// driveFor groups rows sharing a drive id within one game; rows without a
// usable drive id get a drive of their own.
func (r *ingestRun) driveFor(ctx context.Context, current game.Game, rec hudl.Record) (int64, error) {
	number := rec.Int(hudl.ColumnDriveID)
	if number != nil {
		if id, ok := r.drives[driveKey{gameID: current.ID, driveID: *number}]; ok {
			return id, nil
		}
	}

	id, err := r.tx.InsertDrive(ctx, drive.Drive{
		GameID:        current.ID,
		OffenseTeamID: current.OffenseTeamID,
		DefenseTeamID: current.DefenseTeamID,
	})
	if err != nil {
		return 0, err
	}
	r.result.Drives++
	if number != nil {
		r.drives[driveKey{gameID: current.ID, driveID: *number}] = id
	}
	return id, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
