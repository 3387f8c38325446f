package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tendalyze/external/hudl"
	"github.com/riskibarqy/tendalyze/internal/domain/ingestion"
	"github.com/riskibarqy/tendalyze/internal/platform/logging"
)

type LoadTeamsResult struct {
	Inserted int
	Skipped  int
}

// TeamRosterService bulk loads team rosters. Rows whose (name, city, state)
// already exist are skipped, not updated.
type TeamRosterService struct {
	store  ingestion.Store
	logger *logging.Logger
}

func NewTeamRosterService(store ingestion.Store, logger *logging.Logger) *TeamRosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamRosterService{store: store, logger: logger}
}

func (s *TeamRosterService) LoadTeamsCSV(ctx context.Context, src io.Reader) (LoadTeamsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamRosterService.LoadTeamsCSV")
	defer span.End()

	reader, err := hudl.NewTeamReader(src)
	if err != nil {
		return LoadTeamsResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return LoadTeamsResult{}, classifyStoreError(crerr.Wrap(err, "begin roster transaction"))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var result LoadTeamsResult
	for {
		item, line, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return LoadTeamsResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if item.Validate() != nil {
			s.logger.WarnContext(ctx, "skip roster row without team name", "line", line)
			result.Skipped++
			continue
		}

		inserted, err := tx.InsertTeamIfAbsent(ctx, item)
		if err != nil {
			return LoadTeamsResult{}, classifyStoreError(crerr.Wrapf(err, "line %d: insert team %q", line, item.Name))
		}
		if inserted {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return LoadTeamsResult{}, classifyStoreError(crerr.Wrap(err, "commit roster transaction"))
	}

	s.logger.InfoContext(ctx, "team roster loaded", "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}
