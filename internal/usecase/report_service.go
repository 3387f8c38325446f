package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultTopFormations = 5
	maxTopFormations     = 50
)

type ReportService struct {
	reportRepo    report.Repository
	teamRepo      team.Repository
	gameRepo      game.Repository
	topFormations int
}

func NewReportService(
	reportRepo report.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	topFormations int,
) *ReportService {
	if topFormations <= 0 {
		topFormations = DefaultTopFormations
	}
	return &ReportService{
		reportRepo:    reportRepo,
		teamRepo:      teamRepo,
		gameRepo:      gameRepo,
		topFormations: topFormations,
	}
}

// GetSummary runs the dashboard's read queries for one game, or for every
// game when gameID is report.AllGames. A top of zero uses the configured default.
func (s *ReportService) GetSummary(ctx context.Context, gameID int64, top int) (report.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.GetSummary")
	defer span.End()

	if gameID < 0 {
		return report.Summary{}, fmt.Errorf("%w: game id must not be negative", ErrInvalidInput)
	}
	if top < 0 || top > maxTopFormations {
		return report.Summary{}, fmt.Errorf("%w: top must be between 1 and %d", ErrInvalidInput, maxTopFormations)
	}
	if top == 0 {
		top = s.topFormations
	}

	if gameID != report.AllGames {
		if err := s.ensureGame(ctx, gameID); err != nil {
			return report.Summary{}, err
		}
	}

	out := report.Summary{GameID: gameID}
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		total, err := s.reportRepo.CountPlays(ctx, gameID)
		if err != nil {
			return fmt.Errorf("count plays: %w", err)
		}
		out.TotalPlays = total
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.reportRepo.CountByPlayType(ctx, gameID)
		if err != nil {
			return fmt.Errorf("count plays by type: %w", err)
		}
		out.PlayTypes = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.reportRepo.TopFormations(ctx, gameID, top)
		if err != nil {
			return fmt.Errorf("top formations: %w", err)
		}
		out.TopFormations = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.reportRepo.AverageYardsByDown(ctx, gameID)
		if err != nil {
			return fmt.Errorf("average yards by down: %w", err)
		}
		out.YardsByDown = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return report.Summary{}, err
	}

	return out, nil
}

func (s *ReportService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *ReportService) ListGames(ctx context.Context) ([]game.Listing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.ListGames")
	defer span.End()

	items, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return items, nil
}

func (s *ReportService) ensureGame(ctx context.Context, gameID int64) error {
	exists, err := s.gameRepo.Exists(ctx, gameID)
	if err != nil {
		return fmt.Errorf("check game: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: game=%d", ErrNotFound, gameID)
	}
	return nil
}
