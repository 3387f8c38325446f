package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	"github.com/riskibarqy/tendalyze/internal/infrastructure/repository/memory"
	reportmock "github.com/riskibarqy/tendalyze/internal/mocks/domain/report"
	"github.com/stretchr/testify/mock"
)

func TestReportService_WarmSummaries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newSeededStore()
	ingest := NewIngestionService(store, IngestionConfig{}, nil, nil)
	for i := 0; i < 2; i++ {
		if _, err := ingest.IngestPlays(ctx, strings.NewReader(threeRowCSV), IngestPlaysInput{OffenseTeamID: 1, DefenseTeamID: 2}); err != nil {
			t.Fatalf("ingest plays: %v", err)
		}
	}

	service := NewReportService(store, memory.NewTeamRepository(store), memory.NewGameRepository(store), 0)
	result, err := service.WarmSummaries(ctx, 2)
	if err != nil {
		t.Fatalf("warm summaries: %v", err)
	}
	if result.Games != 2 || result.Warmed != 3 || result.Failed != 0 {
		t.Fatalf("unexpected warm result: %+v", result)
	}
}

type fixedGames []game.Listing

func (g fixedGames) List(context.Context) ([]game.Listing, error) { return g, nil }

func (g fixedGames) Exists(_ context.Context, id int64) (bool, error) {
	for _, item := range g {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func TestReportService_WarmSummaries_CountsFailures(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("statement timeout")
	repo := reportmock.NewRepository(t)
	repo.On("CountPlays", mock.Anything, mock.Anything).Return(1, nil).Maybe()
	repo.On("CountByPlayType", mock.Anything, mock.Anything).Return([]report.PlayTypeCount{}, nil).Maybe()
	repo.On("TopFormations", mock.Anything, int64(7), mock.Anything).Return(nil, repoErr).Maybe()
	repo.On("TopFormations", mock.Anything, mock.Anything, mock.Anything).Return([]report.FormationCount{}, nil).Maybe()
	repo.On("AverageYardsByDown", mock.Anything, mock.Anything).Return([]report.DownYards{}, nil).Maybe()

	store := memory.NewStore()
	service := NewReportService(repo, memory.NewTeamRepository(store), fixedGames{{ID: 3}, {ID: 7}}, 0)

	result, err := service.WarmSummaries(context.Background(), 4)
	if err != nil {
		t.Fatalf("warm summaries: %v", err)
	}
	if result.Games != 2 || result.Warmed != 2 || result.Failed != 1 {
		t.Fatalf("unexpected warm result: %+v", result)
	}
}

func TestReportService_WarmSummaries_RequiresWorkers(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	service := NewReportService(store, memory.NewTeamRepository(store), memory.NewGameRepository(store), 0)
	if _, err := service.WarmSummaries(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
