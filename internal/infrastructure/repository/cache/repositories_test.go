package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/tendalyze/internal/domain/report"
	reportmock "github.com/riskibarqy/tendalyze/internal/mocks/domain/report"
	basecache "github.com/riskibarqy/tendalyze/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestReportRepository_CachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := basecache.NewStore(time.Minute)
	next := reportmock.NewRepository(t)
	next.On("CountByPlayType", mock.Anything, int64(7)).
		Return([]report.PlayTypeCount{{PlayType: "run", Plays: 3}}, nil).Twice()

	repo := NewReportRepository(next, store)
	for i := 0; i < 3; i++ {
		items, err := repo.CountByPlayType(ctx, 7)
		if err != nil {
			t.Fatalf("count by play type: %v", err)
		}
		if len(items) != 1 || items[0].Plays != 3 {
			t.Fatalf("unexpected items: %+v", items)
		}
	}

	NewInvalidator(store).Invalidate(ctx)

	if _, err := repo.CountByPlayType(ctx, 7); err != nil {
		t.Fatalf("count after invalidate: %v", err)
	}
}

func TestReportRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := reportmock.NewRepository(t)
	next.On("TopFormations", mock.Anything, report.AllGames, 5).
		Return([]report.FormationCount{{Formation: "Trips Rt", Plays: 4}}, nil).Once()

	repo := NewReportRepository(next, basecache.NewStore(time.Minute))
	first, err := repo.TopFormations(ctx, report.AllGames, 5)
	if err != nil {
		t.Fatalf("top formations: %v", err)
	}
	first[0].Formation = "mutated"

	second, err := repo.TopFormations(ctx, report.AllGames, 5)
	if err != nil {
		t.Fatalf("top formations again: %v", err)
	}
	if second[0].Formation != "Trips Rt" {
		t.Fatalf("cached value leaked a caller mutation: %+v", second)
	}
}

func TestReportRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoErr := errors.New("connection reset")
	next := reportmock.NewRepository(t)
	next.On("CountPlays", mock.Anything, int64(2)).Return(0, repoErr).Once()
	next.On("CountPlays", mock.Anything, int64(2)).Return(11, nil).Once()

	repo := NewReportRepository(next, basecache.NewStore(time.Minute))
	if _, err := repo.CountPlays(ctx, 2); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
	count, err := repo.CountPlays(ctx, 2)
	if err != nil || count != 11 {
		t.Fatalf("expected fresh load after error, got %d %v", count, err)
	}
}

func TestInvalidator_NilIsNoop(t *testing.T) {
	t.Parallel()

	var invalidator *Invalidator
	invalidator.Invalidate(context.Background())
}
