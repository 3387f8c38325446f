package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
)

type WarmSummariesResult struct {
	Games      int
	Warmed     int
	Failed     int
	DurationMs int64
}

// WarmSummaries loads the default summary of every game, plus the all-games
// aggregate, so the first dashboard view is served from cache. Individual
// failures are counted, not returned.
func (s *ReportService) WarmSummaries(ctx context.Context, workers int) (WarmSummariesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.WarmSummaries")
	defer span.End()

	if workers <= 0 {
		return WarmSummariesResult{}, fmt.Errorf("%w: workers must be > 0", ErrInvalidInput)
	}

	started := time.Now()
	games, err := s.ListGames(ctx)
	if err != nil {
		return WarmSummariesResult{}, err
	}

	targets := make([]int64, 0, len(games)+1)
	targets = append(targets, report.AllGames)
	for _, item := range games {
		targets = append(targets, item.ID)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return WarmSummariesResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var warmed atomic.Int32
	var failed atomic.Int32
	var wg sync.WaitGroup
	for _, gameID := range targets {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if _, err := s.GetSummary(ctx, gameID, 0); err != nil {
				failed.Add(1)
				return
			}
			warmed.Add(1)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return WarmSummariesResult{}, fmt.Errorf("submit warm task to worker pool: %w", err)
		}
	}
	wg.Wait()

	return WarmSummariesResult{
		Games:      len(games),
		Warmed:     int(warmed.Load()),
		Failed:     int(failed.Load()),
		DurationMs: time.Since(started).Milliseconds(),
	}, ctx.Err()
}
