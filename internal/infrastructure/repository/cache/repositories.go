package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
	basecache "github.com/riskibarqy/tendalyze/internal/platform/cache"
)

// Every key written here lives under one of these prefixes so a finished
// ingestion can drop all derived reads at once.
const (
	reportPrefix = "report:"
	teamPrefix   = "team:"
	gamePrefix   = "game:"
)

type ReportRepository struct {
	next  report.Repository
	cache *basecache.Store
}

func NewReportRepository(next report.Repository, cache *basecache.Store) *ReportRepository {
	return &ReportRepository{next: next, cache: cache}
}

func (r *ReportRepository) CountPlays(ctx context.Context, gameID int64) (int, error) {
	v, err := r.cache.GetOrLoad(ctx, reportKey("count", gameID), func(ctx context.Context) (any, error) {
		return r.next.CountPlays(ctx, gameID)
	})
	if err != nil {
		return 0, err
	}

	count, _ := v.(int)
	return count, nil
}

func (r *ReportRepository) CountByPlayType(ctx context.Context, gameID int64) ([]report.PlayTypeCount, error) {
	v, err := r.cache.GetOrLoad(ctx, reportKey("playtype", gameID), func(ctx context.Context) (any, error) {
		items, err := r.next.CountByPlayType(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return append([]report.PlayTypeCount(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]report.PlayTypeCount)
	return append([]report.PlayTypeCount(nil), items...), nil
}

func (r *ReportRepository) TopFormations(ctx context.Context, gameID int64, limit int) ([]report.FormationCount, error) {
	key := reportKey("formation", gameID) + ":" + strconv.Itoa(limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.TopFormations(ctx, gameID, limit)
		if err != nil {
			return nil, err
		}
		return append([]report.FormationCount(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]report.FormationCount)
	return append([]report.FormationCount(nil), items...), nil
}

func (r *ReportRepository) AverageYardsByDown(ctx context.Context, gameID int64) ([]report.DownYards, error) {
	v, err := r.cache.GetOrLoad(ctx, reportKey("down", gameID), func(ctx context.Context) (any, error) {
		items, err := r.next.AverageYardsByDown(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return append([]report.DownYards(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]report.DownYards)
	return append([]report.DownYards(nil), items...), nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Listing, error) {
	v, err := r.cache.GetOrLoad(ctx, gamePrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]game.Listing(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Listing)
	return append([]game.Listing(nil), items...), nil
}

func (r *GameRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.next.Exists(ctx, id)
}

// Invalidator drops cached reads after a write commits.
type Invalidator struct {
	cache *basecache.Store
}

func NewInvalidator(cache *basecache.Store) *Invalidator {
	return &Invalidator{cache: cache}
}

func (i *Invalidator) Invalidate(ctx context.Context) {
	if i == nil || i.cache == nil {
		return
	}
	for _, prefix := range []string{reportPrefix, teamPrefix, gamePrefix} {
		i.cache.DeletePrefix(ctx, prefix)
	}
}

func reportKey(kind string, gameID int64) string {
	if gameID == report.AllGames {
		return reportPrefix + kind + ":all"
	}
	return reportPrefix + kind + ":" + strconv.FormatInt(gameID, 10)
}
