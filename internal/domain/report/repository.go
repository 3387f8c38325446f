package report

import "context"

// Repository serves the group-by-count queries behind the dashboard.
// A gameID of AllGames aggregates across every game.
type Repository interface {
	CountPlays(ctx context.Context, gameID int64) (int, error)
	CountByPlayType(ctx context.Context, gameID int64) ([]PlayTypeCount, error)
	TopFormations(ctx context.Context, gameID int64, limit int) ([]FormationCount, error)
	AverageYardsByDown(ctx context.Context, gameID int64) ([]DownYards, error)
}
