package ingestion

import (
	"context"
	"errors"

	"github.com/riskibarqy/tendalyze/internal/domain/drive"
	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/play"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
)

var (
	// ErrUnknownReference marks a write that points at a team, game or drive
	// the store does not have.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrStoreUnavailable marks a failure to reach the store at all.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrTxDone is returned by commands issued after Commit or Rollback.
	ErrTxDone = errors.New("transaction already finished")
)

// Store opens the transaction an ingestion runs in.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Commands are the writes and lookups ingestion performs. Everything issued
// through one Tx becomes visible together on Commit or not at all.
type Commands interface {
	FindTeamByName(ctx context.Context, name string) (int64, bool, error)
	InsertTeam(ctx context.Context, item team.Team) (int64, error)
	// InsertTeamIfAbsent reports false when the (name, city, state) key already exists.
	InsertTeamIfAbsent(ctx context.Context, item team.Team) (bool, error)
	FindGame(ctx context.Context, key game.Key) (int64, bool, error)
	InsertGame(ctx context.Context, item game.Game) (int64, error)
	InsertDrive(ctx context.Context, item drive.Drive) (int64, error)
	BulkInsertPlays(ctx context.Context, items []play.Play) error
}

type Tx interface {
	Commands
	Commit() error
	// Rollback is a no-op after a successful Commit.
	Rollback() error
}
