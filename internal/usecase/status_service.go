package usecase

import (
	"context"
	"fmt"
)

// StoreStatus is what the connection check reports about the database.
type StoreStatus struct {
	Version string
	Plays   int
}

type storeProber interface {
	Ping(ctx context.Context) error
	ServerVersion(ctx context.Context) (string, error)
	CountAllPlays(ctx context.Context) (int, error)
}

type StatusService struct {
	prober storeProber
}

func NewStatusService(prober storeProber) *StatusService {
	return &StatusService{prober: prober}
}

func (s *StatusService) Ready(ctx context.Context) error {
	if err := s.prober.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	return nil
}

func (s *StatusService) Check(ctx context.Context) (StoreStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatusService.Check")
	defer span.End()

	version, err := s.prober.ServerVersion(ctx)
	if err != nil {
		return StoreStatus{}, fmt.Errorf("%w: server version: %v", ErrDependencyUnavailable, err)
	}
	plays, err := s.prober.CountAllPlays(ctx)
	if err != nil {
		return StoreStatus{}, fmt.Errorf("count plays: %w", err)
	}
	return StoreStatus{Version: version, Plays: plays}, nil
}
