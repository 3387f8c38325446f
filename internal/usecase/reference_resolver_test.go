package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
	ingestionmock "github.com/riskibarqy/tendalyze/internal/mocks/domain/ingestion"
	"github.com/stretchr/testify/mock"
)

func TestReferenceResolver_ResolveTeamCreatesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tx := ingestionmock.NewTx(t)
	tx.On("FindTeamByName", ctx, "Eagles").Return(int64(0), false, nil).Once()
	tx.On("InsertTeam", ctx, team.Team{Name: "Eagles"}).Return(int64(7), nil).Once()

	resolver := NewReferenceResolver(tx, "")
	first, err := resolver.ResolveTeam(ctx, "Eagles")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := resolver.ResolveTeam(ctx, "  Eagles ")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if first != 7 || second != 7 {
		t.Fatalf("unexpected team ids: first=%d second=%d", first, second)
	}
	if resolver.TeamsCreated() != 1 {
		t.Fatalf("expected one team created, got %d", resolver.TeamsCreated())
	}
}

func TestReferenceResolver_ResolveTeamUsesExisting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tx := ingestionmock.NewTx(t)
	tx.On("FindTeamByName", ctx, "Hawks").Return(int64(3), true, nil).Once()

	resolver := NewReferenceResolver(tx, "")
	id, err := resolver.ResolveTeam(ctx, "Hawks")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != 3 {
		t.Fatalf("unexpected team id: %d", id)
	}
	if resolver.TeamsCreated() != 0 {
		t.Fatalf("expected no team created, got %d", resolver.TeamsCreated())
	}
}

func TestReferenceResolver_StoreFailureIsNotRetried(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storeErr := errors.New("connection reset")
	tx := ingestionmock.NewTx(t)
	tx.On("FindTeamByName", ctx, "Eagles").Return(int64(0), false, nil).Once()
	tx.On("InsertTeam", ctx, mock.AnythingOfType("team.Team")).Return(int64(0), storeErr).Once()

	resolver := NewReferenceResolver(tx, "")
	_, err := resolver.ResolveTeam(ctx, "Eagles")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestReferenceResolver_ResolveTeamRejectsBlankName(t *testing.T) {
	t.Parallel()

	resolver := NewReferenceResolver(ingestionmock.NewTx(t), "")
	if _, err := resolver.ResolveTeam(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReferenceResolver_ResolveGameCreatesWithSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	key := game.Key{Season: 2024, Week: 3, OffenseTeamID: 1, DefenseTeamID: 2}
	tx := ingestionmock.NewTx(t)
	tx.On("FindGame", ctx, key).Return(int64(0), false, nil).Once()
	tx.On("InsertGame", ctx, mock.MatchedBy(func(item game.Game) bool {
		return item.OffenseTeamID == 1 && item.DefenseTeamID == 2 &&
			item.Season != nil && *item.Season == 2024 &&
			item.Week != nil && *item.Week == 3 &&
			item.Source == "Scout"
	})).Return(int64(11), nil).Once()

	resolver := NewReferenceResolver(tx, "Scout")
	for i := 0; i < 2; i++ {
		id, err := resolver.ResolveGame(ctx, key)
		if err != nil {
			t.Fatalf("resolve game: %v", err)
		}
		if id != 11 {
			t.Fatalf("unexpected game id: %d", id)
		}
	}
	if resolver.GamesCreated() != 1 {
		t.Fatalf("expected one game created, got %d", resolver.GamesCreated())
	}
}
