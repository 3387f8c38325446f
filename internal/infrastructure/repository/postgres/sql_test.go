package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/tendalyze/internal/domain/ingestion"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches pq unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert team: %w", &pq.Error{Code: "23505", Constraint: "teams_unique_name_city_state"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("pq: duplicate key value violates unique constraint")) {
			t.Fatalf("expected false for untyped error")
		}
	})
}

func TestClassifyWriteError(t *testing.T) {
	fkErr := &pq.Error{Code: "23503", Message: `insert or update on table "games" violates foreign key constraint "games_offense_team_id_fkey"`}
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "foreign key violation", err: fkErr, want: ingestion.ErrUnknownReference},
		{name: "admin shutdown class 08", err: &pq.Error{Code: "08006"}, want: ingestion.ErrStoreUnavailable},
		{name: "bad conn", err: driver.ErrBadConn, want: ingestion.ErrStoreUnavailable},
		{name: "dial failure", err: dialErr, want: ingestion.ErrStoreUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyWriteError(fmt.Errorf("insert game: %w", tc.err))
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("expected driver error to stay in the chain: %v", got)
			}
		})
	}

	plain := &pq.Error{Code: "23505"}
	if got := classifyWriteError(plain); got != error(plain) {
		t.Fatalf("expected unclassified error to pass through, got %v", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("select team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullConversions(t *testing.T) {
	if got := nullInt64ToIntPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for null int, got %d", *got)
	}
	if got := nullInt64ToIntPtr(sql.NullInt64{Int64: 0, Valid: true}); got == nil || *got != 0 {
		t.Fatalf("expected zero to survive as a value")
	}
	if got := nullStringToStringPtr(sql.NullString{String: "Trips Right", Valid: true}); got == nil || *got != "Trips Right" {
		t.Fatalf("unexpected string conversion: %v", got)
	}
	if got := nullFloat64ToFloat64Ptr(sql.NullFloat64{}); got != nil {
		t.Fatalf("expected nil for null float")
	}
}

func TestGameScope(t *testing.T) {
	if got := gameScope(report.AllGames); len(got) != 0 {
		t.Fatalf("expected no condition for all games, got %d", len(got))
	}
	if got := gameScope(3); len(got) != 1 {
		t.Fatalf("expected one condition for a single game, got %d", len(got))
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
