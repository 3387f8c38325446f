package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/tendalyze/internal/domain/ingestion"
	"github.com/riskibarqy/tendalyze/internal/domain/report"
	qb "github.com/riskibarqy/tendalyze/internal/platform/querybuilder"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	// Class 08 covers connection exceptions.
	connectionExceptionClass = "08"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == foreignKeyViolationCode
	}
	return false
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == connectionExceptionClass
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// classifyWriteError marks ingestion write failures with the domain category
// while keeping the driver message.
func classifyWriteError(err error) error {
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %w", ingestion.ErrUnknownReference, err)
	case isConnectionError(err):
		return fmt.Errorf("%w: %w", ingestion.ErrStoreUnavailable, err)
	default:
		return err
	}
}

func nullStringToStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	out := v.String
	return &out
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func nullTimeToTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time
	return &out
}

func nullFloat64ToFloat64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	out := v.Float64
	return &out
}

// gameScope narrows plays to one game unless every game is requested.
func gameScope(gameID int64, extra ...qb.Condition) []qb.Condition {
	out := make([]qb.Condition, 0, len(extra)+1)
	if gameID != report.AllGames {
		out = append(out, qb.Eq("game_id", gameID))
	}
	return append(out, extra...)
}
