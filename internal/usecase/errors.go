package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/tendalyze/internal/domain/ingestion"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classifyStoreError keeps the store's message but files it under the
// category the caller maps to a response.
func classifyStoreError(err error) error {
	switch {
	case err == nil, errors.Is(err, ErrInvalidInput), errors.Is(err, ErrDependencyUnavailable):
		return err
	case errors.Is(err, ingestion.ErrUnknownReference):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ingestion.ErrStoreUnavailable):
		return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	default:
		return err
	}
}
