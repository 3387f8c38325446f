package team

import "context"

// Repository describes team read needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
}
