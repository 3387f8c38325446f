package game

import "context"

type Repository interface {
	List(ctx context.Context) ([]Listing, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
