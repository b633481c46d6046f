package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID              int
	Title           string
	DurationMinutes int
	Genre           string
	ReleaseDate     time.Time
	Description     string
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetById(ctx context.Context, id int) (*Movie, error)
	GetAll(ctx context.Context, pagination Pagination) ([]*Movie, *Metadata, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}
