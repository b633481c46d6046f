package mocks

import (
	"context"
	"time"

	"cinebox/internal/domain"
)

type MockShowtimeRepo struct {
	domain.ShowtimeRepository
	CreateFunc            func(ctx context.Context, showtime *domain.Showtime, room *domain.Room) error
	GetByIdFunc           func(ctx context.Context, id int) (*domain.Showtime, error)
	GetDetailByIdFunc     func(ctx context.Context, id int) (*domain.ShowtimeDetail, error)
	SearchFunc            func(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.ShowtimeDetail, *domain.Metadata, error)
	ExistsOverlappingFunc func(ctx context.Context, roomID int, start, end time.Time, excludeID int) (bool, error)
	UpdateFunc            func(ctx context.Context, showtime *domain.Showtime) error
	CancelFunc            func(ctx context.Context, id int) error
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime, room *domain.Room) error {
	return m.CreateFunc(ctx, showtime, room)
}

func (m *MockShowtimeRepo) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockShowtimeRepo) GetDetailById(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
	return m.GetDetailByIdFunc(ctx, id)
}

func (m *MockShowtimeRepo) Search(ctx context.Context, filters domain.ShowtimeFilters) ([]*domain.ShowtimeDetail, *domain.Metadata, error) {
	return m.SearchFunc(ctx, filters)
}

func (m *MockShowtimeRepo) ExistsOverlapping(ctx context.Context, roomID int, start, end time.Time, excludeID int) (bool, error) {
	return m.ExistsOverlappingFunc(ctx, roomID, start, end, excludeID)
}

func (m *MockShowtimeRepo) Update(ctx context.Context, showtime *domain.Showtime) error {
	return m.UpdateFunc(ctx, showtime)
}

func (m *MockShowtimeRepo) Cancel(ctx context.Context, id int) error {
	return m.CancelFunc(ctx, id)
}
