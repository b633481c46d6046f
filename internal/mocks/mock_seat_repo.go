package mocks

import (
	"context"

	"cinebox/internal/domain"
)

type MockSeatRepo struct {
	domain.SeatRepository
	GetByShowtimeFunc func(ctx context.Context, showtimeID int) ([]domain.Seat, error)
}

func (m *MockSeatRepo) GetByShowtime(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	return m.GetByShowtimeFunc(ctx, showtimeID)
}
