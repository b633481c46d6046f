package mocks

import (
	"context"

	"cinebox/internal/domain"
)

type MockTicketRepo struct {
	domain.TicketRepository
	SellFunc          func(ctx context.Context, showtime *domain.ShowtimeDetail, seatIDs []int, customerName string) (*domain.Sale, error)
	GetDetailByIdFunc func(ctx context.Context, id int) (*domain.TicketDetail, error)
	CancelFunc        func(ctx context.Context, id int) error
	ConsumeFunc       func(ctx context.Context, id int) error
}

func (m *MockTicketRepo) Sell(ctx context.Context, showtime *domain.ShowtimeDetail, seatIDs []int, customerName string) (*domain.Sale, error) {
	return m.SellFunc(ctx, showtime, seatIDs, customerName)
}

func (m *MockTicketRepo) GetDetailById(ctx context.Context, id int) (*domain.TicketDetail, error) {
	return m.GetDetailByIdFunc(ctx, id)
}

func (m *MockTicketRepo) Cancel(ctx context.Context, id int) error {
	return m.CancelFunc(ctx, id)
}

func (m *MockTicketRepo) Consume(ctx context.Context, id int) error {
	return m.ConsumeFunc(ctx, id)
}
