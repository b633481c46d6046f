package mocks

import (
	"context"

	"cinebox/internal/domain"
)

type MockRoomRepo struct {
	domain.RoomRepository
	CreateFunc  func(ctx context.Context, room *domain.Room) error
	GetByIdFunc func(ctx context.Context, id int) (*domain.Room, error)
	GetAllFunc  func(ctx context.Context, pagination domain.Pagination) ([]*domain.Room, *domain.Metadata, error)
	UpdateFunc  func(ctx context.Context, room *domain.Room) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	return m.CreateFunc(ctx, room)
}

func (m *MockRoomRepo) GetById(ctx context.Context, id int) (*domain.Room, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockRoomRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Room, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, pagination)
}

func (m *MockRoomRepo) Update(ctx context.Context, room *domain.Room) error {
	return m.UpdateFunc(ctx, room)
}

func (m *MockRoomRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
