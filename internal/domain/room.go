package domain

import "context"

type Room struct {
	ID          int
	Name        string
	Rows        int
	SeatsPerRow int
}

// Capacity is the size of the seat pool generated for each showtime
// scheduled in this room.
func (r Room) Capacity() int {
	return r.Rows * r.SeatsPerRow
}

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetById(ctx context.Context, id int) (*Room, error)
	GetAll(ctx context.Context, pagination Pagination) ([]*Room, *Metadata, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id int) error
}
