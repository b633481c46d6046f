package domain

import "context"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatSold      SeatStatus = "SOLD"
)

type Seat struct {
	ID         int
	ShowtimeID int
	RowNumber  int
	SeatNumber int
	Status     SeatStatus
}

// Sell transitions the seat AVAILABLE -> SOLD. It is the only legal way to
// mark a seat sold; any other starting status is rejected.
func (s *Seat) Sell() error {
	if s.Status != SeatAvailable {
		return ErrSeatNotAvailable
	}

	s.Status = SeatSold

	return nil
}

// Release transitions the seat SOLD -> AVAILABLE when its ticket is
// cancelled.
func (s *Seat) Release() error {
	if s.Status != SeatSold {
		return ErrIllegalStatus
	}

	s.Status = SeatAvailable

	return nil
}

// NewSeatPool materializes one AVAILABLE seat per (row, seatNumber) position
// of the room grid, all bound to the given showtime. Seats are ordered by
// row then seat number.
func NewSeatPool(showtimeID int, room *Room) []Seat {
	seats := make([]Seat, 0, room.Capacity())

	for row := 1; row <= room.Rows; row++ {
		for num := 1; num <= room.SeatsPerRow; num++ {
			seats = append(seats, Seat{
				ShowtimeID: showtimeID,
				RowNumber:  row,
				SeatNumber: num,
				Status:     SeatAvailable,
			})
		}
	}

	return seats
}

type SeatRepository interface {
	// GetByShowtime returns every seat of the showtime ordered by row and
	// seat number. The read is lock-free; availability is advisory.
	GetByShowtime(ctx context.Context, showtimeID int) ([]Seat, error)
}
