package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ShowtimeStatus string

const (
	ShowtimeScheduled ShowtimeStatus = "SCHEDULED"
	ShowtimeCompleted ShowtimeStatus = "COMPLETED"
	ShowtimeCancelled ShowtimeStatus = "CANCELLED"
)

type Showtime struct {
	ID        int
	MovieID   int
	RoomID    int
	StartTime time.Time
	EndTime   time.Time
	BasePrice decimal.Decimal
	Status    ShowtimeStatus
}

// Sellable reports whether tickets may be sold for this showtime.
func (s *Showtime) Sellable() bool {
	return s.Status == ShowtimeScheduled
}

// Overlaps reports whether the [start, end) window collides with this
// showtime's window. Strict inequalities: back-to-back showtimes whose
// boundaries touch do not overlap.
func (s *Showtime) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// ShowtimeDetail is a read projection of a showtime joined with the names
// of its room and movie.
type ShowtimeDetail struct {
	Showtime
	RoomName   string
	MovieTitle string
}

type ShowtimeFilters struct {
	Pagination
	Date    *time.Time
	RoomID  *int
	MovieID *int
	Status  *ShowtimeStatus
}

type ShowtimeRepository interface {
	// Create persists the showtime and generates its full seat pool from the
	// room grid in a single transaction.
	Create(ctx context.Context, showtime *Showtime, room *Room) error
	GetById(ctx context.Context, id int) (*Showtime, error)
	GetDetailById(ctx context.Context, id int) (*ShowtimeDetail, error)
	Search(ctx context.Context, filters ShowtimeFilters) ([]*ShowtimeDetail, *Metadata, error)
	ExistsOverlapping(ctx context.Context, roomID int, start, end time.Time, excludeID int) (bool, error)
	Update(ctx context.Context, showtime *Showtime) error
	Cancel(ctx context.Context, id int) error
}
