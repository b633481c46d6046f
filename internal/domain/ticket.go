package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketActive    TicketStatus = "ACTIVE"
	TicketCancelled TicketStatus = "CANCELLED"
	TicketConsumed  TicketStatus = "CONSUMED"
)

type Ticket struct {
	ID           int
	SeatID       int
	CustomerName string
	Price        decimal.Decimal
	Status       TicketStatus
	PurchaseDate time.Time
}

// Cancel transitions the ticket ACTIVE -> CANCELLED. CANCELLED and CONSUMED
// are terminal; cancelling from either fails without mutation.
func (t *Ticket) Cancel() error {
	if t.Status != TicketActive {
		return ErrIllegalStatus
	}

	t.Status = TicketCancelled

	return nil
}

// Consume transitions the ticket ACTIVE -> CONSUMED for entry validation.
// The seat stays SOLD; consumption never frees it.
func (t *Ticket) Consume() error {
	if t.Status != TicketActive {
		return ErrIllegalStatus
	}

	t.Status = TicketConsumed

	return nil
}

// TicketDetail is the per-ticket view returned from a sale or a lookup.
type TicketDetail struct {
	Owner        string
	MovieTitle   string
	RowNumber    int
	SeatNumber   int
	PurchaseDate time.Time
	ShowTime     time.Time
}

// Sale is the result of a committed multi-seat purchase.
type Sale struct {
	TotalPrice decimal.Decimal
	Tickets    []TicketDetail
}

type TicketRepository interface {
	// Sell atomically purchases the requested seats of the showtime: it locks
	// the currently AVAILABLE subset of the seat ids in ascending id order,
	// fails with ErrSeatNotAvailable unless every requested seat was locked,
	// marks the seats SOLD and records one ACTIVE ticket per seat priced at
	// the showtime base price. Either every seat is sold or none.
	Sell(ctx context.Context, showtime *ShowtimeDetail, seatIDs []int, customerName string) (*Sale, error)

	GetDetailById(ctx context.Context, id int) (*TicketDetail, error)

	// Cancel transitions the ticket to CANCELLED and releases its seat back
	// to AVAILABLE, holding row locks on both for the duration.
	Cancel(ctx context.Context, id int) error

	// Consume transitions the ticket to CONSUMED. The seat remains SOLD.
	Consume(ctx context.Context, id int) error
}
