package repository

import (
	"context"
	"errors"
	"time"

	"cinebox/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

// Sell executes the whole purchase as one transaction. The requested seats
// are locked with SELECT ... FOR UPDATE in ascending id order, so two sales
// racing over overlapping seat sets always acquire locks in the same order
// and cannot deadlock each other. The locks are held until commit; a racer
// that started before this sale committed observes the shrunken AVAILABLE
// set once it acquires its own locks and fails the exact-count check.
//
// Duplicated seat ids in the request are not collapsed: the locked set can
// contain each seat only once, so the count check fails deterministically.
func (p *PostgresTicketRepository) Sell(
	ctx context.Context,
	showtime *domain.ShowtimeDetail,
	seatIDs []int,
	customerName string) (*domain.Sale, error) {

	var sale *domain.Sale

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		lockQuery := `
			SELECT id, showtime_id, row_number, seat_number, status
			FROM seats
			WHERE id = ANY($1)
				AND showtime_id = $2
				AND status = 'AVAILABLE'
			ORDER BY id
			FOR UPDATE
		`

		rows, err := tx.Query(ctx, lockQuery, seatIDs, showtime.ID)
		if err != nil {
			return err
		}

		seats := []domain.Seat{}

		for rows.Next() {
			var seat domain.Seat

			err = rows.Scan(&seat.ID, &seat.ShowtimeID, &seat.RowNumber, &seat.SeatNumber, &seat.Status)
			if err != nil {
				rows.Close()
				return err
			}

			seats = append(seats, seat)
		}

		rows.Close()

		if err = rows.Err(); err != nil {
			return err
		}

		// All-or-nothing: every requested seat must be in the locked
		// AVAILABLE set, otherwise the sale aborts without mutation.
		if len(seats) != len(seatIDs) {
			return domain.ErrSeatNotAvailable
		}

		lockedIDs := make([]int, len(seats))
		for i := range seats {
			if err := seats[i].Sell(); err != nil {
				return err
			}
			lockedIDs[i] = seats[i].ID
		}

		_, err = tx.Exec(ctx, `UPDATE seats SET status = 'SOLD' WHERE id = ANY($1)`, lockedIDs)
		if err != nil {
			return err
		}

		purchasedAt := time.Now().UTC()

		ticketRows := make([][]any, 0, len(seats))
		for _, seat := range seats {
			ticketRows = append(ticketRows, []any{
				seat.ID,
				customerName,
				showtime.BasePrice,
				domain.TicketActive,
				purchasedAt,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"tickets"},
			[]string{"seat_id", "customer_name", "price", "status", "purchase_date"},
			pgx.CopyFromRows(ticketRows),
		)
		if err != nil {
			// The partial unique index on tickets.seat_id backstops the lock
			// discipline: a live ticket already exists for one of the seats.
			if isUniqueViolation(err) {
				return domain.ErrSeatNotAvailable
			}

			return err
		}

		tickets := make([]domain.TicketDetail, len(seats))
		for i, seat := range seats {
			tickets[i] = domain.TicketDetail{
				Owner:        customerName,
				MovieTitle:   showtime.MovieTitle,
				RowNumber:    seat.RowNumber,
				SeatNumber:   seat.SeatNumber,
				PurchaseDate: purchasedAt,
				ShowTime:     showtime.StartTime,
			}
		}

		sale = &domain.Sale{
			TotalPrice: showtime.BasePrice.Mul(decimal.NewFromInt(int64(len(tickets)))),
			Tickets:    tickets,
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (p *PostgresTicketRepository) GetDetailById(ctx context.Context, id int) (*domain.TicketDetail, error) {
	query := `
		SELECT t.customer_name, m.title, s.row_number, s.seat_number, t.purchase_date, sh.start_time
		FROM tickets t
		JOIN seats s ON t.seat_id = s.id
		JOIN showtimes sh ON s.showtime_id = sh.id
		JOIN movies m ON sh.movie_id = m.id
		WHERE t.id = $1
	`

	var detail domain.TicketDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.Owner,
		&detail.MovieTitle,
		&detail.RowNumber,
		&detail.SeatNumber,
		&detail.PurchaseDate,
		&detail.ShowTime,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &detail, nil
}

// Cancel transitions an ACTIVE ticket to CANCELLED and releases its seat
// back to AVAILABLE. The ticket and seat rows are locked for the duration
// so a racing cancel or consume of the same ticket serializes behind it.
func (p *PostgresTicketRepository) Cancel(ctx context.Context, id int) error {
	return p.transition(ctx, id, func(ticket *domain.Ticket, seat *domain.Seat) error {
		if err := ticket.Cancel(); err != nil {
			return err
		}

		return seat.Release()
	})
}

// Consume transitions an ACTIVE ticket to CONSUMED. The seat stays SOLD.
func (p *PostgresTicketRepository) Consume(ctx context.Context, id int) error {
	return p.transition(ctx, id, func(ticket *domain.Ticket, _ *domain.Seat) error {
		return ticket.Consume()
	})
}

func (p *PostgresTicketRepository) transition(
	ctx context.Context,
	id int,
	fn func(ticket *domain.Ticket, seat *domain.Seat) error) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT t.id, t.seat_id, t.status, s.status
			FROM tickets t
			JOIN seats s ON t.seat_id = s.id
			WHERE t.id = $1
			FOR UPDATE OF t, s
		`

		var (
			ticket domain.Ticket
			seat   domain.Seat
		)

		err := tx.QueryRow(ctx, query, id).Scan(&ticket.ID, &ticket.SeatID, &ticket.Status, &seat.Status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		seat.ID = ticket.SeatID

		if err := fn(&ticket, &seat); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE tickets SET status = $1 WHERE id = $2`, ticket.Status, ticket.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE seats SET status = $1 WHERE id = $2`, seat.Status, seat.ID)

		return err
	})
}
