package repository

import (
	"context"

	"cinebox/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

// GetByShowtime returns the full seat pool of the showtime ordered by row
// and seat number. No locks are taken; the availability seen here is
// advisory display data and may lag an in-flight sale.
func (p *PostgresSeatRepository) GetByShowtime(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	query := `
		SELECT id, showtime_id, row_number, seat_number, status
		FROM seats
		WHERE showtime_id = $1
		ORDER BY row_number, seat_number
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := []domain.Seat{}

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(
			&seat.ID,
			&seat.ShowtimeID,
			&seat.RowNumber,
			&seat.SeatNumber,
			&seat.Status,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
