package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebox/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

// Create inserts the showtime and its complete seat pool in one transaction:
// either the showtime exists with every seat of the room grid, or nothing
// was persisted.
func (p *PostgresShowtimeRepository) Create(
	ctx context.Context,
	showtime *domain.Showtime,
	room *domain.Room) error {

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO showtimes (movie_id, room_id, start_time, end_time, base_price, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`

		err := tx.QueryRow(
			ctx,
			query,
			showtime.MovieID,
			showtime.RoomID,
			showtime.StartTime,
			showtime.EndTime,
			showtime.BasePrice,
			showtime.Status).Scan(&showtime.ID)

		if err != nil {
			return err
		}

		seats := domain.NewSeatPool(showtime.ID, room)

		rows := make([][]any, 0, len(seats))
		for _, seat := range seats {
			rows = append(rows, []any{
				seat.ShowtimeID,
				seat.RowNumber,
				seat.SeatNumber,
				seat.Status,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"seats"},
			[]string{"showtime_id", "row_number", "seat_number", "status"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOverlappingShowtime
		}
		if isForeignKeyViolation(err) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, room_id, start_time, end_time, base_price, status
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.RoomID,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.BasePrice,
		&showtime.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) GetDetailById(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
	query := `
		SELECT s.id, s.movie_id, s.room_id, s.start_time, s.end_time, s.base_price, s.status,
			r.name, m.title
		FROM showtimes s
		JOIN rooms r ON s.room_id = r.id
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1
	`

	var detail domain.ShowtimeDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.MovieID,
		&detail.RoomID,
		&detail.StartTime,
		&detail.EndTime,
		&detail.BasePrice,
		&detail.Status,
		&detail.RoomName,
		&detail.MovieTitle,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &detail, nil
}

func (p *PostgresShowtimeRepository) Search(
	ctx context.Context,
	filters domain.ShowtimeFilters) ([]*domain.ShowtimeDetail, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT count(*) OVER(),
			s.id, s.movie_id, s.room_id, s.start_time, s.end_time, s.base_price, s.status,
			r.name, m.title
		FROM showtimes s
		JOIN rooms r ON s.room_id = r.id
		JOIN movies m ON s.movie_id = m.id
		WHERE ($1::timestamptz IS NULL OR (s.start_time >= $1 AND s.start_time < $1 + interval '1 day'))
			AND ($2::bigint IS NULL OR s.room_id = $2)
			AND ($3::bigint IS NULL OR s.movie_id = $3)
			AND ($4::text IS NULL OR s.status = $4)
		ORDER BY s.%s %s, s.id ASC
		LIMIT $5 OFFSET $6`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(
		ctx,
		query,
		filters.Date,
		filters.RoomID,
		filters.MovieID,
		filters.Status,
		filters.Limit(),
		filters.Offset())

	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	showtimes := []*domain.ShowtimeDetail{}

	for rows.Next() {
		var detail domain.ShowtimeDetail

		err := rows.Scan(
			&totalRecords,
			&detail.ID,
			&detail.MovieID,
			&detail.RoomID,
			&detail.StartTime,
			&detail.EndTime,
			&detail.BasePrice,
			&detail.Status,
			&detail.RoomName,
			&detail.MovieTitle,
		)
		if err != nil {
			return nil, nil, err
		}

		showtimes = append(showtimes, &detail)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return showtimes, metadata, nil
}

// ExistsOverlapping reports whether a SCHEDULED showtime in the room shares
// more than a boundary instant with [start, end). Pass excludeID > 0 to skip
// the showtime being updated.
func (p *PostgresShowtimeRepository) ExistsOverlapping(
	ctx context.Context,
	roomID int,
	start, end time.Time,
	excludeID int) (bool, error) {

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM showtimes
			WHERE room_id = $1
				AND status = 'SCHEDULED'
				AND start_time < $3
				AND end_time > $2
				AND id != $4
		)
	`

	var exists bool

	err := p.db.QueryRow(ctx, query, roomID, start, end, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (p *PostgresShowtimeRepository) Update(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		UPDATE showtimes
		SET start_time = $1, end_time = $2, base_price = $3
		WHERE id = $4
	`

	result, err := p.db.Exec(
		ctx,
		query,
		showtime.StartTime,
		showtime.EndTime,
		showtime.BasePrice,
		showtime.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOverlappingShowtime
		}

		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresShowtimeRepository) Cancel(ctx context.Context, id int) error {
	query := `
		UPDATE showtimes
		SET status = 'CANCELLED'
		WHERE id = $1
	`

	result, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
