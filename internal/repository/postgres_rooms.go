package repository

import (
	"context"
	"errors"
	"fmt"

	"cinebox/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRoomRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRoomRepository(db *pgxpool.Pool) *PostgresRoomRepository {
	return &PostgresRoomRepository{
		db: db,
	}
}

func (p *PostgresRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (name, row_count, seats_per_row)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, room.Name, room.Rows, room.SeatsPerRow).Scan(&room.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresRoomRepository) GetById(ctx context.Context, id int) (*domain.Room, error) {
	query := `
		SELECT id, name, row_count, seats_per_row
		FROM rooms
		WHERE id = $1
	`

	var room domain.Room

	err := p.db.QueryRow(ctx, query, id).Scan(&room.ID, &room.Name, &room.Rows, &room.SeatsPerRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &room, nil
}

func (p *PostgresRoomRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Room, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, name, row_count, seats_per_row
		FROM rooms
		ORDER BY %s %s, id ASC
		LIMIT $1 OFFSET $2`, pagination.SortColumn(), pagination.SortDirection())

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	rooms := []*domain.Room{}

	for rows.Next() {
		var room domain.Room

		err := rows.Scan(&totalRecords, &room.ID, &room.Name, &room.Rows, &room.SeatsPerRow)
		if err != nil {
			return nil, nil, err
		}

		rooms = append(rooms, &room)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return rooms, metadata, nil
}

func (p *PostgresRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	query := `
		UPDATE rooms
		SET name = $1, row_count = $2, seats_per_row = $3
		WHERE id = $4
	`

	result, err := p.db.Exec(ctx, query, room.Name, room.Rows, room.SeatsPerRow, room.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEditConflict
		}

		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresRoomRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrResourceInUse
		}

		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
