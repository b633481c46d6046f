package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cinebox/internal/domain"

	"github.com/redis/go-redis/v9"
)

const seatMapTTL = 30 * time.Second

type seatView struct {
	Id         int  `json:"id"`
	SeatNumber int  `json:"seatNumber"`
	Available  bool `json:"available"`
}

type seatRowView struct {
	RowNumber int        `json:"rowNumber"`
	Seats     []seatView `json:"seats"`
}

type seatMapResponse struct {
	ShowtimeId          int           `json:"showtimeId"`
	Rows                []seatRowView `json:"rows"`
	OccupancyPercentage float64       `json:"occupancyPercentage"`
}

// GetSeatMap serves the seat availability grid of a showtime. The grid is a
// point-in-time snapshot cached in Redis for a short TTL; availability is
// advisory and only the sale transaction decides who gets a seat.
func (app *Application) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	key := seatMapKey(id)

	cached, err := app.redis.Get(r.Context(), key).Bytes()
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}
	if !errors.Is(err, redis.Nil) {
		app.contextGetLogger(r).Warn("seat map cache read failed", "error", err, "key", key)
	}

	if _, err := app.showtimeRepo.GetById(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.seatRepo.GetByShowtime(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := buildSeatMap(id, seats)

	payload, err := json.Marshal(resp)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.redis.Set(r.Context(), key, payload, seatMapTTL).Err()
	if err != nil {
		app.contextGetLogger(r).Warn("seat map cache write failed", "error", err, "key", key)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// invalidateSeatMap drops the cached grid after a write that changed seat
// availability. Cache failures are logged, never surfaced: the TTL bounds
// staleness anyway.
func (app *Application) invalidateSeatMap(r *http.Request, showtimeID int) {
	err := app.redis.Del(r.Context(), seatMapKey(showtimeID)).Err()
	if err != nil {
		app.contextGetLogger(r).Warn("seat map cache invalidation failed", "error", err, "showtime_id", showtimeID)
	}
}

func seatMapKey(showtimeID int) string {
	return fmt.Sprintf("seat-map:%d", showtimeID)
}

func buildSeatMap(showtimeID int, seats []domain.Seat) seatMapResponse {
	resp := seatMapResponse{
		ShowtimeId: showtimeID,
		Rows:       []seatRowView{},
	}

	sold := 0

	for _, seat := range seats {
		if seat.Status == domain.SeatSold {
			sold++
		}

		n := len(resp.Rows)
		if n == 0 || resp.Rows[n-1].RowNumber != seat.RowNumber {
			resp.Rows = append(resp.Rows, seatRowView{RowNumber: seat.RowNumber})
			n++
		}

		resp.Rows[n-1].Seats = append(resp.Rows[n-1].Seats, seatView{
			Id:         seat.ID,
			SeatNumber: seat.SeatNumber,
			Available:  seat.Status == domain.SeatAvailable,
		})
	}

	if len(seats) > 0 {
		resp.OccupancyPercentage = float64(sold) / float64(len(seats)) * 100
	}

	return resp
}
