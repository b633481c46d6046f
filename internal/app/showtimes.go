package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"cinebox/internal/domain"

	"github.com/shopspring/decimal"
)

type createShowtimeRequest struct {
	MovieID   int             `json:"movieId" validate:"required,gt=0"`
	RoomID    int             `json:"roomId" validate:"required,gt=0"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	EndTime   time.Time       `json:"endTime" validate:"required"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

// A showtime's movie and room are fixed at creation; only the window and
// price can change afterwards.
type updateShowtimeRequest struct {
	StartTime time.Time       `json:"startTime" validate:"required"`
	EndTime   time.Time       `json:"endTime" validate:"required"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

type showtimeResponse struct {
	Id         int             `json:"id"`
	MovieId    int             `json:"movieId"`
	RoomId     int             `json:"roomId"`
	StartTime  time.Time       `json:"startTime"`
	EndTime    time.Time       `json:"endTime"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	Status     string          `json:"status"`
	MovieTitle string          `json:"movieTitle,omitempty"`
	RoomName   string          `json:"roomName,omitempty"`
}

type showtimeListResponse struct {
	Showtimes []showtimeResponse `json:"showtimes"`
	Metadata  *Metadata          `json:"metadata"`
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var input createShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = validateShowtimeWindow(input.StartTime, input.EndTime, input.BasePrice)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), input.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	room, err := app.roomRepo.GetById(r.Context(), input.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	overlaps, err := app.showtimeRepo.ExistsOverlapping(r.Context(), room.ID, input.StartTime, input.EndTime, 0)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if overlaps {
		app.editConflictResponse(w, r, fmt.Errorf("room %d already has a showtime overlapping this window", room.ID))
		return
	}

	showtime := &domain.Showtime{
		MovieID:   movie.ID,
		RoomID:    room.ID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		BasePrice: input.BasePrice,
		Status:    domain.ShowtimeScheduled,
	}

	err = app.showtimeRepo.Create(r.Context(), showtime, room)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOverlappingShowtime):
			app.editConflictResponse(w, r, fmt.Errorf("room %d already has a showtime overlapping this window", room.ID))
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	detail, err := app.showtimeRepo.GetDetailById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeDetailResponse(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type showtimeListParams struct {
	Page     int    `validate:"gt=0"`
	PageSize int    `validate:"gt=0,max=100"`
	Sort     string `validate:"oneof=id start_time -id -start_time"`
	Status   string `validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED"`
}

func (app *Application) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	params := showtimeListParams{
		Page:     app.readInt(qs, "page", DefaultPage),
		PageSize: app.readInt(qs, "pageSize", DefaultPageSize),
		Sort:     app.readString(qs, "sort", "start_time"),
		Status:   app.readString(qs, "status", ""),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := domain.ShowtimeFilters{
		Pagination: domain.Pagination{
			Page:     params.Page,
			PageSize: params.PageSize,
			Sort:     params.Sort,
		},
	}

	if s := app.readString(qs, "date", ""); s != "" {
		date, err := time.Parse(time.DateOnly, s)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("date must be in YYYY-MM-DD format"))
			return
		}
		filters.Date = &date
	}

	if id := app.readInt(qs, "roomId", 0); id > 0 {
		filters.RoomID = &id
	}

	if id := app.readInt(qs, "movieId", 0); id > 0 {
		filters.MovieID = &id
	}

	if params.Status != "" {
		status := domain.ShowtimeStatus(params.Status)
		filters.Status = &status
	}

	details, metadata, err := app.showtimeRepo.Search(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := showtimeListResponse{
		Showtimes: make([]showtimeResponse, len(details)),
		Metadata:  toApiMetadata(metadata),
	}

	for i, detail := range details {
		resp.Showtimes[i] = toShowtimeDetailResponse(detail)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input updateShowtimeRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = validateShowtimeWindow(input.StartTime, input.EndTime, input.BasePrice)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !showtime.Sellable() {
		app.illegalStatusResponse(w, r, fmt.Errorf("showtime %d is %s and can no longer be modified", id, showtime.Status))
		return
	}

	// Rescheduling within the same room must not collide with the showtime's
	// own current window.
	overlaps, err := app.showtimeRepo.ExistsOverlapping(r.Context(), showtime.RoomID, input.StartTime, input.EndTime, id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if overlaps {
		app.editConflictResponse(w, r, fmt.Errorf("room %d already has a showtime overlapping this window", showtime.RoomID))
		return
	}

	showtime.StartTime = input.StartTime
	showtime.EndTime = input.EndTime
	showtime.BasePrice = input.BasePrice

	err = app.showtimeRepo.Update(r.Context(), showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrOverlappingShowtime):
			app.editConflictResponse(w, r, fmt.Errorf("room %d already has a showtime overlapping this window", showtime.RoomID))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if showtime.Status == domain.ShowtimeCancelled {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if showtime.Status == domain.ShowtimeCompleted {
		app.illegalStatusResponse(w, r, fmt.Errorf("showtime %d has already completed", id))
		return
	}

	err = app.showtimeRepo.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateSeatMap(r, id)

	w.WriteHeader(http.StatusNoContent)
}

func validateShowtimeWindow(start, end time.Time, basePrice decimal.Decimal) error {
	if !start.Before(end) {
		return fmt.Errorf("startTime must be before endTime")
	}

	if basePrice.IsNegative() {
		return fmt.Errorf("basePrice must not be negative")
	}

	return nil
}

func toShowtimeResponse(showtime *domain.Showtime) showtimeResponse {
	return showtimeResponse{
		Id:        showtime.ID,
		MovieId:   showtime.MovieID,
		RoomId:    showtime.RoomID,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		BasePrice: showtime.BasePrice,
		Status:    string(showtime.Status),
	}
}

func toShowtimeDetailResponse(detail *domain.ShowtimeDetail) showtimeResponse {
	resp := toShowtimeResponse(&detail.Showtime)
	resp.MovieTitle = detail.MovieTitle
	resp.RoomName = detail.RoomName

	return resp
}
