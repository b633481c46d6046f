package app

import (
	"errors"
	"fmt"
	"net/http"

	"cinebox/internal/domain"
)

type createRoomRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Rows        int    `json:"rows" validate:"required,gt=0,max=100"`
	SeatsPerRow int    `json:"seatsPerRow" validate:"required,gt=0,max=100"`
}

type roomResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
	Capacity    int    `json:"capacity"`
}

type roomListResponse struct {
	Rooms    []roomResponse `json:"rooms"`
	Metadata *Metadata      `json:"metadata"`
}

func (app *Application) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var input createRoomRequest

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

	room := &domain.Room{
		Name:        input.Name,
		Rows:        input.Rows,
		SeatsPerRow: input.SeatsPerRow,
	}

	err = app.roomRepo.Create(r.Context(), room)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r, fmt.Errorf("a room with this name already exists"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toRoomResponse(room), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	room, err := app.roomRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toRoomResponse(room), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type roomListParams struct {
	Page     int    `validate:"gt=0"`
	PageSize int    `validate:"gt=0,max=100"`
	Sort     string `validate:"oneof=id name -id -name"`
}

func (app *Application) ListRooms(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	params := roomListParams{
		Page:     app.readInt(qs, "page", DefaultPage),
		PageSize: app.readInt(qs, "pageSize", DefaultPageSize),
		Sort:     app.readString(qs, "sort", DefaultSort),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := domain.Pagination{
		Page:     params.Page,
		PageSize: params.PageSize,
		Sort:     params.Sort,
	}

	rooms, metadata, err := app.roomRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := roomListResponse{
		Rooms:    make([]roomResponse, len(rooms)),
		Metadata: toApiMetadata(metadata),
	}

	for i, room := range rooms {
		resp.Rooms[i] = toRoomResponse(room)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input createRoomRequest

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

	room := &domain.Room{
		ID:          id,
		Name:        input.Name,
		Rows:        input.Rows,
		SeatsPerRow: input.SeatsPerRow,
	}

	err = app.roomRepo.Update(r.Context(), room)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r, fmt.Errorf("a room with this name already exists"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toRoomResponse(room), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.roomRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrResourceInUse):
			app.editConflictResponse(w, r, fmt.Errorf("room is referenced by existing showtimes"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toRoomResponse(room *domain.Room) roomResponse {
	return roomResponse{
		Id:          room.ID,
		Name:        room.Name,
		Rows:        room.Rows,
		SeatsPerRow: room.SeatsPerRow,
		Capacity:    room.Capacity(),
	}
}
