package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"cinebox/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

type createMovieRequest struct {
	Title           string `json:"title" validate:"required,max=255"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0"`
	Genre           string `json:"genre" validate:"required,max=30"`
	ReleaseDate     string `json:"releaseDate" validate:"required"`
	Description     string `json:"description" validate:"max=5000"`
}

type movieResponse struct {
	Id              int    `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	Genre           string `json:"genre"`
	ReleaseDate     string `json:"releaseDate"`
	Description     string `json:"description,omitempty"`
}

type movieListResponse struct {
	Movies   []movieResponse `json:"movies"`
	Metadata *Metadata       `json:"metadata"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input createMovieRequest

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

	releaseDate, err := time.Parse(time.DateOnly, input.ReleaseDate)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("releaseDate must be in YYYY-MM-DD format"))
		return
	}

	movie := &domain.Movie{
		Title:           input.Title,
		DurationMinutes: input.DurationMinutes,
		Genre:           input.Genre,
		ReleaseDate:     releaseDate,
		Description:     input.Description,
	}

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r, fmt.Errorf("a movie with this title and release date already exists"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type movieListParams struct {
	Page     int    `validate:"gt=0"`
	PageSize int    `validate:"gt=0,max=100"`
	Sort     string `validate:"oneof=id title release_date -id -title -release_date"`
}

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	params := movieListParams{
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
		Term:     app.readString(qs, "term", ""),
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := movieListResponse{
		Movies:   make([]movieResponse, len(movies)),
		Metadata: toApiMetadata(metadata),
	}

	for i, movie := range movies {
		resp.Movies[i] = toMovieResponse(movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input createMovieRequest

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

	releaseDate, err := time.Parse(time.DateOnly, input.ReleaseDate)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("releaseDate must be in YYYY-MM-DD format"))
		return
	}

	movie := &domain.Movie{
		ID:              id,
		Title:           input.Title,
		DurationMinutes: input.DurationMinutes,
		Genre:           input.Genre,
		ReleaseDate:     releaseDate,
		Description:     input.Description,
	}

	err = app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r, fmt.Errorf("a movie with this title and release date already exists"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrResourceInUse):
			app.editConflictResponse(w, r, fmt.Errorf("movie is referenced by existing showtimes"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toMovieResponse(movie *domain.Movie) movieResponse {
	return movieResponse{
		Id:              movie.ID,
		Title:           movie.Title,
		DurationMinutes: movie.DurationMinutes,
		Genre:           movie.Genre,
		ReleaseDate:     movie.ReleaseDate.Format(time.DateOnly),
		Description:     movie.Description,
	}
}

func toApiMetadata(metadata *domain.Metadata) *Metadata {
	if metadata == nil {
		return nil
	}

	return &Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
