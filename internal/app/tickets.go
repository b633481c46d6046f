package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cinebox/internal/domain"

	"github.com/shopspring/decimal"
)

type ticketSaleRequest struct {
	ShowtimeID   int    `json:"showtimeId" validate:"required,gt=0"`
	SeatIDs      []int  `json:"seatIds" validate:"required,min=1,max=50,dive,gt=0"`
	CustomerName string `json:"customerName" validate:"required,max=255"`
}

type ticketResponse struct {
	Owner        string    `json:"owner"`
	MovieTitle   string    `json:"movieTitle"`
	RowNumber    int       `json:"rowNumber"`
	SeatNumber   int       `json:"seatNumber"`
	PurchaseDate time.Time `json:"purchaseDate"`
	ShowDateTime time.Time `json:"showDateTime"`
}

type saleResponse struct {
	TotalPrice   decimal.Decimal  `json:"totalPrice"`
	TotalTickets int              `json:"totalTickets"`
	Tickets      []ticketResponse `json:"tickets"`
}

// SellTickets purchases the requested seats of a showtime in a single
// transaction. The sale is all-or-nothing: if any requested seat is missing,
// belongs to another showtime, or is already sold, no seat changes hands.
func (app *Application) SellTickets(w http.ResponseWriter, r *http.Request) {
	var input ticketSaleRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// A name of only whitespace is no name at all.
	input.CustomerName = strings.TrimSpace(input.CustomerName)

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetDetailById(r.Context(), input.ShowtimeID)
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
		app.illegalStatusResponse(w, r, fmt.Errorf("showtime %d is %s and not open for sale", showtime.ID, showtime.Status))
		return
	}

	sale, err := app.ticketRepo.Sell(r.Context(), showtime, input.SeatIDs, input.CustomerName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatNotAvailable):
			app.metrics.saleConflicts.Add(r.Context(), 1)
			app.editConflictResponse(w, r, fmt.Errorf("one or more requested seats are not available"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.ticketsSold.Add(r.Context(), int64(len(sale.Tickets)))
	app.invalidateSeatMap(r, showtime.ID)

	resp := saleResponse{
		TotalPrice:   sale.TotalPrice,
		TotalTickets: len(sale.Tickets),
		Tickets:      make([]ticketResponse, len(sale.Tickets)),
	}

	for i, ticket := range sale.Tickets {
		resp.Tickets[i] = toTicketResponse(ticket)
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	detail, err := app.ticketRepo.GetDetailById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toTicketResponse(*detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelTicket voids an ACTIVE ticket and releases its seat for resale.
func (app *Application) CancelTicket(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.ticketRepo.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrIllegalStatus):
			app.illegalStatusResponse(w, r, fmt.Errorf("ticket %d is not active", id))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConsumeTicket marks an ACTIVE ticket as used at the door. The seat stays
// sold.
func (app *Application) ConsumeTicket(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.ticketRepo.Consume(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrIllegalStatus):
			app.illegalStatusResponse(w, r, fmt.Errorf("ticket %d is not active", id))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toTicketResponse(detail domain.TicketDetail) ticketResponse {
	return ticketResponse{
		Owner:        detail.Owner,
		MovieTitle:   detail.MovieTitle,
		RowNumber:    detail.RowNumber,
		SeatNumber:   detail.SeatNumber,
		PurchaseDate: detail.PurchaseDate,
		ShowDateTime: detail.ShowTime,
	}
}
