package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"cinebox/internal/domain"
	"cinebox/internal/mocks"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func TestSellTickets(t *testing.T) {
	showStart := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	purchasedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	sellable := &domain.ShowtimeDetail{
		Showtime: domain.Showtime{
			ID:        7,
			StartTime: showStart,
			BasePrice: decimal.NewFromFloat(12.50),
			Status:    domain.ShowtimeScheduled,
		},
		RoomName:   "Screen 1",
		MovieTitle: "Interstellar",
	}

	tests := []struct {
		name           string
		body           any
		detailFunc     func(ctx context.Context, id int) (*domain.ShowtimeDetail, error)
		sellFunc       func(ctx context.Context, showtime *domain.ShowtimeDetail, seatIDs []int, customerName string) (*domain.Sale, error)
		wantDel        bool
		wantStatus     int
		wantErrMessage string
		wantResponse   *saleResponse
	}{
		{
			name: "successful multi-seat sale",
			body: ticketSaleRequest{ShowtimeID: 7, SeatIDs: []int{3, 5}, CustomerName: "Ada Lovelace"},
			detailFunc: func(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
				return sellable, nil
			},
			sellFunc: func(ctx context.Context, showtime *domain.ShowtimeDetail, seatIDs []int, customerName string) (*domain.Sale, error) {
				if showtime.ID != 7 || customerName != "Ada Lovelace" {
					t.Errorf("Sell got showtime=%d customer=%q", showtime.ID, customerName)
				}

				return &domain.Sale{
					TotalPrice: decimal.NewFromFloat(25.00),
					Tickets: []domain.TicketDetail{
						{Owner: "Ada Lovelace", MovieTitle: "Interstellar", RowNumber: 1, SeatNumber: 3, PurchaseDate: purchasedAt, ShowTime: showStart},
						{Owner: "Ada Lovelace", MovieTitle: "Interstellar", RowNumber: 1, SeatNumber: 5, PurchaseDate: purchasedAt, ShowTime: showStart},
					},
				}, nil
			},
			wantDel:    true,
			wantStatus: http.StatusCreated,
			wantResponse: &saleResponse{
				TotalPrice:   decimal.NewFromFloat(25.00),
				TotalTickets: 2,
				Tickets: []ticketResponse{
					{Owner: "Ada Lovelace", MovieTitle: "Interstellar", RowNumber: 1, SeatNumber: 3, PurchaseDate: purchasedAt, ShowDateTime: showStart},
					{Owner: "Ada Lovelace", MovieTitle: "Interstellar", RowNumber: 1, SeatNumber: 5, PurchaseDate: purchasedAt, ShowDateTime: showStart},
				},
			},
		},
		{
			name: "seat already sold",
			body: ticketSaleRequest{ShowtimeID: 7, SeatIDs: []int{3}, CustomerName: "Ada Lovelace"},
			detailFunc: func(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
				return sellable, nil
			},
			sellFunc: func(ctx context.Context, showtime *domain.ShowtimeDetail, seatIDs []int, customerName string) (*domain.Sale, error) {
				return nil, domain.ErrSeatNotAvailable
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "one or more requested seats are not available",
		},
		{
			name: "showtime not found",
			body: ticketSaleRequest{ShowtimeID: 99, SeatIDs: []int{3}, CustomerName: "Ada Lovelace"},
			detailFunc: func(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested resource not found",
		},
		{
			name: "cancelled showtime not open for sale",
			body: ticketSaleRequest{ShowtimeID: 7, SeatIDs: []int{3}, CustomerName: "Ada Lovelace"},
			detailFunc: func(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
				cancelled := *sellable
				cancelled.Status = domain.ShowtimeCancelled
				return &cancelled, nil
			},
			sellFunc: func(ctx context.Context, showtime *domain.ShowtimeDetail, seatIDs []int, customerName string) (*domain.Sale, error) {
				t.Error("Sell should not run for a cancelled showtime")
				return nil, nil
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "empty seat list",
			body:           ticketSaleRequest{ShowtimeID: 7, SeatIDs: []int{}, CustomerName: "Ada Lovelace"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 1",
		},
		{
			name:           "non-positive seat id",
			body:           ticketSaleRequest{ShowtimeID: 7, SeatIDs: []int{3, 0}, CustomerName: "Ada Lovelace"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be greater than 0",
		},
		{
			name:           "missing customer name",
			body:           ticketSaleRequest{ShowtimeID: 7, SeatIDs: []int{3}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:           "blank customer name",
			body:           ticketSaleRequest{ShowtimeID: 7, SeatIDs: []int{3}, CustomerName: "   "},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name: "database error",
			body: ticketSaleRequest{ShowtimeID: 7, SeatIDs: []int{3}, CustomerName: "Ada Lovelace"},
			detailFunc: func(ctx context.Context, id int) (*domain.ShowtimeDetail, error) {
				return sellable, nil
			},
			sellFunc: func(ctx context.Context, showtime *domain.ShowtimeDetail, seatIDs []int, customerName string) (*domain.Sale, error) {
				return nil, fmt.Errorf("database connection error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisMock := &mocks.MockRedisClient{}
			if tt.wantDel {
				redisMock.On("Del", mock.Anything, []string{"seat-map:7"}).Return(redis.NewIntResult(1, nil))
			}

			app := newTestApplication(func(a *Application) {
				a.redis = redisMock
				a.showtimeRepo = &mocks.MockShowtimeRepo{GetDetailByIdFunc: tt.detailFunc}
				a.ticketRepo = &mocks.MockTicketRepo{SellFunc: tt.sellFunc}
			})

			w, r := executeRequest(t, http.MethodPost, "/v1/tickets", tt.body)

			app.SellTickets(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("SellTickets() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response saleResponse
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(tt.wantResponse, &response); diff != "" {
					t.Errorf("SellTickets() response mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
			redisMock.AssertExpectations(t)
		})
	}
}

func TestGetTicket(t *testing.T) {
	showStart := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	purchasedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		detailFunc     func(ctx context.Context, id int) (*domain.TicketDetail, error)
		wantStatus     int
		wantErrMessage string
		wantResponse   *ticketResponse
	}{
		{
			name: "found",
			detailFunc: func(ctx context.Context, id int) (*domain.TicketDetail, error) {
				return &domain.TicketDetail{
					Owner:        "Ada Lovelace",
					MovieTitle:   "Interstellar",
					RowNumber:    1,
					SeatNumber:   3,
					PurchaseDate: purchasedAt,
					ShowTime:     showStart,
				}, nil
			},
			wantStatus: http.StatusOK,
			wantResponse: &ticketResponse{
				Owner:        "Ada Lovelace",
				MovieTitle:   "Interstellar",
				RowNumber:    1,
				SeatNumber:   3,
				PurchaseDate: purchasedAt,
				ShowDateTime: showStart,
			},
		},
		{
			name: "not found",
			detailFunc: func(ctx context.Context, id int) (*domain.TicketDetail, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested resource not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.ticketRepo = &mocks.MockTicketRepo{GetDetailByIdFunc: tt.detailFunc}
			})

			w, r := executeRequest(t, http.MethodGet, "/v1/tickets/1", nil)
			r = withIDParam(r, "1")

			app.GetTicket(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetTicket() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response ticketResponse
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(tt.wantResponse, &response); diff != "" {
					t.Errorf("GetTicket() response mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func TestTicketTransitions(t *testing.T) {
	tests := []struct {
		name           string
		transitionErr  error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "active ticket transitions",
			wantStatus: http.StatusNoContent,
		},
		{
			name:           "terminal ticket rejected",
			transitionErr:  domain.ErrIllegalStatus,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "ticket 1 is not active",
		},
		{
			name:           "unknown ticket",
			transitionErr:  domain.ErrRecordNotFound,
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested resource not found",
		},
	}

	handlers := map[string]struct {
		endpoint string
		invoke   func(app *Application, w http.ResponseWriter, r *http.Request)
		repo     func(err error) *mocks.MockTicketRepo
	}{
		"cancel": {
			endpoint: "/v1/tickets/1/cancel",
			invoke:   func(app *Application, w http.ResponseWriter, r *http.Request) { app.CancelTicket(w, r) },
			repo: func(err error) *mocks.MockTicketRepo {
				return &mocks.MockTicketRepo{CancelFunc: func(ctx context.Context, id int) error { return err }}
			},
		},
		"consume": {
			endpoint: "/v1/tickets/1/consume",
			invoke:   func(app *Application, w http.ResponseWriter, r *http.Request) { app.ConsumeTicket(w, r) },
			repo: func(err error) *mocks.MockTicketRepo {
				return &mocks.MockTicketRepo{ConsumeFunc: func(ctx context.Context, id int) error { return err }}
			},
		},
	}

	for action, h := range handlers {
		for _, tt := range tests {
			t.Run(action+" "+tt.name, func(t *testing.T) {
				app := newTestApplication(func(a *Application) {
					a.ticketRepo = h.repo(tt.transitionErr)
				})

				w, r := executeRequest(t, http.MethodPost, h.endpoint, nil)
				r = withIDParam(r, "1")

				h.invoke(app, w, r)

				if got := w.Code; got != tt.wantStatus {
					t.Errorf("%s status = %v, want %v", action, got, tt.wantStatus)
				}

				checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
			})
		}
	}
}
