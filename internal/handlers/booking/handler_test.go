package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"resort/infras/otel/mocks"
	"resort/internal/domains/booking/model"
	"resort/internal/domains/booking/model/dto"
	serviceMocks "resort/internal/domains/booking/service/mocks"
	"resort/internal/handlers/booking"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	bookingID = "5d0f3a52-2c7b-4f7e-9a3c-1f7d3a6e2b10"
	roomID    = "9a1c2b3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"
)

type response struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, svc *serviceMocks.MockBooking, method, path, body string) (int, response) {
	t.Helper()

	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/api", handler.Router)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var res response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	return rec.Code, res
}

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setupMock   func(svc *serviceMocks.MockBooking)
		wantCode    int
		wantMessage string
	}{
		{
			name: "created",
			body: `{"room_id":"` + roomID + `","check_in_date":"2025-06-01","check_out_date":"2025-06-03","guests":2}`,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().
					Create(gomock.Any(), dto.CreateBookingRequest{RoomID: roomID, CheckInDate: "2025-06-01", CheckOutDate: "2025-06-03", Guests: 2}).
					Return(dto.BookingResponse{ID: bookingID, Status: model.StatusPending, Nights: 2, TotalPrice: 300}, nil)
			},
			wantCode:    http.StatusCreated,
			wantMessage: "Booking created successfully!",
		},
		{
			name:     "malformed date",
			body:     `{"room_id":"` + roomID + `","check_in_date":"06/01/2025","check_out_date":"2025-06-03","guests":2}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing room",
			body:     `{"check_in_date":"2025-06-01","check_out_date":"2025-06-03","guests":2}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid json",
			body:     `{"room_id":`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "overlap",
			body: `{"room_id":"` + roomID + `","check_in_date":"2025-06-02","check_out_date":"2025-06-04","guests":2}`,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, failure.Conflict("this room is already booked for some part of the requested dates"))
			},
			wantCode:    http.StatusConflict,
			wantMessage: "this room is already booked for some part of the requested dates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockBooking(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			code, res := serve(t, svc, http.MethodPost, "/api/bookings", tt.body)

			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, res.Message)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, res.Message)
			}
		})
	}
}

func TestHandler_ChangeStatus(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		body        string
		setupMock   func(svc *serviceMocks.MockBooking)
		wantCode    int
		wantMessage string
	}{
		{
			name: "force set",
			path: "/api/admin/bookings/" + bookingID + "/status",
			body: `{"status":"confirmed"}`,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().SetStatus(gomock.Any(), dto.UpdateStatusRequest{Status: "confirmed"}, bookingID).
					Return(dto.BookingResponse{ID: bookingID, Status: model.StatusConfirmed}, nil)
			},
			wantCode:    http.StatusOK,
			wantMessage: "Booking " + bookingID + " status updated to confirmed successfully!",
		},
		{
			name: "strict transition rejected",
			path: "/api/admin/bookings/" + bookingID + "/transition",
			body: `{"status":"pending"}`,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().Transition(gomock.Any(), dto.UpdateStatusRequest{Status: "pending"}, bookingID).
					Return(dto.BookingResponse{}, failure.BadRequestFromString("cannot change booking status from completed to pending"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid id",
			path:     "/api/admin/bookings/not-a-uuid/status",
			body:     `{"status":"confirmed"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing status",
			path:     "/api/admin/bookings/" + bookingID + "/status",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockBooking(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			code, res := serve(t, svc, http.MethodPut, tt.path, tt.body)

			assert.Equal(t, tt.wantCode, code)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, res.Message)
			}
		})
	}
}

func TestHandler_CancelBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := serviceMocks.NewMockBooking(ctrl)
	svc.EXPECT().Cancel(gomock.Any(), bookingID).
		Return(dto.BookingResponse{}, failure.Forbidden("Access denied. You can only cancel your own bookings."))

	code, res := serve(t, svc, http.MethodPut, "/api/bookings/"+bookingID+"/cancel", "")

	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied. You can only cancel your own bookings.", res.Message)
}

func TestHandler_GetBookings(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		setupMock func(svc *serviceMocks.MockBooking)
		wantCode  int
	}{
		{
			name:  "filters by status",
			query: "?status=Confirmed&page=2&limit=5",
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().ListAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
						assert.Equal(t, 2, req.Page)
						assert.Equal(t, 5, req.Limit)
						require.Len(t, filter.Filters, 1)
						assert.Equal(t, model.FilterByStatus(model.StatusConfirmed), filter.Filters[0])

						return dto.GetBookingsResponse{}, nil
					})
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "unknown status",
			query:    "?status=archived",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid room filter",
			query:    "?room_id=12",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockBooking(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			handler := booking.New(svc, mocks.NewOtel())

			router := chi.NewRouter()
			router.Route("/api", handler.Router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/bookings"+tt.query, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
