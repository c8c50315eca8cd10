package room_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"resort/infras/otel/mocks"
	"resort/internal/domains/room/model"
	"resort/internal/domains/room/model/dto"
	serviceMocks "resort/internal/domains/room/service/mocks"
	"resort/internal/handlers/room"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomID = "9a1c2b3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"

type response struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, svc *serviceMocks.MockRoom, method, path, body string) (int, response) {
	t.Helper()

	handler := room.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/api", handler.Router)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var res response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	return rec.Code, res
}

func TestHandler_GetRooms(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFilters []any
		wantCode    int
	}{
		{
			name:     "no filters",
			wantCode: http.StatusOK,
		},
		{
			name:  "type guests and price",
			query: "?type=deluxe&guests=2&max_price=150.5",
			wantFilters: []any{
				gDto.Filter{Field: model.FieldType, Operator: gDto.FilterOperatorEq, Value: "deluxe", Table: model.TableName},
				gDto.Filter{Field: model.FieldCapacity, Operator: gDto.FilterOperatorGreaterEq, Value: 2, Table: model.TableName},
				gDto.Filter{Field: model.FieldPricePerNight, Operator: gDto.FilterOperatorLessEq, Value: 150.5, Table: model.TableName},
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "availability flag is not a public filter",
			query:    "?is_available=false",
			wantCode: http.StatusOK,
		},
		{name: "zero guests", query: "?guests=0", wantCode: http.StatusBadRequest},
		{name: "guests not a number", query: "?guests=two", wantCode: http.StatusBadRequest},
		{name: "negative price", query: "?max_price=-5", wantCode: http.StatusBadRequest},
		{name: "price not a number", query: "?max_price=cheap", wantCode: http.StatusBadRequest},
		{name: "price NaN", query: "?max_price=NaN", wantCode: http.StatusBadRequest},
		{name: "price infinite", query: "?max_price=Inf", wantCode: http.StatusBadRequest},
		{name: "price spelled infinity", query: "?max_price=infinity", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockRoom(ctrl)
			if tt.wantCode == http.StatusOK {
				svc.EXPECT().ListAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
						assert.Equal(t, tt.wantFilters, filter.Filters)

						return dto.GetRoomsResponse{}, nil
					})
			}

			handler := room.New(svc, mocks.NewOtel())

			router := chi.NewRouter()
			router.Route("/api", handler.Router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rooms"+tt.query, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_GetAllRooms(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFilters []any
		wantCode    int
	}{
		{
			name:        "unavailable rooms only",
			query:       "?is_available=false",
			wantFilters: []any{model.FilterByAvailability(false)},
			wantCode:    http.StatusOK,
		},
		{
			name:  "type and availability",
			query: "?type=suite&is_available=1",
			wantFilters: []any{
				gDto.Filter{Field: model.FieldType, Operator: gDto.FilterOperatorEq, Value: "suite", Table: model.TableName},
				model.FilterByAvailability(true),
			},
			wantCode: http.StatusOK,
		},
		{name: "availability not a boolean", query: "?is_available=maybe", wantCode: http.StatusBadRequest},
		{name: "price NaN", query: "?max_price=NaN", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockRoom(ctrl)
			if tt.wantCode == http.StatusOK {
				svc.EXPECT().ListAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
						assert.Equal(t, tt.wantFilters, filter.Filters)

						return dto.GetRoomsResponse{}, nil
					})
			}

			handler := room.New(svc, mocks.NewOtel())

			router := chi.NewRouter()
			router.Route("/api", handler.Router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/rooms"+tt.query, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_CreateRoom(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setupMock   func(svc *serviceMocks.MockRoom)
		wantCode    int
		wantMessage string
	}{
		{
			name: "created",
			body: `{"room_number":"R1","type":"deluxe","price_per_night":100,"capacity":2}`,
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().
					Create(gomock.Any(), dto.CreateRoomRequest{RoomNumber: "R1", Type: "deluxe", PricePerNight: 100, Capacity: 2}).
					Return(dto.RoomResponse{ID: roomID, RoomNumber: "R1"}, nil)
			},
			wantCode:    http.StatusCreated,
			wantMessage: "Room created successfully!",
		},
		{
			name:     "non-positive price",
			body:     `{"room_number":"R1","type":"deluxe","price_per_night":0,"capacity":2}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "negative capacity",
			body:     `{"room_number":"R1","type":"deluxe","price_per_night":100,"capacity":-1}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing room number",
			body:     `{"type":"deluxe","price_per_night":100,"capacity":2}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "duplicate room number",
			body: `{"room_number":"R1","type":"deluxe","price_per_night":100,"capacity":2}`,
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.RoomResponse{}, failure.Conflict("room number already exists"))
			},
			wantCode:    http.StatusConflict,
			wantMessage: "room number already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockRoom(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			code, res := serve(t, svc, http.MethodPost, "/api/admin/rooms", tt.body)

			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, res.Message)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, res.Message)
			}
		})
	}
}

func TestHandler_RoomByID(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		setupMock func(svc *serviceMocks.MockRoom)
		wantCode  int
	}{
		{
			name:   "public lookup",
			method: http.MethodGet,
			path:   "/api/rooms/" + roomID,
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().GetAvailable(gomock.Any(), roomID).Return(dto.RoomResponse{ID: roomID}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "public lookup of unavailable room",
			method: http.MethodGet,
			path:   "/api/rooms/" + roomID,
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().GetAvailable(gomock.Any(), roomID).Return(dto.RoomResponse{}, failure.NotFound("room"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "lookup with malformed id",
			method:   http.MethodGet,
			path:     "/api/rooms/42",
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "delete room with bookings",
			method: http.MethodDelete,
			path:   "/api/admin/rooms/" + roomID,
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Delete(gomock.Any(), roomID).Return(failure.Conflict("room has existing bookings"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "delete room",
			method: http.MethodDelete,
			path:   "/api/admin/rooms/" + roomID,
			setupMock: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Delete(gomock.Any(), roomID).Return(nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockRoom(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			code, _ := serve(t, svc, tt.method, tt.path, "")

			assert.Equal(t, tt.wantCode, code)
		})
	}
}
