package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"resort/infras/otel/mocks"
	"resort/internal/domains/user/model"
	"resort/internal/domains/user/model/dto"
	serviceMocks "resort/internal/domains/user/service/mocks"
	"resort/internal/handlers/user"
	"resort/permissions"
	"resort/shared"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const userID = "3f6b1c2a-8d4e-4b7a-9c1d-2e3f4a5b6c7d"

type response struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, svc *serviceMocks.MockUser, ctx context.Context, method, path, body string) (int, response) {
	t.Helper()

	handler := user.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/api", handler.Router)

	req := httptest.NewRequest(method, path, strings.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var res response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	return rec.Code, res
}

func TestHandler_GetMe(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(svc *serviceMocks.MockUser)
		wantCode  int
		wantUser  string
	}{
		{
			name: "authenticated",
			ctx:  shared.WithRequester(context.Background(), userID, permissions.RoleGuest),
			setupMock: func(svc *serviceMocks.MockUser) {
				svc.EXPECT().Get(gomock.Any(), userID).
					Return(dto.UserResponse{ID: userID, Username: "alice", Role: permissions.RoleGuest}, nil)
			},
			wantCode: http.StatusOK,
			wantUser: "alice",
		},
		{
			name:     "no requester",
			ctx:      context.Background(),
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "account deleted",
			ctx:  shared.WithRequester(context.Background(), userID, permissions.RoleGuest),
			setupMock: func(svc *serviceMocks.MockUser) {
				svc.EXPECT().Get(gomock.Any(), userID).Return(dto.UserResponse{}, failure.NotFound("user"))
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockUser(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			code, res := serve(t, svc, tt.ctx, http.MethodGet, "/api/me", "")

			assert.Equal(t, tt.wantCode, code)

			if tt.wantUser != "" {
				var got dto.UserResponse
				require.NoError(t, json.Unmarshal(res.Data, &got))
				assert.Equal(t, tt.wantUser, got.Username)
			}
		})
	}
}

func TestHandler_GetUsers(t *testing.T) {
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
			name:  "username",
			query: "?username=ali",
			wantFilters: []any{
				gDto.Filter{Field: model.FieldUsername, Operator: gDto.FilterOperatorLike, Value: "ali", Table: model.TableName},
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "role in display form",
			query: "?role=Customer%20Service",
			wantFilters: []any{
				gDto.Filter{Field: model.FieldRole, Operator: gDto.FilterOperatorEq, Value: permissions.RoleCustomerService, Table: model.TableName},
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "username and role",
			query: "?username=bob&role=admin",
			wantFilters: []any{
				gDto.Filter{Field: model.FieldUsername, Operator: gDto.FilterOperatorLike, Value: "bob", Table: model.TableName},
				gDto.Filter{Field: model.FieldRole, Operator: gDto.FilterOperatorEq, Value: permissions.RoleAdmin, Table: model.TableName},
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "unknown role",
			query:    "?role=owner",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockUser(ctrl)
			if tt.wantCode == http.StatusOK {
				svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error) {
						assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
						assert.Equal(t, tt.wantFilters, filter.Filters)

						return dto.GetUsersResponse{}, nil
					})
			}

			code, _ := serve(t, svc, context.Background(), http.MethodGet, "/api/admin/users"+tt.query, "")

			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestHandler_UpdateUserRole(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		body        string
		setupMock   func(svc *serviceMocks.MockUser)
		wantCode    int
		wantMessage string
	}{
		{
			name: "promoted",
			path: "/api/admin/users/" + userID,
			body: `{"role":"admin"}`,
			setupMock: func(svc *serviceMocks.MockUser) {
				svc.EXPECT().UpdateRole(gomock.Any(), dto.UpdateRoleRequest{Role: "admin"}, userID).
					Return(dto.UserResponse{ID: userID, Role: permissions.RoleAdmin}, nil)
			},
			wantCode:    http.StatusOK,
			wantMessage: "User " + userID + " role updated to admin successfully!",
		},
		{
			name:     "malformed id",
			path:     "/api/admin/users/abc",
			body:     `{"role":"admin"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown role",
			path:     "/api/admin/users/" + userID,
			body:     `{"role":"owner"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "own account",
			path: "/api/admin/users/" + userID,
			body: `{"role":"guest"}`,
			setupMock: func(svc *serviceMocks.MockUser) {
				svc.EXPECT().UpdateRole(gomock.Any(), gomock.Any(), userID).
					Return(dto.UserResponse{}, failure.Forbidden("cannot change your own role"))
			},
			wantCode:    http.StatusForbidden,
			wantMessage: "cannot change your own role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockUser(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			code, res := serve(t, svc, context.Background(), http.MethodPut, tt.path, tt.body)

			assert.Equal(t, tt.wantCode, code)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, res.Message)
			}
		})
	}
}

func TestHandler_DeleteUser(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		setupMock func(svc *serviceMocks.MockUser)
		wantCode  int
	}{
		{
			name: "deleted",
			path: "/api/admin/users/" + userID,
			setupMock: func(svc *serviceMocks.MockUser) {
				svc.EXPECT().Delete(gomock.Any(), userID).Return(nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "malformed id",
			path:     "/api/admin/users/1",
			wantCode: http.StatusBadRequest,
		},
		{
			name: "has bookings",
			path: "/api/admin/users/" + userID,
			setupMock: func(svc *serviceMocks.MockUser) {
				svc.EXPECT().Delete(gomock.Any(), userID).
					Return(failure.BadRequestFromString("user has existing bookings"))
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockUser(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			code, _ := serve(t, svc, context.Background(), http.MethodDelete, tt.path, "")

			assert.Equal(t, tt.wantCode, code)
		})
	}
}
