package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"resort/config"
	"resort/infras/jwt"
	jwtMocks "resort/infras/jwt/mocks"
	"resort/infras/otel/mocks"
	"resort/permissions"
	"resort/shared"
	"resort/transport/http/middleware"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const apiKey = "internal-key"

func newRouter(t *testing.T, jwtSvc jwt.JWT) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	mw := middleware.NewAuthRoleMiddleware(jwtSvc, mocks.NewOtel(), permissions.Get(), cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		userID, role := shared.GetRequester(r.Context())

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": userID, "role": role.String()})
	}

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKey, mw.Auth, mw.RBAC)

		r.Get("/rooms", echo)
		r.Get("/me", echo)
		r.Get("/admin/rooms", echo)
		r.Get("/admin/users/{id}", echo)
		r.Get("/admin/unlisted", echo)
	})

	return router
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		header      map[string]string
		setupMock   func(jwtSvc *jwtMocks.MockJWT)
		wantCode    int
		wantMessage string
		wantRole    string
	}{
		{
			name:     "public route without token",
			path:     "/api/rooms",
			wantCode: http.StatusOK,
		},
		{
			name:        "protected route without token",
			path:        "/api/me",
			wantCode:    http.StatusUnauthorized,
			wantMessage: "No authentication token provided. Authorization denied.",
		},
		{
			name:        "malformed authorization header",
			path:        "/api/me",
			header:      map[string]string{"Authorization": "Token abc"},
			wantCode:    http.StatusUnauthorized,
			wantMessage: "No authentication token provided. Authorization denied.",
		},
		{
			name:   "expired token",
			path:   "/api/me",
			header: map[string]string{"Authorization": "Bearer expired"},
			setupMock: func(jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "expired").Return(nil, jwt.ErrExpiredToken)
			},
			wantCode:    http.StatusUnauthorized,
			wantMessage: "Authentication token is invalid or expired.",
		},
		{
			name:   "token with unknown role",
			path:   "/api/me",
			header: map[string]string{"Authorization": "Bearer odd"},
			setupMock: func(jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "odd").Return(&jwt.Claims{UserID: "u-1", Role: "superuser"}, nil)
			},
			wantCode:    http.StatusUnauthorized,
			wantMessage: "Authentication token is invalid or expired.",
		},
		{
			name:   "guest reads own identity",
			path:   "/api/me",
			header: map[string]string{"Authorization": "Bearer guest"},
			setupMock: func(jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "guest").Return(&jwt.Claims{UserID: "u-1", Role: permissions.RoleGuest}, nil)
			},
			wantCode: http.StatusOK,
			wantRole: "guest",
		},
		{
			name:   "guest denied on admin route",
			path:   "/api/admin/rooms",
			header: map[string]string{"Authorization": "Bearer guest"},
			setupMock: func(jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "guest").Return(&jwt.Claims{UserID: "u-1", Role: permissions.RoleGuest}, nil)
			},
			wantCode:    http.StatusForbidden,
			wantMessage: "Access denied. You do not have the necessary permissions.",
		},
		{
			name:   "customer service denied on user admin",
			path:   "/api/admin/users/0b5c5c4e-8f53-4c4a-9d43-6f2d1d2a9a11",
			header: map[string]string{"Authorization": "Bearer cs"},
			setupMock: func(jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "cs").Return(&jwt.Claims{UserID: "u-2", Role: permissions.RoleCustomerService}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "admin allowed on user admin",
			path:   "/api/admin/users/0b5c5c4e-8f53-4c4a-9d43-6f2d1d2a9a11",
			header: map[string]string{"Authorization": "Bearer admin"},
			setupMock: func(jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "admin").Return(&jwt.Claims{UserID: "u-3", Role: permissions.RoleAdmin}, nil)
			},
			wantCode: http.StatusOK,
			wantRole: "admin",
		},
		{
			name:   "route missing from permission table is denied",
			path:   "/api/admin/unlisted",
			header: map[string]string{"Authorization": "Bearer admin"},
			setupMock: func(jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().ValidateToken(gomock.Any(), "admin").Return(&jwt.Claims{UserID: "u-3", Role: permissions.RoleAdmin}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "unknown path falls through to not found",
			path:     "/api/nowhere",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "wrong api key",
			path:     "/api/admin/rooms",
			header:   map[string]string{"X-API-Key": "nope"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "internal api key skips token checks",
			path:     "/api/admin/rooms",
			header:   map[string]string{"X-API-Key": apiKey},
			wantCode: http.StatusOK,
			wantRole: "admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			jwtSvc := jwtMocks.NewMockJWT(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(jwtSvc)
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantMessage != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMessage, body["message"])
			}

			if tt.wantRole != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantRole, body["role"])
			}
		})
	}
}
