package service_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/config"
	"resort/infras/jwt"
	jwtMocks "resort/infras/jwt/mocks"
	"resort/infras/otel/mocks"
	"resort/internal/domains/auth/model/dto"
	"resort/internal/domains/auth/service"
	userMocks "resort/internal/domains/user/mocks"
	userModel "resort/internal/domains/user/model"
	"resort/permissions"
	"resort/shared/failure"
	"resort/shared/password"
)

var signedToken = &jwt.Token{AccessToken: "signed-token", TokenType: "Bearer", ExpiresIn: 3600}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name: "registers guest and returns token",
			req:  dto.RegisterRequest{Username: "alice", Password: "pw123"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, user userModel.User) error {
						assert.Equal(t, permissions.RoleGuest, user.Role)
						assert.NoError(t, password.Verify("pw123", user.Password))

						return nil
					})
				jwtSvc.EXPECT().GenerateToken(gomock.Any(), gomock.Any(), permissions.RoleGuest).Return(signedToken, nil)
			},
		},
		{
			name: "explicit guest role is accepted",
			req:  dto.RegisterRequest{Username: "alice", Password: "pw123", Role: "Guest"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				jwtSvc.EXPECT().GenerateToken(gomock.Any(), gomock.Any(), permissions.RoleGuest).Return(signedToken, nil)
			},
		},
		{
			name:      "staff role is rejected",
			req:       dto.RegisterRequest{Username: "mallory", Password: "pw123", Role: "admin"},
			setupMock: func(*userMocks.MockUser, *jwtMocks.MockJWT) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unknown role is rejected",
			req:       dto.RegisterRequest{Username: "mallory", Password: "pw123", Role: "owner"},
			setupMock: func(*userMocks.MockUser, *jwtMocks.MockJWT) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "password over the bcrypt byte limit",
			req:  dto.RegisterRequest{Username: "alice", Password: strings.Repeat("ж", 40)},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "username taken",
			req:  dto.RegisterRequest{Username: "alice", Password: "pw123"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "concurrent registration hits unique index",
			req:  dto.RegisterRequest{Username: "alice", Password: "pw123"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository failure",
			req:  dto.RegisterRequest{Username: "alice", Password: "pw123"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := userMocks.NewMockUser(ctrl)
			jwtSvc := jwtMocks.NewMockJWT(ctrl)
			tt.setupMock(repo, jwtSvc)

			svc := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtSvc)

			res, err := svc.Register(t.Context(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed-token", res.Token)
			assert.Equal(t, "alice", res.User.Username)
			assert.Equal(t, permissions.RoleGuest, res.User.Role)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("pw123")
	require.NoError(t, err)

	admin := userModel.User{ID: "admin-1", Username: "root", Password: hashed, Role: permissions.RoleAdmin}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name: "valid credentials",
			req:  dto.LoginRequest{Username: "root", Password: "pw123"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				jwtSvc.EXPECT().GenerateToken(gomock.Any(), "admin-1", permissions.RoleAdmin).Return(signedToken, nil)
			},
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "ghost", Password: "pw123"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "root", Password: "nope"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "token signing fails",
			req:  dto.LoginRequest{Username: "root", Password: "pw123"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				jwtSvc.EXPECT().GenerateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrInvalidClaim)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := userMocks.NewMockUser(ctrl)
			jwtSvc := jwtMocks.NewMockJWT(ctrl)
			tt.setupMock(repo, jwtSvc)

			svc := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtSvc)

			res, err := svc.Login(t.Context(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed-token", res.Token)
			assert.Equal(t, permissions.RoleAdmin, res.User.Role)
		})
	}
}
