package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"resort/infras/jwt"
	"resort/internal/domains/auth/model/dto"
	userModel "resort/internal/domains/user/model"
	"resort/permissions"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	req := dto.RegisterRequest{Username: "  alice ", Password: "pw123", Role: "admin"}

	user := req.ToUserModel("hashed", now)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, permissions.RoleGuest, user.Role)
	assert.Equal(t, user.ID, user.CreatedBy)
	assert.Equal(t, now, user.CreatedAt)
}

func TestAuthResponse_FromToken(t *testing.T) {
	token := &jwt.Token{AccessToken: "signed", TokenType: "Bearer", ExpiresIn: 3600}
	user := userModel.User{ID: "user-1", Username: "alice", Password: "hashed", Role: permissions.RoleGuest}

	var res dto.AuthResponse
	res.FromToken(token, user)

	assert.Equal(t, "signed", res.Token)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, permissions.RoleGuest, res.User.Role)
}
