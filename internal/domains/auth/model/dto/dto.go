package dto

import (
	"resort/infras/jwt"
	userModel "resort/internal/domains/user/model"
	userDto "resort/internal/domains/user/model/dto"
	"resort/permissions"
	gModel "resort/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"omitempty,role"`
}

// ToUserModel builds a new guest account. Registration never grants staff roles.
func (r *RegisterRequest) ToUserModel(hashedPassword string, now time.Time) userModel.User {
	id := uuid.NewString()

	return userModel.User{
		ID:       id,
		Username: strings.TrimSpace(r.Username),
		Password: hashedPassword,
		Role:     permissions.RoleGuest,
		Metadata: gModel.NewMetadata(id, now),
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string               `json:"token"`
	TokenType string               `json:"token_type"`
	ExpiresIn int64                `json:"expires_in"`
	User      userDto.UserResponse `json:"user"`
}

func (a *AuthResponse) FromToken(token *jwt.Token, user userModel.User) {
	a.Token = token.AccessToken
	a.TokenType = token.TokenType
	a.ExpiresIn = token.ExpiresIn
	a.User.FromModel(user)
}
