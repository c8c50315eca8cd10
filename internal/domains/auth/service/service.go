package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"resort/config"
	"resort/infras/jwt"
	"resort/infras/otel"
	"resort/internal/domains/auth/model/dto"
	userModel "resort/internal/domains/user/model"
	userRepo "resort/internal/domains/user/repository"
	"resort/permissions"
	"resort/shared/constant"
	"resort/shared/failure"
	"resort/shared/password"
	gRepo "resort/shared/repository"
	"resort/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	msgInvalidCredentials = "invalid username or password"
	msgUsernameTaken      = "username already taken"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// Register creates a guest account and signs the new user in.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Role != constant.Empty {
		role, err := permissions.ParseRole(req.Role)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		if role != permissions.RoleGuest {
			return res, failure.BadRequestFromString("registration can only create guest accounts") // nolint:wrapcheck
		}
	}

	username := strings.TrimSpace(req.Username)
	if username == constant.Empty {
		return res, failure.BadRequestFromString("username is required") // nolint:wrapcheck
	}

	exists, err := s.userRepo.Exist(ctx, userModel.FilterByUsername(username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict(msgUsernameTaken) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if errors.Is(err, password.ErrEmptyPassword) || errors.Is(err, password.ErrPasswordTooLong) {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword, timezone.Now())

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(msgUsernameTaken) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	return s.signIn(ctx, user)
}

// Login verifies the credentials. Unknown users and wrong passwords get the same answer.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	username := strings.TrimSpace(req.Username)

	user, err := s.userRepo.Get(ctx, userModel.FilterByUsername(username))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("username", username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("username", username).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
	}

	return s.signIn(ctx, user)
}

func (s *serviceImpl) signIn(ctx context.Context, user userModel.User) (res dto.AuthResponse, err error) {
	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token, user)

	return res, nil
}
