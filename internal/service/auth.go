package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-registry/internal/auth"
	"github.com/aanand-mishra/student-registry/internal/identifier"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
)

// AuthService registers API accounts and logs them in. Requests are
// expected to have passed struct validation already.
type AuthService struct {
	users  storage.UserStorage
	tokens *auth.TokenService
	log    *slog.Logger
	now    func() time.Time
}

func NewAuthService(users storage.UserStorage, tokens *auth.TokenService, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, req types.RegisterRequest) (types.AuthResponse, error) {
	email := identifier.NormalizeEmail(req.Email)

	taken, err := s.users.ExistsUserByEmail(ctx, email)
	if err != nil {
		return types.AuthResponse{}, fmt.Errorf("Register: lookup: %w", err)
	}
	if taken {
		return types.AuthResponse{}, ErrEmailInUse
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return types.AuthResponse{}, err
	}
	if err != nil {
		return types.AuthResponse{}, fmt.Errorf("Register: %w", err)
	}

	user := types.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return types.AuthResponse{}, ErrEmailInUse
		}
		return types.AuthResponse{}, fmt.Errorf("Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("id", user.ID.String()))
	return s.respond(user)
}

// Login checks the credentials. Unknown email and wrong password are both
// reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req types.LoginRequest) (types.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, identifier.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.AuthResponse{}, ErrInvalidCredentials
		}
		return types.AuthResponse{}, fmt.Errorf("Login: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return types.AuthResponse{}, ErrInvalidCredentials
		}
		return types.AuthResponse{}, fmt.Errorf("Login: %w", err)
	}

	return s.respond(user)
}

func (s *AuthService) respond(user types.User) (types.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return types.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return types.AuthResponse{ID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}
