package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"backend/internal/auth"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser mirrors the identity claims embedded in the access token.
type AuthUser struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
}

// AuthResult carries both freshly issued tokens. The handler sends the
// access token in the body and confines the refresh token to the cookie.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         AuthUser
}

// AuthService defines the register/login/refresh lifecycle.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	// Refresh verifies a raw refresh token and mints a new access token.
	// The refresh token itself is not rotated.
	Refresh(ctx context.Context, rawRefreshToken string) (string, error)
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService returns a new instance of AuthService
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

func toAuthUser(user *model.User) AuthUser {
	return AuthUser{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}

func issueTokenPair(user *model.User) (string, string, error) {
	accessToken, err := auth.IssueAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := auth.IssueRefreshToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, NewValidationError(missing...)
	}

	if !emailRegex.MatchString(req.Email) {
		return nil, NewValidationError("email")
	}
	if len(req.Password) < minPasswordLength {
		return nil, NewValidationError("password")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		IsAdmin:  false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Auto-login after registration
	accessToken, refreshToken, err := issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toAuthUser(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, NewValidationError("email", "password")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toAuthUser(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, rawRefreshToken string) (string, error) {
	claims, err := auth.ParseRefreshToken(rawRefreshToken)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	// Re-load the user so deleted accounts cannot keep refreshing.
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	accessToken, err := auth.IssueAccessToken(user)
	if err != nil {
		return "", errors.New("failed to sign access token")
	}

	return accessToken, nil
}
