package auth

import (
	"errors"
	"time"

	"backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// AccessTokenTTL bounds the damage window of a stolen bearer token.
	AccessTokenTTL = 15 * time.Minute
	// RefreshTokenTTL is the lifetime of the HttpOnly refresh cookie.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned for every parse failure: bad signature,
// malformed structure or expiry. Callers must not be able to tell which.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims carries the identity embedded in an access token. The
// IsAdmin flag is read from here by the admin middleware, so a user
// promoted mid-session gains the capability only after re-login.
type AccessClaims struct {
	UserID  string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the user id. Refresh tokens are stateless:
// nothing is persisted server-side and they are never rotated.
type RefreshClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs a 15-minute HS256 access token for the user.
func IssueAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:  user.ID.String(),
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(AccessSecret())
}

// IssueRefreshToken signs a 7-day HS256 refresh token carrying only the
// user id, with the separate refresh secret.
func IssueRefreshToken(user *model.User) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(RefreshSecret())
}

// ParseAccessToken verifies signature and expiry against the access
// secret. A refresh token presented here fails the signature check.
func ParseAccessToken(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return AccessSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// ParseRefreshToken verifies signature and expiry against the refresh
// secret.
func ParseRefreshToken(raw string) (*RefreshClaims, error) {
	var claims RefreshClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return RefreshSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
