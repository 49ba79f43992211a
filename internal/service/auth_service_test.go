package service

import (
	"context"
	"testing"

	"backend/internal/auth"
	"backend/internal/database"
	"backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, database.Migrate(db), "failed to migrate tables")
	return db
}

func newAuthService(t *testing.T) AuthService {
	t.Setenv("JWT_SECRET", "auth-service-test-secret")
	t.Setenv("REFRESH_SECRET", "auth-service-refresh-secret")
	return NewAuthService(repository.NewUserRepository(newTestDB(t)))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	require.Equal(t, "Alex", result.User.Name)
	require.Equal(t, "alex@example.com", result.User.Email)
	require.False(t, result.User.IsAdmin)

	// Registration logs the user in: the access token must verify.
	claims, err := auth.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, result.User.ID.String(), claims.UserID)

	loggedIn, err := svc.Login(ctx, LoginRequest{Email: "alex@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, result.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	req := RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "supersecret"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing everything", RegisterRequest{}},
		{"missing name", RegisterRequest{Email: "a@b.co", Password: "supersecret"}},
		{"bad email", RegisterRequest{Name: "A", Email: "not an email", Password: "supersecret"}},
		{"short password", RegisterRequest{Name: "A", Email: "a@b.co", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "supersecret"})
	require.NoError(t, err)

	// Unknown account and wrong password must fail identically.
	_, unknownErr := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	_, wrongPassErr := svc.Login(ctx, LoginRequest{Email: "alex@example.com", Password: "wrongpassword"})

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestRefresh(t *testing.T) {
	t.Setenv("JWT_SECRET", "auth-service-test-secret")
	t.Setenv("REFRESH_SECRET", "auth-service-refresh-secret")

	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAuthService(users)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "supersecret"})
	require.NoError(t, err)

	accessToken, err := svc.Refresh(ctx, result.RefreshToken)
	require.NoError(t, err)
	claims, err := auth.ParseAccessToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, result.User.ID.String(), claims.UserID)

	_, err = svc.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// An access token is not a refresh token.
	_, err = svc.Refresh(ctx, result.AccessToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshDeletedAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "auth-service-test-secret")
	t.Setenv("REFRESH_SECRET", "auth-service-refresh-secret")

	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", result.User.ID).Error)

	_, err = svc.Refresh(ctx, result.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
