package auth

import (
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	return &model.User{
		ID:      uuid.New(),
		Name:    "Test User",
		Email:   "test@example.com",
		IsAdmin: true,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-test-secret")
	t.Setenv("REFRESH_SECRET", "refresh-test-secret")

	user := testUser()
	raw, err := IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseAccessToken(raw)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.UserID)
	require.Equal(t, user.Name, claims.Name)
	require.Equal(t, user.Email, claims.Email)
	require.True(t, claims.IsAdmin)
	require.WithinDuration(t, time.Now().Add(AccessTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-test-secret")
	t.Setenv("REFRESH_SECRET", "refresh-test-secret")

	user := testUser()
	raw, err := IssueRefreshToken(user)
	require.NoError(t, err)

	claims, err := ParseRefreshToken(raw)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.UserID)
	require.WithinDuration(t, time.Now().Add(RefreshTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-test-secret")
	t.Setenv("REFRESH_SECRET", "refresh-test-secret")

	user := testUser()

	refreshRaw, err := IssueRefreshToken(user)
	require.NoError(t, err)
	_, err = ParseAccessToken(refreshRaw)
	require.ErrorIs(t, err, ErrInvalidToken)

	accessRaw, err := IssueAccessToken(user)
	require.NoError(t, err)
	_, err = ParseRefreshToken(accessRaw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseFailuresCollapse(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-test-secret")
	t.Setenv("REFRESH_SECRET", "refresh-test-secret")

	raw, err := IssueAccessToken(testUser())
	require.NoError(t, err)

	// Tampered signature, garbage, empty: all the same opaque error.
	tampered := raw[:len(raw)-2] + "xx"
	for _, bad := range []string{tampered, "not-a-jwt", ""} {
		_, err := ParseAccessToken(bad)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-test-secret")
	raw, err := IssueAccessToken(testUser())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "rotated-secret")
	_, err = ParseAccessToken(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}
