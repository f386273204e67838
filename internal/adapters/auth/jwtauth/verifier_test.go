package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicine-reminder/internal/ports/auth"
)

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := NewVerifier("  ")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerifier_RoundTrip(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)

	token, err := v.Issue("u1", "rosa@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u1", Email: "rosa@example.com"}, claims)
}

func TestVerifier_Rejects(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)
	other, err := NewVerifier("other")
	require.NoError(t, err)

	foreign, err := other.Issue("u1", "", time.Hour)
	require.NoError(t, err)

	expired, err := v.Issue("u1", "", time.Minute)
	require.NoError(t, err)
	v.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@y.z"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"id": "u1"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"foreign": foreign,
		"expired": expired,
		"no id":   noID,
		"hs512":   hs512,
		"garbage": "not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			assert.ErrorIs(t, err, auth.ErrUnauthorized)
		})
	}

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}
