package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "nexus-test"

func newTestHS256(t *testing.T) *HS256 {
	t.Helper()
	h, err := NewHS256([]byte("0123456789abcdef0123456789abcdef"), testIssuer)
	require.NoError(t, err)
	return h
}

func TestNewHS256RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256(nil, testIssuer)
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	claims := NewAccessClaims("user-123", "Admin", testIssuer, time.Hour, time.Now())
	token, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "Admin", got.Role)
	require.Equal(t, testIssuer, got.Issuer)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	other, err := NewHS256([]byte("another-secret-another-secret-00"), testIssuer)
	require.NoError(t, err)

	token, err := other.Sign(NewAccessClaims("user-123", "Admin", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	issued := time.Now().Add(-2 * time.Hour)
	token, err := h.Sign(NewAccessClaims("user-123", "Developer", testIssuer, time.Hour, issued))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	token, err := h.Sign(NewAccessClaims("user-123", "Developer", "someone-else", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()
	h := newTestHS256(t)

	_, err := h.Verify("definitely.not.a-jwt")
	require.ErrorIs(t, err, ErrMalformed)
}
