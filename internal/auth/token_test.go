package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("")
	require.ErrorIs(t, err, ErrSecretNotConfigured)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuer("s3cret", WithClock(fixedClock(issued)))
	require.NoError(t, err)

	token, expiresAt, err := issuer.Sign(Principal{ID: 7, Email: "rina@shop.test", Role: RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, issued.Add(time.Hour), expiresAt)

	p, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Principal{ID: 7, Email: "rina@shop.test", Role: RoleStaff}, p)
}

func TestVerifyExpiredToken(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	signer, err := NewTokenIssuer("s3cret", WithClock(fixedClock(issued)))
	require.NoError(t, err)
	token, _, err := signer.Sign(Principal{ID: 1, Email: "boss@shop.test", Role: RoleAdmin})
	require.NoError(t, err)

	later, err := NewTokenIssuer("s3cret", WithClock(fixedClock(issued.Add(61*time.Minute))))
	require.NoError(t, err)
	_, err = later.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	signer, err := NewTokenIssuer("one")
	require.NoError(t, err)
	token, _, err := signer.Sign(Principal{ID: 1, Email: "boss@shop.test", Role: RoleAdmin})
	require.NoError(t, err)

	other, err := NewTokenIssuer("two")
	require.NoError(t, err)
	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	issuer, err := NewTokenIssuer("s3cret")
	require.NoError(t, err)
	_, err = issuer.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	issuer, err := NewTokenIssuer("s3cret")
	require.NoError(t, err)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           1, Email: "boss@shop.test", Role: RoleAdmin,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedPayload(t *testing.T) {
	issuer, err := NewTokenIssuer("s3cret")
	require.NoError(t, err)
	tests := map[string]Claims{
		"missing id":    {UserID: 0, Email: "a@b.test", Role: RoleStaff},
		"missing email": {UserID: 3, Email: "", Role: RoleStaff},
		"unknown role":  {UserID: 3, Email: "a@b.test", Role: Role("owner")},
	}
	for name, claims := range tests {
		t.Run(name, func(t *testing.T) {
			claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
			require.NoError(t, err)
			_, err = issuer.Verify(token)
			require.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestVerifyRequiresExpiry(t *testing.T) {
	issuer, err := NewTokenIssuer("s3cret")
	require.NoError(t, err)
	claims := Claims{UserID: 3, Email: "a@b.test", Role: RoleStaff}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, strings.Contains(token, "s3cret"))
}
