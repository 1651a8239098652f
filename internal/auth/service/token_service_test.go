package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		secret      string
		expiryHours int
	}{
		{
			name:        "valid parameters",
			secret:      "session-secret-key",
			expiryHours: 72,
		},
		{
			name:        "empty secret",
			secret:      "",
			expiryHours: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenService(tt.secret, tt.expiryHours)

			assert.NotNil(t, ts)
			assert.Equal(t, tt.secret, ts.Secret)
			assert.Equal(t, time.Duration(tt.expiryHours)*time.Hour, ts.Expiry)
			assert.Equal(t, ts.Expiry, ts.GetExpiry())
		})
	}
}

func TestTokenService_GenerateAndVerify(t *testing.T) {
	ts := NewTokenService("test-secret-key-123", 72)

	beforeGenerate := time.Now()
	token, err := ts.Generate("user-123")
	afterGenerate := time.Now()

	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)

	// Issued-at is stamped at generation with second precision.
	require.NotNil(t, claims.IssuedAt)
	assert.False(t, claims.IssuedAt.Time.Before(beforeGenerate.Truncate(time.Second)))
	assert.False(t, claims.IssuedAt.Time.After(afterGenerate))

	// Expiry is fixed at issuance time plus the configured lifetime.
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, claims.IssuedAt.Time.Add(72*time.Hour), claims.ExpiresAt.Time)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	ts := NewTokenService("right-secret", 72)
	other := NewTokenService("wrong-secret", 72)

	token, err := ts.Generate("user-123")
	require.NoError(t, err)

	claims, err := other.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	ts := NewTokenService("test-secret", 72)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a jwt", token: "garbage"},
		{name: "truncated jwt", token: "eyJhbGciOiJIUzI1NiJ9.eyJmb28iOiJiYXIifQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ts.Verify(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	ts := &TokenService{Secret: "test-secret", Expiry: -time.Hour}

	token, err := ts.Generate("user-123")
	require.NoError(t, err)

	claims, err := ts.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenService_Verify_WrongSigningMethod(t *testing.T) {
	ts := NewTokenService("test-secret", 72)

	// alg=none tokens must never pass verification.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := ts.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
