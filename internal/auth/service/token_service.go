package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/danieltanr/webauth/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	autherror "github.com/danieltanr/webauth/internal/errors"
)

type TokenGenerator interface {
	Generate(userID string) (string, error)
	Verify(tokenString string) (*SessionClaims, error)
	GetExpiry() time.Duration
}

// TokenService issues and verifies stateless session tokens. The signing
// secret and lifetime come from configuration at construction, never from
// ambient process state.
type TokenService struct {
	Secret string
	Expiry time.Duration
}

type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func NewTokenService(secret string, expiryHours int) *TokenService {
	return &TokenService{
		Secret: secret,
		Expiry: time.Duration(expiryHours) * time.Hour,
	}
}

func (ts *TokenService) Generate(userID string) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
}

// Verify parses and validates the given session token string. Expiry is
// enforced by the parser against the embedded exp claim.
func (ts *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})

	if err != nil {
		return nil, autherror.ErrInvalidToken
	}

	if !token.Valid {
		return nil, autherror.ErrInvalidToken
	}

	return claims, nil
}

func (ts *TokenService) GetExpiry() time.Duration {
	return ts.Expiry
}
