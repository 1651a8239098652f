package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/danieltanr/webauth/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/danieltanr/webauth/internal/auth/domain Mailer

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	List(ctx context.Context) ([]User, error)

	// GetByResetToken matches the stored reset-token digest and only returns
	// a user whose reset window has not yet expired.
	GetByResetToken(ctx context.Context, tokenHash string) (*User, error)
	SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, userID string) error

	// UpdatePassword writes the new hash and password-changed timestamp and
	// clears both reset-token fields in a single statement, which is what
	// makes reset tokens single-use under concurrent redemption.
	UpdatePassword(ctx context.Context, userID, passwordHash string, changedAt time.Time) error
}

type Email struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}
