package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/danieltanr/webauth/config"
	"github.com/danieltanr/webauth/internal/auth/domain"
	"github.com/danieltanr/webauth/internal/auth/dto"
	autherror "github.com/danieltanr/webauth/internal/errors"
)

type UserService struct {
	repo   domain.UserRepository
	mailer domain.Mailer
	cfg    *config.Config
	log    *zap.Logger
}

func NewUserService(repo domain.UserRepository, mailer domain.Mailer, cfg *config.Config, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}

	return &UserService{
		repo:   repo,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
	}
}

func (s *UserService) Signup(ctx context.Context, input dto.SignupInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.PasswordConfirm == "" {
		return nil, autherror.ErrMissingFields
	}

	if err := validatePassword(input.Password, input.PasswordConfirm); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID))

	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, autherror.ErrMissingCredentials
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || !checkPassword(input.Password, user.PasswordHash) {
		return nil, autherror.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID resolves the principal for a verified session token.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// ForgotPassword issues a single-use reset token, persists its digest with a
// bounded expiry and emails the plaintext. If dispatch fails the stored digest
// is cleared again so the token cannot be redeemed while appearing sent.
func (s *UserService) ForgotPassword(ctx context.Context, email, resetURL string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	plaintext, digest, err := newResetToken()
	if err != nil {
		return err
	}

	expires := time.Now().Add(time.Duration(s.cfg.ResetExpiryMin) * time.Minute)
	if err := s.repo.SetResetToken(ctx, user.ID, digest, expires); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password and password confirmation to %s/%s.\n"+
			"If you didn't forget your password, please ignore this email.",
		resetURL, plaintext)

	mail := domain.Email{
		To:      user.Email,
		Subject: fmt.Sprintf("Your password reset token (valid for %d minutes)", s.cfg.ResetExpiryMin),
		Body:    body,
	}

	if err := s.mailer.Send(ctx, mail); err != nil {
		s.log.Warn("password reset email dispatch failed, clearing reset token",
			zap.String("user_id", user.ID), zap.Error(err))

		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.log.Error("failed to clear reset token after dispatch failure",
				zap.String("user_id", user.ID), zap.Error(clearErr))
		}

		return autherror.ErrEmailDispatch
	}

	return nil
}

// ResetPassword redeems a reset token. A wrong, expired or already-used token
// all fail the lookup in the same way; callers cannot tell which.
func (s *UserService) ResetPassword(ctx context.Context, token string, input dto.ResetPasswordInput) (*domain.User, error) {
	if err := validatePassword(input.Password, input.PasswordConfirm); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByResetToken(ctx, hashResetToken(token))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrResetTokenInvalid
	}

	return s.commitPassword(ctx, user, input.Password)
}

// UpdatePassword changes the password of an authenticated principal after
// re-verifying the current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID string, input dto.UpdatePasswordInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserGone
	}

	if !checkPassword(input.PasswordCurrent, user.PasswordHash) {
		return nil, autherror.ErrWrongPassword
	}

	if err := validatePassword(input.Password, input.PasswordConfirm); err != nil {
		return nil, err
	}

	return s.commitPassword(ctx, user, input.Password)
}

// commitPassword writes the new hash, stamps PasswordChangedAt and clears any
// outstanding reset token. The timestamp is backdated one second because token
// issue times carry second precision; the session token issued with this very
// response must not trip the freshness check.
func (s *UserService) commitPassword(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	changedAt := time.Now().Add(-time.Second)
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hashed), changedAt); err != nil {
		return nil, err
	}

	user.PasswordHash = string(hashed)
	user.PasswordChangedAt = changedAt
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil

	s.log.Info("password changed", zap.String("user_id", user.ID))

	return user, nil
}

// checkPassword is the credential check: constant-time bcrypt comparison that
// fails closed on any error. The plaintext is never logged.
func checkPassword(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

func validatePassword(password, confirm string) error {
	if len(password) < 8 {
		return autherror.ErrPasswordTooShort
	}
	if password != confirm {
		return autherror.ErrPasswordMismatch
	}
	return nil
}
