package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieltanr/webauth/internal/auth/domain"
	repo "github.com/danieltanr/webauth/internal/auth/repository/postgres"
)

var userColumns = []string{
	"id", "name", "email", "password_hash", "role", "password_changed_at",
	"password_reset_token", "password_reset_expires", "created_at", "updated_at",
}

func userRow(id, email string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userColumns).
		AddRow(id, "Test User", email, "hash", domain.RoleUser, nil, nil, nil, now, now)
}

func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	userEmail := "test@example.com"

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs(userEmail).
			WillReturnRows(userRow("user-123", userEmail))

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-123", user.ID)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.True(t, user.PasswordChangedAt.IsZero())
		assert.Nil(t, user.PasswordResetToken)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs(userEmail).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err) // Should return nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs(userEmail).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmail(ctx, userEmail)
		assert.Error(t, err)
	})
}

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success with password change history", func(t *testing.T) {
		now := time.Now()
		changedAt := now.Add(-time.Hour)
		digest := "stored-digest"
		expires := now.Add(10 * time.Minute)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "Test User", "test@example.com", "hash", domain.RoleAdmin,
					&changedAt, &digest, &expires, now, now))

		user, err := r.GetByID(ctx, "user-123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, domain.RoleAdmin, user.Role)
		assert.Equal(t, changedAt, user.PasswordChangedAt)
		require.NotNil(t, user.PasswordResetToken)
		assert.Equal(t, digest, *user.PasswordResetToken)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestGetByResetToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	digest := "abc123digest"

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE password_reset_token = (.+) AND password_reset_expires >").
			WithArgs(digest).
			WillReturnRows(userRow("user-123", "test@example.com"))

		user, err := r.GetByResetToken(ctx, digest)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-123", user.ID)
	})

	t.Run("expired or unknown token", func(t *testing.T) {
		// An expired digest never matches the query, identical to a wrong one.
		mock.ExpectQuery("SELECT (.+) FROM users WHERE password_reset_token").
			WithArgs(digest).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByResetToken(ctx, digest)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	now := time.Now()
	user := &domain.User{
		ID:           "user-123",
		Name:         "New User",
		Email:        "new@example.com",
		PasswordHash: "new-hash",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, user)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, user)
		assert.Error(t, err)
	})
}

func TestList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-1", "A", "a@x.com", "hash", domain.RoleUser, nil, nil, nil, now, now).
				AddRow("user-2", "B", "b@x.com", "hash", domain.RoleAdmin, nil, nil, nil, now, now))

		users, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "user-1", users[0].ID)
		assert.Equal(t, domain.RoleAdmin, users[1].Role)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.List(ctx)
		assert.Error(t, err)
	})
}

func TestSetResetToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	expires := time.Now().Add(20 * time.Minute)

	mock.ExpectExec("UPDATE users").
		WithArgs("user-123", "digest", expires).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = r.SetResetToken(ctx, "user-123", "digest", expires)
	assert.NoError(t, err)
}

func TestClearResetToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = r.ClearResetToken(ctx, "user-123")
	assert.NoError(t, err)
}

func TestUpdatePassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	changedAt := time.Now()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-123", "new-hash", changedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := r.UpdatePassword(ctx, "user-123", "new-hash", changedAt)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-123", "new-hash", changedAt).
			WillReturnError(fmt.Errorf("db error"))

		err := r.UpdatePassword(ctx, "user-123", "new-hash", changedAt)
		assert.Error(t, err)
	})
}
