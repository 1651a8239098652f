package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/danieltanr/webauth/internal/auth/domain"
)

// DB is the subset of *pgxpool.Pool the repository needs; pgxmock pools
// satisfy it in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = "id, name, email, password_hash, role, password_changed_at, " +
	"password_reset_token, password_reset_expires, created_at, updated_at"

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user      domain.User
		changedAt *time.Time
	)

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&changedAt, &user.PasswordResetToken, &user.PasswordResetExpires,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if changedAt != nil {
		user.PasswordChangedAt = *changedAt
	}

	return &user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1;`, userColumns)

	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1;`, userColumns)

	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByResetToken only matches rows whose reset window is still open; an
// expired digest behaves exactly like an unknown one.
func (r *PostgresRepository) GetByResetToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE password_reset_token = $1 AND password_reset_expires > now() LIMIT 1;`, userColumns)

	return scanUser(r.db.QueryRow(ctx, query, tokenHash))
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at;`, userColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires = $3, updated_at = now()
		WHERE id = $1
	`, userID, tokenHash, expires)

	return err
}

func (r *PostgresRepository) ClearResetToken(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_reset_token = NULL, password_reset_expires = NULL, updated_at = now()
		WHERE id = $1
	`, userID)

	return err
}

// UpdatePassword also clears the reset fields in the same statement so a
// redeemed token cannot be redeemed twice, even racing another request.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, userID, passwordHash string, changedAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, password_changed_at = $3,
		    password_reset_token = NULL, password_reset_expires = NULL, updated_at = now()
		WHERE id = $1
	`, userID, passwordHash, changedAt)

	return err
}
