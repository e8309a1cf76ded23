package store

import (
	"context"
	"database/sql"
	"time"

	"orumgs-api/internal/models"

	"github.com/lib/pq"
)

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userColumns = `id, name, email, password, role, reset_token_hash, reset_token_expires, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role,
		&u.ResetTokenHash, &u.ResetTokenExpires, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, email, passwordHash, role)

	user, err := scanUser(row)
	if err != nil {
		// 23505 = unique_violation
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *PostgresUserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Password, &u.Role,
			&u.ResetTokenHash, &u.ResetTokenExpires, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PostgresUserStore) UpdateRole(ctx context.Context, id int, role string) error {
	return s.exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
}

func (s *PostgresUserStore) DeleteUser(ctx context.Context, id int) error {
	return s.exec(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (s *PostgresUserStore) SetResetToken(ctx context.Context, id int, tokenHash string, expires time.Time) error {
	return s.exec(ctx, `
		UPDATE users
		SET reset_token_hash = $1, reset_token_expires = $2, updated_at = NOW()
		WHERE id = $3`, tokenHash, expires, id)
}

func (s *PostgresUserStore) FindByResetToken(ctx context.Context, email, tokenHash string, now time.Time) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE email = $1 AND reset_token_hash = $2 AND reset_token_expires > $3`,
		email, tokenHash, now)
	return scanUser(row)
}

func (s *PostgresUserStore) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return s.exec(ctx, `
		UPDATE users
		SET password = $1, reset_token_hash = NULL, reset_token_expires = NULL, updated_at = NOW()
		WHERE id = $2`, passwordHash, id)
}

func (s *PostgresUserStore) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
