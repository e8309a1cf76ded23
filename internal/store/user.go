package store

import (
	"context"
	"time"

	"orumgs-api/internal/models"
)

// UserStore is the persistent user record store. The Postgres implementation
// is injected at startup; tests substitute an in-memory fake.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash, role string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id int, role string) error
	DeleteUser(ctx context.Context, id int) error

	// SetResetToken stores the hash of a newly issued reset secret together
	// with its expiry, superseding any previous token.
	SetResetToken(ctx context.Context, id int, tokenHash string, expires time.Time) error
	// FindByResetToken matches {email, token hash, expiry in the future}.
	FindByResetToken(ctx context.Context, email, tokenHash string, now time.Time) (*models.User, error)
	// UpdatePassword overwrites the password hash and clears the reset fields.
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}
