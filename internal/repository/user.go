// Package repository provides PostgreSQL persistence for users and offers.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jdavril/brocante/internal/common"
	"github.com/jdavril/brocante/internal/models"
)

// PostgresUserRepository implements user persistence against a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// FindByEmail fetches the user registered with the given email, including
// credentials. Returns common.ErrNotFound if no such user exists.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, username, phone, salt, hash, token FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.Account.Username, &user.Account.Phone,
		&user.Salt, &user.Hash, &user.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	return &user, nil
}

// FindByToken resolves a bearer token to the user it identifies, projecting
// only the id and account. Returns common.ErrNotFound if no user carries
// the token.
func (r *PostgresUserRepository) FindByToken(ctx context.Context, token string) (*models.Identity, error) {
	var identity models.Identity
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, phone FROM users WHERE token = $1
	`, token).Scan(&identity.ID, &identity.Account.Username, &identity.Account.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("FindByToken: %w", err)
	}
	return &identity, nil
}

// Create persists a new user with its credentials.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, username, phone, salt, hash, token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Email, user.Account.Username, user.Account.Phone,
		user.Salt, user.Hash, user.Token)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
