package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jdavril/brocante/internal/common"
	"github.com/jdavril/brocante/internal/models"
)

func setupUserMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresUserRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestFindByEmail_Found(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "email", "username", "phone", "salt", "hash", "token"}).
		AddRow("u-1", "alice@example.com", "alice", "0600000000", "salt1", "hash1", "token1")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, username, phone, salt, hash, token FROM users WHERE email = $1`)).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u-1" || user.Account.Username != "alice" || user.Salt != "salt1" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, username, phone, salt, hash, token FROM users WHERE email = $1`)).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "phone", "salt", "hash", "token"}))

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected common.ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindByEmail_Error(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, username, phone, salt, hash, token FROM users WHERE email = $1`)).
		WithArgs("alice@example.com").
		WillReturnError(errors.New("query failed"))

	_, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err == nil {
		t.Error("expected error, got nil")
	}
	if errors.Is(err, common.ErrNotFound) {
		t.Error("a query failure must not look like a missing user")
	}
}

func TestFindByToken_Found(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "username", "phone"}).
		AddRow("u-2", "bob", "")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, phone FROM users WHERE token = $1`)).
		WithArgs("token2").
		WillReturnRows(rows)

	identity, err := repo.FindByToken(context.Background(), "token2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != "u-2" || identity.Account.Username != "bob" {
		t.Errorf("unexpected identity: %+v", identity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFindByToken_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, phone FROM users WHERE token = $1`)).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "phone"}))

	_, err := repo.FindByToken(context.Background(), "unknown")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected common.ErrNotFound, got %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	user := &models.User{
		ID:      "u-3",
		Email:   "carol@example.com",
		Account: models.Account{Username: "carol", Phone: "0700000000"},
		Salt:    "salt3",
		Hash:    "hash3",
		Token:   "token3",
	}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, email, username, phone, salt, hash, token)`)).
		WithArgs("u-3", "carol@example.com", "carol", "0700000000", "salt3", "hash3", "token3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateUser_Error(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(errors.New("insert failed"))

	err := repo.Create(context.Background(), &models.User{ID: "u-4"})
	if err == nil {
		t.Error("expected error, got nil")
	}
}
