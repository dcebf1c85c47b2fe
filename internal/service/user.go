// Package service provides business logic for accounts and offers,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdavril/brocante/internal/common"
	"github.com/jdavril/brocante/internal/cryptox"
	"github.com/jdavril/brocante/internal/models"
)

// credentialBytes is the number of random bytes behind each salt and token.
const credentialBytes = 16

// UserRepository defines the persistence operations required by the
// user service.
type UserRepository interface {
	// FindByEmail returns the user registered with the given email, or
	// common.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Create persists a new user record.
	Create(ctx context.Context, user *models.User) error
}

// UserService implements signup and login.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// SignupInput carries the fields accepted at signup. Phone is optional.
type SignupInput struct {
	Email    string
	Username string
	Password string
	Phone    string
}

// Signup registers a new user: it checks the username is present,
// pre-checks the email is free, derives the password hash from a fresh
// random salt and issues the permanent bearer token. The returned
// projection never includes email, salt or hash.
//
// The email check is read-then-write: two concurrent signups with the
// same email can both pass it. That race is a known property of this
// flow, not something this layer tries to close.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.PublicUser, error) {
	if in.Username == "" {
		return nil, fmt.Errorf("please add a username: %w", common.ErrValidation)
	}

	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("email is already taken: %w", common.ErrConflict)
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	salt, err := cryptox.RandomString(credentialBytes)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	token, err := cryptox.RandomString(credentialBytes)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	user := &models.User{
		ID:    uuid.NewString(),
		Email: in.Email,
		Account: models.Account{
			Username: in.Username,
			Phone:    in.Phone,
		},
		Salt:  salt,
		Hash:  cryptox.HashPassword(in.Password, salt),
		Token: token,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return &models.PublicUser{ID: user.ID, Token: user.Token, Account: user.Account}, nil
}

// Login verifies the password against the stored salt and hash and
// returns a welcome message. An unknown email and a wrong password
// both fail with common.ErrInvalidCredentials so the caller cannot
// tell which emails are registered.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	if cryptox.HashPassword(password, user.Salt) != user.Hash {
		return "", common.ErrInvalidCredentials
	}

	return fmt.Sprintf("Welcome %s!", user.Account.Username), nil
}
