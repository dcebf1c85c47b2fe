// Package common defines the error kinds shared between services and
// the HTTP boundary. Services return these sentinels (usually wrapped
// with context) and the boundary maps each kind to a status code.
package common

import "errors"

var (
	// ErrValidation marks a request missing a required field.
	ErrValidation = errors.New("invalid request")

	// ErrConflict marks an attempt to create a resource that already exists.
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials is returned for a failed login. The same
	// error covers an unknown email and a wrong password so responses
	// do not reveal which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized marks a missing, malformed or unknown bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks a reference to an unknown user or offer.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an operation on a resource the caller does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrUpload and ErrDelete mark image host failures.
	ErrUpload = errors.New("image upload failed")
	ErrDelete = errors.New("image delete failed")

	// ErrPersistence marks a store failure.
	ErrPersistence = errors.New("storage failure")
)
