package domain

import "errors"

var (
	// ErrDuplicate means the owner already has a bookmark for this URL.
	ErrDuplicate = errors.New("url already bookmarked")

	// ErrNotFound means the record does not exist or belongs to
	// another owner.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken means an account already exists for the email.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password, deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
