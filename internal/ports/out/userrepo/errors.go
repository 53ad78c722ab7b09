package userrepo

import "errors"

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrAlreadyExists indicates a user already exists with the provided id,
	// username, or employee id.
	ErrAlreadyExists = errors.New("user already exists")

	// ErrMissingID indicates the user was submitted without an id.
	ErrMissingID = errors.New("user id is empty")
)
