package triprepo

import "errors"

var (
	// ErrNotFound indicates the requested trip does not exist.
	ErrNotFound = errors.New("trip not found")

	// ErrAlreadyExists indicates a trip already exists with the provided id.
	ErrAlreadyExists = errors.New("trip already exists")

	// ErrInvalidReference indicates the trip points at a user or vehicle
	// that does not exist.
	ErrInvalidReference = errors.New("trip references unknown user or vehicle")

	// ErrMissingID indicates the trip was submitted without an id.
	ErrMissingID = errors.New("trip id is empty")
)
