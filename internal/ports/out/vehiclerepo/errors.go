package vehiclerepo

import "errors"

var (
	// ErrNotFound indicates the requested vehicle does not exist.
	ErrNotFound = errors.New("vehicle not found")

	// ErrAlreadyExists indicates a vehicle already exists with the provided
	// id or license plate.
	ErrAlreadyExists = errors.New("vehicle already exists")

	// ErrMissingID indicates the vehicle was submitted without an id.
	ErrMissingID = errors.New("vehicle id is empty")
)
