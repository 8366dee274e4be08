package repository

import "errors"

var (
	// ErrConflict is returned when an insert loses the overlap race, either
	// at the in-transaction check or at the database exclusion constraint.
	ErrConflict = errors.New("conflicting reservation exists")

	ErrSeatNotFound = errors.New("seat not found")
)
