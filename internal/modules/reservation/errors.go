package reservation

import "errors"

var (
	ErrInvalidSeat     = errors.New("seatId is invalid")
	ErrInvalidInterval = errors.New("invalid time range")
	ErrInvalidType     = errors.New("invalid reservation type")
	ErrConflict        = errors.New("seat already reserved for this time range")
	ErrNotFound        = errors.New("reservation not found")
	ErrForbidden       = errors.New("not allowed")
)
