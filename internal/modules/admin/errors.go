package admin

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrSelfDelete          = errors.New("admins cannot delete their own account")
	ErrInvalidRole         = errors.New("invalid role")
	ErrReservationNotFound = errors.New("reservation not found")
)
