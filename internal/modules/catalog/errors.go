package catalog

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrSeatNotFound  = errors.New("seat not found")
	ErrInvalidStatus = errors.New("invalid seat status")
	ErrDuplicateSeat = errors.New("seat number already used in this room")
)
