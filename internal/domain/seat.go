package domain

import "time"

type SeatStatus string

const (
	SeatAvailable   SeatStatus = "AVAILABLE"
	SeatReserved    SeatStatus = "RESERVED"
	SeatOccupied    SeatStatus = "OCCUPIED"
	SeatMaintenance SeatStatus = "MAINTENANCE"
)

func ParseSeatStatus(s string) (SeatStatus, bool) {
	switch SeatStatus(s) {
	case SeatAvailable, SeatReserved, SeatOccupied, SeatMaintenance:
		return SeatStatus(s), true
	}
	return "", false
}

// Seat.Status is a cached hint kept in sync on reservation lifecycle
// transitions; the display status is recomputed at read time from the
// currently active reservations.
type Seat struct {
	ID        int64      `json:"id"`
	RoomID    int64      `json:"roomId"`
	Number    int        `json:"number"`
	PosX      float64    `json:"posX"`
	PosY      float64    `json:"posY"`
	Status    SeatStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
