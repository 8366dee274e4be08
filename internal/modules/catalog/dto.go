package catalog

import (
	"time"

	"coworkly/internal/domain"
)

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	IsAvailable *bool  `json:"isAvailable"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
	IsAvailable *bool   `json:"isAvailable"`
}

// RoomResponse adds the seat counters to the room fields.
type RoomResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Capacity       int       `json:"capacity"`
	IsAvailable    bool      `json:"isAvailable"`
	TotalSeats     int       `json:"totalSeats"`
	AvailableSeats int       `json:"availableSeats"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateSeatRequest struct {
	RoomID int64   `json:"roomId" binding:"required"`
	Number int     `json:"number" binding:"required,min=1"`
	PosX   float64 `json:"posX"`
	PosY   float64 `json:"posY"`
}

type UpdateSeatRequest struct {
	Number *int     `json:"number"`
	PosX   *float64 `json:"posX"`
	PosY   *float64 `json:"posY"`
	Status *string  `json:"status"`
}

// SeatResponse carries the projected display status alongside the stored
// one.
type SeatResponse struct {
	domain.Seat
	EffectiveStatus domain.SeatStatus `json:"effectiveStatus"`
}
