package catalog

import (
	"context"
	"time"

	"coworkly/internal/domain"
	"coworkly/internal/repository"
)

// RoomRepository defines the persistence operations for rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
	ListWithSeats(ctx context.Context) ([]repository.RoomWithSeats, error)
	GetWithSeats(ctx context.Context, id int64) (*repository.RoomWithSeats, error)
}

// SeatRepository defines the persistence operations for seats.
type SeatRepository interface {
	Create(ctx context.Context, s *domain.Seat) error
	GetByID(ctx context.Context, id int64) (*domain.Seat, error)
	List(ctx context.Context, roomID *int64) ([]domain.Seat, error)
	Update(ctx context.Context, s *domain.Seat) error
	Delete(ctx context.Context, id int64) error
}

// ReservationReader exposes the reservation data the status projection
// needs.
type ReservationReader interface {
	ActiveSeatIDs(ctx context.Context, seatIDs []int64, now time.Time) (map[int64]bool, error)
}
