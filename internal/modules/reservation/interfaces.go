package reservation

import (
	"context"

	"coworkly/internal/domain"
	"coworkly/internal/repository"
)

// ReservationRepository defines the persistence operations for reservations.
// Create performs the conflict check itself, inside its transaction.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
	RefreshSeatStatus(ctx context.Context, seatID int64) error
	ListDetailed(ctx context.Context, filter repository.ReservationFilter) ([]repository.ReservationDetails, error)
}

// SeatReader resolves seats for validation and notification wording.
type SeatReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Seat, error)
}

// RoomReader resolves the room name for notification wording.
type RoomReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// NotificationSender delivers in-app notifications; failures never fail the
// surrounding operation.
type NotificationSender interface {
	Send(ctx context.Context, userID int64, typ domain.NotificationType, title, message string) error
}
