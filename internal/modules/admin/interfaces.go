package admin

import (
	"context"
	"time"

	"coworkly/internal/domain"
	"coworkly/internal/repository"
)

// UserRepository defines the user management operations.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListWithCounts(ctx context.Context) ([]repository.UserWithCounts, error)
	UpdateRole(ctx context.Context, userID int64, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, userID int64) error
}

// ReservationRepository defines the reservation operations the admin surface
// needs.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error)
	RefreshSeatStatus(ctx context.Context, seatID int64) error
	ListDetailed(ctx context.Context, filter repository.ReservationFilter) ([]repository.ReservationDetails, error)
	ListRecentWithUsers(ctx context.Context, limit int) ([]repository.ReservationWithUser, error)
}

// SubscriptionReader lists a user's subscriptions for the detail view.
type SubscriptionReader interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error)
}

// RoomReader provides per-room seat availability for the dashboard.
type RoomReader interface {
	ListWithSeats(ctx context.Context) ([]repository.RoomWithSeats, error)
}

// StatsReader provides the dashboard aggregates.
type StatsReader interface {
	Counts(ctx context.Context) (*repository.DashboardCounts, error)
	ReservationsCreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}
