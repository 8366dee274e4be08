package subscription

import (
	"context"
	"time"

	"coworkly/internal/domain"
	"coworkly/internal/repository"
)

// SubscriptionRepository defines the persistence operations for
// subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *domain.Subscription) error
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error)
	List(ctx context.Context, filter repository.SubscriptionFilter) ([]domain.Subscription, error)
	LatestActive(ctx context.Context, userID int64) (*domain.Subscription, error)
	HasActiveOrPending(ctx context.Context, userID int64) (bool, error)
	Update(ctx context.Context, s *domain.Subscription) error
	Delete(ctx context.Context, id int64) error
}

// ReservationReader exposes the confirmed reservations the quota engine
// sums.
type ReservationReader interface {
	ListConfirmedWithin(ctx context.Context, userID int64, from, to time.Time) ([]domain.Reservation, error)
}

// NotificationSender delivers in-app notifications; failures never fail the
// surrounding operation.
type NotificationSender interface {
	Send(ctx context.Context, userID int64, typ domain.NotificationType, title, message string) error
}
