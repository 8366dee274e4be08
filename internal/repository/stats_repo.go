package repository

import (
	"context"
	"time"

	"coworkly/internal/domain"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// DashboardCounts are the headline numbers on the admin dashboard.
type DashboardCounts struct {
	Users               int64 `json:"users"`
	Rooms               int64 `json:"rooms"`
	Seats               int64 `json:"seats"`
	Reservations        int64 `json:"reservations"`
	ActiveSubscriptions int64 `json:"activeSubscriptions"`
}

func (r *StatsRepository) Counts(ctx context.Context) (*DashboardCounts, error) {
	db := r.db.WithContext(ctx)
	var c DashboardCounts

	if err := db.Model(&userModel{}).Count(&c.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&roomModel{}).Count(&c.Rooms).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&seatModel{}).Count(&c.Seats).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&reservationModel{}).Count(&c.Reservations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&subscriptionModel{}).
		Where("status = ?", string(domain.SubscriptionActive)).
		Count(&c.ActiveSubscriptions).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ReservationsCreatedSince returns creation timestamps of reservations made
// after the cutoff; weekday bucketing happens in the service so the query
// stays dialect-neutral.
func (r *StatsRepository) ReservationsCreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var stamps []time.Time
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Pluck("created_at", &stamps)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return stamps, nil
}
