package repository

import (
	"context"
	"time"

	"coworkly/internal/domain"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

type subscriptionModel struct {
	ID         int64      `gorm:"column:id;primaryKey"`
	UserID     int64      `gorm:"column:user_id;index"`
	Plan       string     `gorm:"column:plan"`
	Status     string     `gorm:"column:status;default:PENDING"`
	StartDate  *time.Time `gorm:"column:start_date"`
	EndDate    *time.Time `gorm:"column:end_date"`
	ApprovedBy *int64     `gorm:"column:approved_by"`
	ApprovedAt *time.Time `gorm:"column:approved_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (subscriptionModel) TableName() string { return "subscriptions" }

func toDomainSubscription(m subscriptionModel) *domain.Subscription {
	return &domain.Subscription{
		ID:         m.ID,
		UserID:     m.UserID,
		Plan:       domain.SubscriptionPlan(m.Plan),
		Status:     domain.SubscriptionStatus(m.Status),
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		ApprovedBy: m.ApprovedBy,
		ApprovedAt: m.ApprovedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toSubscriptionModel(s *domain.Subscription) subscriptionModel {
	return subscriptionModel{
		ID:         s.ID,
		UserID:     s.UserID,
		Plan:       string(s.Plan),
		Status:     string(s.Status),
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		ApprovedBy: s.ApprovedBy,
		ApprovedAt: s.ApprovedAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (r *SubscriptionRepository) DB() *gorm.DB { return r.db }

func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.Subscription) error {
	m := toSubscriptionModel(s)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSubscription(m)
	return nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	var m subscriptionModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSubscription(m), nil
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	var models []subscriptionModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return subscriptionsToDomain(models), nil
}

// SubscriptionFilter narrows List; nil fields are ignored.
type SubscriptionFilter struct {
	UserID *int64
	Status *domain.SubscriptionStatus
}

func (r *SubscriptionRepository) List(ctx context.Context, filter SubscriptionFilter) ([]domain.Subscription, error) {
	q := r.db.WithContext(ctx).Model(&subscriptionModel{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}

	var models []subscriptionModel
	if tx := q.Order("created_at DESC").Find(&models); tx.Error != nil {
		return nil, tx.Error
	}
	return subscriptionsToDomain(models), nil
}

// LatestActive returns the user's most recently created ACTIVE subscription,
// or gorm.ErrRecordNotFound when there is none.
func (r *SubscriptionRepository) LatestActive(ctx context.Context, userID int64) (*domain.Subscription, error) {
	var m subscriptionModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(domain.SubscriptionActive)).
		Order("created_at DESC").
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSubscription(m), nil
}

// HasActiveOrPending reports whether the user already holds a subscription
// that would block a new request.
func (r *SubscriptionRepository) HasActiveOrPending(ctx context.Context, userID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&subscriptionModel{}).
		Where("user_id = ? AND status IN ?", userID, []string{
			string(domain.SubscriptionActive),
			string(domain.SubscriptionPending),
		}).
		Count(&cnt)
	return cnt > 0, tx.Error
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *domain.Subscription) error {
	m := toSubscriptionModel(s)
	if tx := r.db.WithContext(ctx).Save(&m); tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSubscription(m)
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&subscriptionModel{}, id).Error
}

func subscriptionsToDomain(models []subscriptionModel) []domain.Subscription {
	out := make([]domain.Subscription, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSubscription(m))
	}
	return out
}
