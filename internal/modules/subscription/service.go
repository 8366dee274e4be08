package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coworkly/internal/domain"
	"coworkly/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	subscriptions SubscriptionRepository
	reservations  ReservationReader
	notifs        NotificationSender
	now           func() time.Time
}

func NewService(
	subscriptions SubscriptionRepository,
	reservations ReservationReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		subscriptions: subscriptions,
		reservations:  reservations,
		notifs:        notifs,
		now:           time.Now,
	}
}

// GetUsage reports hour consumption against the newest ACTIVE subscription.
// Confirmed reservations whose whole interval lies inside the subscription
// window are summed; rows spanning a window boundary do not count. Durations
// are rounded up to whole hours after summing.
func (s *Service) GetUsage(ctx context.Context, userID int64) (*UsageResponse, error) {
	sub, err := s.subscriptions.LatestActive(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &UsageResponse{Plan: "NONE", Status: "INACTIVE"}, nil
		}
		return nil, err
	}
	if sub.StartDate == nil || sub.EndDate == nil {
		return &UsageResponse{Plan: string(sub.Plan), Status: string(sub.Status)}, nil
	}

	rows, err := s.reservations.ListConfirmedWithin(ctx, userID, *sub.StartDate, *sub.EndDate)
	if err != nil {
		return nil, err
	}

	var minutes int64
	for _, r := range rows {
		minutes += int64(r.EndTime.Sub(r.StartTime) / time.Minute)
	}
	used := int((minutes + 59) / 60)

	total := sub.Plan.QuotaHours()
	remaining := total - used
	if remaining < 0 {
		remaining = 0
	}

	return &UsageResponse{
		Plan:           string(sub.Plan),
		Status:         string(sub.Status),
		UsedHours:      used,
		TotalHours:     total,
		RemainingHours: remaining,
		EndDate:        sub.EndDate,
	}, nil
}

// Subscribe files a PENDING request; dates stay empty until approval. One
// ACTIVE or PENDING subscription per user.
func (s *Service) Subscribe(ctx context.Context, userID int64, req SubscribeRequest) (*domain.Subscription, error) {
	plan, ok := domain.ParseSubscriptionPlan(req.Plan)
	if !ok {
		return nil, ErrInvalidPlan
	}

	exists, err := s.subscriptions.HasActiveOrPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRequested
	}

	sub := &domain.Subscription{
		UserID: userID,
		Plan:   plan,
		Status: domain.SubscriptionPending,
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.notify(ctx, userID, "Demande d'abonnement", fmt.Sprintf("Demande d'abonnement reçue pour le plan %s.", plan))
	return sub, nil
}

// Approve activates a PENDING subscription: the window opens now and closes
// after the plan's calendar months.
func (s *Service) Approve(ctx context.Context, adminID, id int64) (*domain.Subscription, error) {
	sub, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.SubscriptionPending {
		return nil, ErrNotPending
	}

	now := s.now()
	end := now.AddDate(0, sub.Plan.Months(), 0)
	sub.Status = domain.SubscriptionActive
	sub.StartDate = &now
	sub.EndDate = &end
	sub.ApprovedBy = &adminID
	sub.ApprovedAt = &now

	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.notify(ctx, sub.UserID, "Abonnement approuvé", fmt.Sprintf("Votre plan %s est actif jusqu'au %s.",
		sub.Plan, end.Format("2006-01-02")))
	return sub, nil
}

func (s *Service) Suspend(ctx context.Context, id int64) (*domain.Subscription, error) {
	sub, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Status = domain.SubscriptionSuspended
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.notify(ctx, sub.UserID, "Abonnement suspendu", "Contactez l'administration pour plus d'informations.")
	return sub, nil
}

func (s *Service) Cancel(ctx context.Context, actorID int64, actorRole domain.Role, id int64) (*domain.Subscription, error) {
	sub, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != domain.RoleAdmin && sub.UserID != actorID {
		return nil, ErrForbidden
	}

	sub.Status = domain.SubscriptionCancelled
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.notify(ctx, sub.UserID, "Abonnement annulé", "Votre abonnement a été annulé.")
	return sub, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.subscriptions.Delete(ctx, id)
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	return s.subscriptions.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, filter repository.SubscriptionFilter) ([]domain.Subscription, error) {
	return s.subscriptions.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, actorID int64, actorRole domain.Role, id int64) (*domain.Subscription, error) {
	sub, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != domain.RoleAdmin && sub.UserID != actorID {
		return nil, ErrForbidden
	}
	return sub, nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Subscription, error) {
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *Service) notify(ctx context.Context, userID int64, title, message string) {
	if s.notifs == nil {
		return
	}
	_ = s.notifs.Send(ctx, userID, domain.NotifSubscriptionUpdate, title, message)
}
