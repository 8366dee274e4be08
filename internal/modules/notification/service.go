package notification

import (
	"context"
	"errors"
	"time"

	"coworkly/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	notifications NotificationRepository
	hub           *Hub
	now           func() time.Time
}

// NewService wires the inbox; hub may be nil when realtime push is disabled.
func NewService(notifications NotificationRepository, hub *Hub) *Service {
	return &Service{
		notifications: notifications,
		hub:           hub,
		now:           time.Now,
	}
}

// Send persists a notification and pushes it to the user's websocket when
// one is connected. Implements the Sender interface the other modules use.
func (s *Service) Send(ctx context.Context, userID int64, typ domain.NotificationType, title, message string) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		SentAt:  s.now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		_ = s.hub.SendToUser(userID, toResponse(*n))
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool) ([]NotificationResponse, error) {
	rows, err := s.notifications.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	out := make([]NotificationResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, toResponse(n))
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id int64) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if n.UserID != userID {
		return ErrForbidden
	}
	return s.notifications.MarkRead(ctx, id, s.now())
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID, s.now())
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if n.UserID != userID {
		return ErrForbidden
	}
	return s.notifications.Delete(ctx, id)
}

func (s *Service) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.DeleteAllByUser(ctx, userID)
}
