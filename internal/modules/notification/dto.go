package notification

import (
	"time"

	"coworkly/internal/domain"
)

// NotificationResponse is the wire shape the clients consume.
type NotificationResponse struct {
	ID      int64      `json:"id"`
	Type    string     `json:"type"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	SentAt  time.Time  `json:"sentAt"`
	IsRead  bool       `json:"isRead"`
	ReadAt  *time.Time `json:"readAt,omitempty"`
}

func toResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:      n.ID,
		Type:    string(n.Type),
		Title:   n.Title,
		Message: n.Message,
		SentAt:  n.SentAt,
		IsRead:  n.IsRead(),
		ReadAt:  n.ReadAt,
	}
}
