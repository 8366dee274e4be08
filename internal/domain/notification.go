package domain

import "time"

type NotificationType string

const (
	NotifReservationConfirmation NotificationType = "CONFIRMATION_RESERVATION"
	NotifSubscriptionUpdate      NotificationType = "SUBSCRIPTION_UPDATE"
)

// Notification is an in-app message; ReadAt stays nil until the user reads
// it.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	SentAt    time.Time        `json:"sentAt"`
	ReadAt    *time.Time       `json:"readAt"`
	CreatedAt time.Time        `json:"createdAt"`
}

// IsRead reports whether the notification has been opened.
func (n *Notification) IsRead() bool { return n.ReadAt != nil }
