package admin

import (
	"coworkly/internal/domain"
	"coworkly/internal/repository"
)

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserDetails is a user together with their recent activity.
type UserDetails struct {
	User          *domain.User                    `json:"user"`
	Reservations  []repository.ReservationDetails `json:"reservations"`
	Subscriptions []domain.Subscription           `json:"subscriptions"`
}

// WeekdayCount is one bar of the weekly reservations chart.
type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// DashboardResponse aggregates everything the admin landing page shows.
type DashboardResponse struct {
	Counts         *repository.DashboardCounts      `json:"counts"`
	WeeklyActivity []WeekdayCount                   `json:"weeklyActivity"`
	Rooms          []repository.RoomWithSeats       `json:"rooms"`
	RecentBookings []repository.ReservationWithUser `json:"recentBookings"`
}
