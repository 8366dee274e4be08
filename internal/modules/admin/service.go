package admin

import (
	"context"
	"errors"
	"time"

	"coworkly/internal/domain"
	"coworkly/internal/repository"

	"gorm.io/gorm"
)

// weekdayLabels index by time.Weekday (Sunday = 0).
var weekdayLabels = [7]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

type Service struct {
	users         UserRepository
	reservations  ReservationRepository
	subscriptions SubscriptionReader
	rooms         RoomReader
	stats         StatsReader
	now           func() time.Time
}

func NewService(
	users UserRepository,
	reservations ReservationRepository,
	subscriptions SubscriptionReader,
	rooms RoomReader,
	stats StatsReader,
) *Service {
	return &Service{
		users:         users,
		reservations:  reservations,
		subscriptions: subscriptions,
		rooms:         rooms,
		stats:         stats,
		now:           time.Now,
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]repository.UserWithCounts, error) {
	return s.users.ListWithCounts(ctx)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*UserDetails, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	reservations, err := s.reservations.ListDetailed(ctx, repository.ReservationFilter{UserID: &id})
	if err != nil {
		return nil, err
	}
	subscriptions, err := s.subscriptions.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return &UserDetails{
		User:          u,
		Reservations:  reservations,
		Subscriptions: subscriptions,
	}, nil
}

func (s *Service) UpdateRole(ctx context.Context, id int64, roleStr string) (*domain.User, error) {
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return nil, ErrInvalidRole
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.users.UpdateRole(ctx, id, role)
}

// DeleteUser removes the user and all their data. Admins cannot remove
// themselves.
func (s *Service) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrSelfDelete
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.users.Delete(ctx, id)
}

// CancelReservation is the admin shortcut; no ownership check, seat status
// refreshed afterwards.
func (s *Service) CancelReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	res, err = s.reservations.UpdateStatus(ctx, id, domain.ReservationCancelled)
	if err != nil {
		return nil, err
	}
	if err := s.reservations.RefreshSeatStatus(ctx, res.SeatID); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) ListReservations(ctx context.Context) ([]repository.ReservationWithUser, error) {
	return s.reservations.ListRecentWithUsers(ctx, 50)
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	counts, err := s.stats.Counts(ctx)
	if err != nil {
		return nil, err
	}

	weekly, err := s.WeeklyStats(ctx)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListWithSeats(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.reservations.ListRecentWithUsers(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Counts:         counts,
		WeeklyActivity: weekly,
		Rooms:          rooms,
		RecentBookings: recent,
	}, nil
}

// WeeklyStats buckets the last 7 days of created reservations per weekday,
// oldest day first, ending today.
func (s *Service) WeeklyStats(ctx context.Context) ([]WeekdayCount, error) {
	now := s.now()
	since := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)

	stamps, err := s.stats.ReservationsCreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]int, 7)
	for _, ts := range stamps {
		perDay[weekdayLabels[ts.Weekday()]]++
	}

	out := make([]WeekdayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		label := weekdayLabels[day.Weekday()]
		out = append(out, WeekdayCount{Day: label, Count: perDay[label]})
	}
	return out, nil
}
