package reservation

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
	reservations ReservationRepository
	seats        SeatReader
	rooms        RoomReader
	notifs       NotificationSender
}

func NewService(
	reservations ReservationRepository,
	seats SeatReader,
	rooms RoomReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		reservations: reservations,
		seats:        seats,
		rooms:        rooms,
		notifs:       notifs,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateReservationRequest) (*domain.Reservation, error) {
	start, end, err := parseInterval(req)
	if err != nil {
		return nil, err
	}

	typ := domain.ReservationHourly
	if req.Type != "" {
		parsed, ok := domain.ParseReservationType(req.Type)
		if !ok {
			return nil, ErrInvalidType
		}
		typ = parsed
	}

	seat, err := s.seats.GetByID(ctx, req.SeatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSeat
		}
		return nil, err
	}

	res := &domain.Reservation{
		UserID:    userID,
		SeatID:    seat.ID,
		StartTime: start,
		EndTime:   end,
		Type:      typ,
		Status:    domain.ReservationConfirmed,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrConflict
		case errors.Is(err, repository.ErrSeatNotFound):
			return nil, ErrInvalidSeat
		}
		return nil, err
	}

	// Best effort; the booking stands even if the notification fails.
	if s.notifs != nil {
		roomName := ""
		if room, err := s.rooms.GetByID(ctx, seat.RoomID); err == nil {
			roomName = room.Name
		}
		message := fmt.Sprintf("Votre réservation pour %s (siège %d) a été confirmée.", roomName, seat.Number)
		_ = s.notifs.Send(ctx, userID, domain.NotifReservationConfirmation, "Réservation confirmée", message)
	}

	return res, nil
}

// Cancel marks the reservation CANCELLED. Owners and admins only; cancelling
// an already-cancelled reservation is a no-op success.
func (s *Service) Cancel(ctx context.Context, actorID int64, actorRole domain.Role, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actorRole != domain.RoleAdmin && res.UserID != actorID {
		return nil, ErrForbidden
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

// Delete hard-removes the reservation. Admin only, enforced at the route.
func (s *Service) Delete(ctx context.Context, id int64) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.reservations.Delete(ctx, id); err != nil {
		return err
	}
	return s.reservations.RefreshSeatStatus(ctx, res.SeatID)
}

// List returns reservations with seat and room context. Non-admins are
// forcibly scoped to their own rows whatever filter they send.
func (s *Service) List(ctx context.Context, actorID int64, actorRole domain.Role, filter repository.ReservationFilter) ([]repository.ReservationDetails, error) {
	if actorRole != domain.RoleAdmin {
		filter.UserID = &actorID
	}
	return s.reservations.ListDetailed(ctx, filter)
}

func parseInterval(req CreateReservationRequest) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if req.Date != "" {
		start, err = time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.StartTime, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidInterval
		}
		end, err = time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.EndTime, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidInterval
		}
	} else {
		start, err = time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidInterval
		}
		end, err = time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidInterval
		}
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidInterval
	}
	return start, end, nil
}
