package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"coworkly/internal/domain"
	"coworkly/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	rooms        RoomRepository
	seats        SeatRepository
	reservations ReservationReader
	now          func() time.Time
}

func NewService(rooms RoomRepository, seats SeatRepository, reservations ReservationReader) *Service {
	return &Service{
		rooms:        rooms,
		seats:        seats,
		reservations: reservations,
		now:          time.Now,
	}
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Capacity:    req.Capacity,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context) ([]RoomResponse, error) {
	rows, err := s.rooms.ListWithSeats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RoomResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRoomResponse(row))
	}
	return out, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*RoomResponse, error) {
	row, err := s.rooms.GetWithSeats(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	res := toRoomResponse(*row)
	return &res, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		room.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		room.Description = strings.TrimSpace(*req.Description)
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return s.rooms.Delete(ctx, id)
}

func (s *Service) CreateSeat(ctx context.Context, req CreateSeatRequest) (*domain.Seat, error) {
	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	seat := &domain.Seat{
		RoomID: req.RoomID,
		Number: req.Number,
		PosX:   req.PosX,
		PosY:   req.PosY,
		Status: domain.SeatAvailable,
	}
	if err := s.seats.Create(ctx, seat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSeat
		}
		return nil, err
	}
	return seat, nil
}

// ListSeats projects the display status: a seat with a CONFIRMED reservation
// covering now shows RESERVED regardless of the stored hint. MAINTENANCE and
// OCCUPIED stored states win over the projection.
func (s *Service) ListSeats(ctx context.Context, roomID *int64) ([]SeatResponse, error) {
	seats, err := s.seats.List(ctx, roomID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.ID)
	}
	active, err := s.reservations.ActiveSeatIDs(ctx, ids, s.now())
	if err != nil {
		return nil, err
	}

	out := make([]SeatResponse, 0, len(seats))
	for _, seat := range seats {
		out = append(out, SeatResponse{
			Seat:            seat,
			EffectiveStatus: EffectiveStatus(seat.Status, active[seat.ID]),
		})
	}
	return out, nil
}

func (s *Service) GetSeat(ctx context.Context, id int64) (*SeatResponse, error) {
	seat, err := s.seats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}

	active, err := s.reservations.ActiveSeatIDs(ctx, []int64{seat.ID}, s.now())
	if err != nil {
		return nil, err
	}

	return &SeatResponse{
		Seat:            *seat,
		EffectiveStatus: EffectiveStatus(seat.Status, active[seat.ID]),
	}, nil
}

func (s *Service) UpdateSeat(ctx context.Context, id int64, req UpdateSeatRequest) (*domain.Seat, error) {
	seat, err := s.seats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}

	if req.Number != nil {
		seat.Number = *req.Number
	}
	if req.PosX != nil {
		seat.PosX = *req.PosX
	}
	if req.PosY != nil {
		seat.PosY = *req.PosY
	}
	if req.Status != nil {
		status, ok := domain.ParseSeatStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		seat.Status = status
	}

	if err := s.seats.Update(ctx, seat); err != nil {
		return nil, err
	}
	return seat, nil
}

func (s *Service) DeleteSeat(ctx context.Context, id int64) error {
	if _, err := s.seats.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeatNotFound
		}
		return err
	}
	return s.seats.Delete(ctx, id)
}

// EffectiveStatus computes the display status from the stored one and
// whether a confirmed reservation covers the current instant.
func EffectiveStatus(stored domain.SeatStatus, activeNow bool) domain.SeatStatus {
	if stored == domain.SeatMaintenance || stored == domain.SeatOccupied {
		return stored
	}
	if activeNow {
		return domain.SeatReserved
	}
	return stored
}

func toRoomResponse(row repository.RoomWithSeats) RoomResponse {
	return RoomResponse{
		ID:             row.Room.ID,
		Name:           row.Room.Name,
		Description:    row.Room.Description,
		Capacity:       row.Room.Capacity,
		IsAvailable:    row.Room.IsAvailable,
		TotalSeats:     row.TotalSeats,
		AvailableSeats: row.AvailableSeats,
		CreatedAt:      row.Room.CreatedAt,
		UpdatedAt:      row.Room.UpdatedAt,
	}
}
