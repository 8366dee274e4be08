package reservation

import (
	"context"
	"testing"
	"time"

	"coworkly/internal/domain"
	"coworkly/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	if res != nil {
		res.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) RefreshSeatStatus(ctx context.Context, seatID int64) error {
	args := m.Called(ctx, seatID)
	return args.Error(0)
}

func (m *MockReservationRepository) ListDetailed(ctx context.Context, filter repository.ReservationFilter) ([]repository.ReservationDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ReservationDetails), args.Error(1)
}

type MockSeatReader struct {
	mock.Mock
}

func (m *MockSeatReader) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seat), args.Error(1)
}

type MockRoomReader struct {
	mock.Mock
}

func (m *MockRoomReader) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Send(ctx context.Context, userID int64, typ domain.NotificationType, title, message string) error {
	args := m.Called(ctx, userID, typ, title, message)
	return args.Error(0)
}

func newCreateRequest() CreateReservationRequest {
	return CreateReservationRequest{
		SeatID:    5,
		StartTime: "2026-04-01T09:00:00Z",
		EndTime:   "2026-04-01T11:00:00Z",
	}
}

func TestCreate_Success(t *testing.T) {
	reservations := new(MockReservationRepository)
	seats := new(MockSeatReader)
	rooms := new(MockRoomReader)
	notifs := new(MockNotificationSender)
	svc := NewService(reservations, seats, rooms, notifs)

	seats.On("GetByID", mock.Anything, int64(5)).Return(&domain.Seat{ID: 5, RoomID: 2, Number: 3}, nil)
	reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	rooms.On("GetByID", mock.Anything, int64(2)).Return(&domain.Room{ID: 2, Name: "Open Space"}, nil)
	notifs.On("Send", mock.Anything, int64(7), domain.NotifReservationConfirmation,
		"Réservation confirmée",
		"Votre réservation pour Open Space (siège 3) a été confirmée.").Return(nil)

	res, err := svc.Create(context.Background(), 7, newCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, res.Status)
	assert.Equal(t, domain.ReservationHourly, res.Type)
	assert.Equal(t, int64(7), res.UserID)
	notifs.AssertExpectations(t)
}

func TestCreate_Conflict(t *testing.T) {
	reservations := new(MockReservationRepository)
	seats := new(MockSeatReader)
	svc := NewService(reservations, seats, new(MockRoomReader), nil)

	seats.On("GetByID", mock.Anything, int64(5)).Return(&domain.Seat{ID: 5, RoomID: 2, Number: 3}, nil)
	reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).
		Return(repository.ErrConflict)

	_, err := svc.Create(context.Background(), 7, newCreateRequest())

	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreate_UnknownSeat(t *testing.T) {
	seats := new(MockSeatReader)
	svc := NewService(new(MockReservationRepository), seats, new(MockRoomReader), nil)

	seats.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), 7, newCreateRequest())

	assert.ErrorIs(t, err, ErrInvalidSeat)
}

func TestCreate_RejectsInvertedInterval(t *testing.T) {
	svc := NewService(new(MockReservationRepository), new(MockSeatReader), new(MockRoomReader), nil)

	req := newCreateRequest()
	req.StartTime, req.EndTime = req.EndTime, req.StartTime

	_, err := svc.Create(context.Background(), 7, req)

	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCreate_RejectsZeroLengthInterval(t *testing.T) {
	svc := NewService(new(MockReservationRepository), new(MockSeatReader), new(MockRoomReader), nil)

	req := newCreateRequest()
	req.EndTime = req.StartTime

	_, err := svc.Create(context.Background(), 7, req)

	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCreate_ComposedDateForm(t *testing.T) {
	reservations := new(MockReservationRepository)
	seats := new(MockSeatReader)
	rooms := new(MockRoomReader)
	svc := NewService(reservations, seats, rooms, nil)

	seats.On("GetByID", mock.Anything, int64(5)).Return(&domain.Seat{ID: 5, RoomID: 2, Number: 3}, nil)
	reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)

	res, err := svc.Create(context.Background(), 7, CreateReservationRequest{
		SeatID:    5,
		Date:      "2026-04-01",
		StartTime: "09:00",
		EndTime:   "12:30",
		Type:      "DAILY",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationDaily, res.Type)
	assert.Equal(t, 3*time.Hour+30*time.Minute, res.EndTime.Sub(res.StartTime))
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	svc := NewService(new(MockReservationRepository), new(MockSeatReader), new(MockRoomReader), nil)

	req := newCreateRequest()
	req.Type = "WEEKLY"

	_, err := svc.Create(context.Background(), 7, req)

	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestCreate_NotificationFailureDoesNotFailBooking(t *testing.T) {
	reservations := new(MockReservationRepository)
	seats := new(MockSeatReader)
	rooms := new(MockRoomReader)
	notifs := new(MockNotificationSender)
	svc := NewService(reservations, seats, rooms, notifs)

	seats.On("GetByID", mock.Anything, int64(5)).Return(&domain.Seat{ID: 5, RoomID: 2, Number: 3}, nil)
	reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	rooms.On("GetByID", mock.Anything, int64(2)).Return(&domain.Room{ID: 2, Name: "Open Space"}, nil)
	notifs.On("Send", mock.Anything, int64(7), domain.NotifReservationConfirmation, mock.Anything, mock.Anything).
		Return(assert.AnError)

	_, err := svc.Create(context.Background(), 7, newCreateRequest())

	assert.NoError(t, err)
}

func TestCancel_OwnerSucceedsAndRefreshesSeat(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockSeatReader), new(MockRoomReader), nil)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(&domain.Reservation{
		ID: 1, UserID: 7, SeatID: 5, Status: domain.ReservationConfirmed,
	}, nil)
	reservations.On("UpdateStatus", mock.Anything, int64(1), domain.ReservationCancelled).
		Return(&domain.Reservation{ID: 1, UserID: 7, SeatID: 5, Status: domain.ReservationCancelled}, nil)
	reservations.On("RefreshSeatStatus", mock.Anything, int64(5)).Return(nil)

	res, err := svc.Cancel(context.Background(), 7, domain.RoleUser, 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, res.Status)
	reservations.AssertExpectations(t)
}

func TestCancel_StrangerForbidden(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockSeatReader), new(MockRoomReader), nil)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(&domain.Reservation{
		ID: 1, UserID: 7, SeatID: 5, Status: domain.ReservationConfirmed,
	}, nil)

	_, err := svc.Cancel(context.Background(), 8, domain.RoleUser, 1)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_AdminMayCancelAnyones(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockSeatReader), new(MockRoomReader), nil)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(&domain.Reservation{
		ID: 1, UserID: 7, SeatID: 5, Status: domain.ReservationConfirmed,
	}, nil)
	reservations.On("UpdateStatus", mock.Anything, int64(1), domain.ReservationCancelled).
		Return(&domain.Reservation{ID: 1, UserID: 7, SeatID: 5, Status: domain.ReservationCancelled}, nil)
	reservations.On("RefreshSeatStatus", mock.Anything, int64(5)).Return(nil)

	_, err := svc.Cancel(context.Background(), 99, domain.RoleAdmin, 1)

	assert.NoError(t, err)
}

func TestList_NonAdminScopedToOwnRows(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockSeatReader), new(MockRoomReader), nil)

	other := int64(123)
	self := int64(7)
	reservations.On("ListDetailed", mock.Anything, repository.ReservationFilter{UserID: &self}).
		Return([]repository.ReservationDetails{}, nil).
		Run(func(args mock.Arguments) {
			filter := args.Get(1).(repository.ReservationFilter)
			assert.Equal(t, self, *filter.UserID)
		})

	_, err := svc.List(context.Background(), self, domain.RoleUser, repository.ReservationFilter{UserID: &other})

	assert.NoError(t, err)
	reservations.AssertExpectations(t)
}
