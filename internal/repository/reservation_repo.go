package repository

import (
	"context"
	"errors"
	"time"

	"coworkly/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgExclusionViolation is raised by the reservations_no_overlap constraint
// when two overlapping inserts race past the in-transaction check.
const pgExclusionViolation = "23P01"

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	SeatID    int64     `gorm:"column:seat_id;index"`
	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`
	Type      string    `gorm:"column:type;default:HOURLY"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	return &domain.Reservation{
		ID:        m.ID,
		UserID:    m.UserID,
		SeatID:    m.SeatID,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Type:      domain.ReservationType(m.Type),
		Status:    domain.ReservationStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:        r.ID,
		UserID:    r.UserID,
		SeatID:    r.SeatID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Type:      string(r.Type),
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *ReservationRepository) DB() *gorm.DB { return r.db }

// hasConflict reports whether any non-cancelled reservation on the seat
// overlaps the half-open [start, end) interval. Back-to-back intervals do
// not overlap. excludeID > 0 skips that row (re-checks during updates).
func hasConflict(tx *gorm.DB, seatID int64, start, end time.Time, excludeID int64) (bool, error) {
	q := `
SELECT COUNT(1)
FROM reservations
WHERE seat_id = ?
  AND status <> 'CANCELLED'
  AND start_time < ?
  AND end_time > ?
`
	args := []any{seatID, end, start}
	if excludeID > 0 {
		q += "  AND id <> ?\n"
		args = append(args, excludeID)
	}

	var cnt int64
	if res := tx.Raw(q, args...).Scan(&cnt); res.Error != nil {
		return false, res.Error
	}
	return cnt > 0, nil
}

// Create inserts the reservation and refreshes the seat's stored status in
// one transaction. The seat row is locked before the conflict check so that
// concurrent creates for the same seat serialize; of two racing overlapping
// requests exactly one commits, the other gets ErrConflict.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seatQ := tx
		if tx.Dialector.Name() == "postgres" {
			seatQ = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var seat seatModel
		if err := seatQ.First(&seat, res.SeatID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSeatNotFound
			}
			return err
		}

		conflict, err := hasConflict(tx, res.SeatID, res.StartTime, res.EndTime, 0)
		if err != nil {
			return err
		}
		if conflict {
			return ErrConflict
		}

		m := toReservationModel(res)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*res = *toDomainReservation(m)

		return refreshSeatStatus(tx, res.SeatID)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	if err := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&reservationModel{}, id).Error
}

// RefreshSeatStatus recomputes the seat's cached status from its active
// reservations: RESERVED when a CONFIRMED or PENDING reservation exists,
// AVAILABLE otherwise. Seats under MAINTENANCE are left alone; only an
// explicit admin update may set or clear that state.
func (r *ReservationRepository) RefreshSeatStatus(ctx context.Context, seatID int64) error {
	return refreshSeatStatus(r.db.WithContext(ctx), seatID)
}

func refreshSeatStatus(tx *gorm.DB, seatID int64) error {
	var cnt int64
	if err := tx.Model(&reservationModel{}).
		Where("seat_id = ? AND status IN ?", seatID, []string{
			string(domain.ReservationConfirmed),
			string(domain.ReservationPending),
		}).
		Count(&cnt).Error; err != nil {
		return err
	}

	status := domain.SeatAvailable
	if cnt > 0 {
		status = domain.SeatReserved
	}

	return tx.Model(&seatModel{}).
		Where("id = ? AND status <> ?", seatID, string(domain.SeatMaintenance)).
		Update("status", string(status)).Error
}

// ReservationFilter narrows List; nil fields are ignored.
type ReservationFilter struct {
	UserID *int64
	SeatID *int64
}

// ReservationDetails is a reservation row joined with its seat and room.
type ReservationDetails struct {
	ID         int64     `gorm:"column:id" json:"id"`
	UserID     int64     `gorm:"column:user_id" json:"userId"`
	SeatID     int64     `gorm:"column:seat_id" json:"seatId"`
	StartTime  time.Time `gorm:"column:start_time" json:"startTime"`
	EndTime    time.Time `gorm:"column:end_time" json:"endTime"`
	Type       string    `gorm:"column:type" json:"type"`
	Status     string    `gorm:"column:status" json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
	SeatNumber int       `gorm:"column:seat_number" json:"seatNumber"`
	RoomID     int64     `gorm:"column:room_id" json:"roomId"`
	RoomName   string    `gorm:"column:room_name" json:"roomName"`
}

func (r *ReservationRepository) ListDetailed(ctx context.Context, filter ReservationFilter) ([]ReservationDetails, error) {
	q := `
SELECT rs.id, rs.user_id, rs.seat_id, rs.start_time, rs.end_time, rs.type, rs.status, rs.created_at,
       s.number AS seat_number, rm.id AS room_id, rm.name AS room_name
FROM reservations rs
JOIN seats s ON s.id = rs.seat_id
JOIN rooms rm ON rm.id = s.room_id
`
	var (
		conds []string
		args  []any
	)
	if filter.UserID != nil {
		conds = append(conds, "rs.user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.SeatID != nil {
		conds = append(conds, "rs.seat_id = ?")
		args = append(args, *filter.SeatID)
	}
	for i, c := range conds {
		if i == 0 {
			q += "WHERE " + c + "\n"
		} else {
			q += "  AND " + c + "\n"
		}
	}
	q += "ORDER BY rs.start_time DESC"

	var rows []ReservationDetails
	if tx := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// ReservationWithUser is the admin overview row.
type ReservationWithUser struct {
	ReservationDetails
	UserName  string `gorm:"column:user_name" json:"userName"`
	UserEmail string `gorm:"column:user_email" json:"userEmail"`
}

func (r *ReservationRepository) ListRecentWithUsers(ctx context.Context, limit int) ([]ReservationWithUser, error) {
	q := `
SELECT rs.id, rs.user_id, rs.seat_id, rs.start_time, rs.end_time, rs.type, rs.status, rs.created_at,
       s.number AS seat_number, rm.id AS room_id, rm.name AS room_name,
       u.name AS user_name, u.email AS user_email
FROM reservations rs
JOIN seats s ON s.id = rs.seat_id
JOIN rooms rm ON rm.id = s.room_id
JOIN users u ON u.id = rs.user_id
ORDER BY rs.created_at DESC
LIMIT ?
`
	var rows []ReservationWithUser
	if tx := r.db.WithContext(ctx).Raw(q, limit).Scan(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// ListConfirmedWithin returns the user's CONFIRMED reservations whose whole
// interval lies inside [from, to]. Rows spanning a boundary are excluded.
func (r *ReservationRepository) ListConfirmedWithin(ctx context.Context, userID int64, from, to time.Time) ([]domain.Reservation, error) {
	var models []reservationModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND start_time >= ? AND end_time <= ?",
			userID, string(domain.ReservationConfirmed), from, to).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// ActiveSeatIDs returns the subset of seatIDs that have a CONFIRMED
// reservation covering now. Used by the read-time status projection.
func (r *ReservationRepository) ActiveSeatIDs(ctx context.Context, seatIDs []int64, now time.Time) (map[int64]bool, error) {
	if len(seatIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var ids []int64
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Distinct("seat_id").
		Where("seat_id IN ? AND status = ? AND start_time <= ? AND end_time > ?",
			seatIDs, string(domain.ReservationConfirmed), now, now).
		Pluck("seat_id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
