package repository

import (
	"context"
	"time"

	"coworkly/internal/domain"

	"gorm.io/gorm"
)

type SeatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

type seatModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	RoomID    int64     `gorm:"column:room_id;uniqueIndex:idx_seats_room_number"`
	Number    int       `gorm:"column:number;uniqueIndex:idx_seats_room_number"`
	PosX      float64   `gorm:"column:pos_x"`
	PosY      float64   `gorm:"column:pos_y"`
	Status    string    `gorm:"column:status;default:AVAILABLE"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (seatModel) TableName() string { return "seats" }

func toDomainSeat(m seatModel) *domain.Seat {
	return &domain.Seat{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Number:    m.Number,
		PosX:      m.PosX,
		PosY:      m.PosY,
		Status:    domain.SeatStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toSeatModel(s *domain.Seat) seatModel {
	return seatModel{
		ID:        s.ID,
		RoomID:    s.RoomID,
		Number:    s.Number,
		PosX:      s.PosX,
		PosY:      s.PosY,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *SeatRepository) DB() *gorm.DB { return r.db }

func (r *SeatRepository) Create(ctx context.Context, s *domain.Seat) error {
	m := toSeatModel(s)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSeat(m)
	return nil
}

func (r *SeatRepository) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	var m seatModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSeat(m), nil
}

// List returns seats ordered by number, optionally scoped to one room.
func (r *SeatRepository) List(ctx context.Context, roomID *int64) ([]domain.Seat, error) {
	q := r.db.WithContext(ctx).Model(&seatModel{})
	if roomID != nil {
		q = q.Where("room_id = ?", *roomID)
	}

	var models []seatModel
	if tx := q.Order("number ASC").Find(&models); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Seat, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSeat(m))
	}
	return out, nil
}

func (r *SeatRepository) Update(ctx context.Context, s *domain.Seat) error {
	m := toSeatModel(s)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *SeatRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("seat_id = ?", id).Delete(&reservationModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&seatModel{}, id).Error
	})
}
