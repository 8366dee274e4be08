package repository

import (
	"context"
	"time"

	"coworkly/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Capacity    int       `gorm:"column:capacity"`
	IsAvailable bool      `gorm:"column:is_available;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Capacity:    m.Capacity,
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *RoomRepository) DB() *gorm.DB { return r.db }

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&seatModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&roomModel{}, id).Error
	})
}

// RoomSeatCounts aggregates stored seat statuses per room.
type RoomSeatCounts struct {
	RoomID         int64
	TotalSeats     int
	AvailableSeats int
}

type roomCountRow struct {
	ID             int64     `gorm:"column:id"`
	Name           string    `gorm:"column:name"`
	Description    string    `gorm:"column:description"`
	Capacity       int       `gorm:"column:capacity"`
	IsAvailable    bool      `gorm:"column:is_available"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
	TotalSeats     int       `gorm:"column:total_seats"`
	AvailableSeats int       `gorm:"column:available_seats"`
}

// RoomWithSeats pairs a room with its stored-status seat counters.
type RoomWithSeats struct {
	Room           domain.Room
	TotalSeats     int
	AvailableSeats int
}

const roomWithSeatsQuery = `
SELECT r.id, r.name, r.description, r.capacity, r.is_available, r.created_at, r.updated_at,
       COUNT(s.id) AS total_seats,
       COALESCE(SUM(CASE WHEN s.status = 'AVAILABLE' THEN 1 ELSE 0 END), 0) AS available_seats
FROM rooms r
LEFT JOIN seats s ON s.room_id = r.id
`

func (r *RoomRepository) ListWithSeats(ctx context.Context) ([]RoomWithSeats, error) {
	q := roomWithSeatsQuery + `GROUP BY r.id, r.name, r.description, r.capacity, r.is_available, r.created_at, r.updated_at
ORDER BY r.name ASC`
	var rows []roomCountRow
	if tx := r.db.WithContext(ctx).Raw(q).Scan(&rows); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]RoomWithSeats, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRoomWithSeats(row))
	}
	return out, nil
}

func (r *RoomRepository) GetWithSeats(ctx context.Context, id int64) (*RoomWithSeats, error) {
	q := roomWithSeatsQuery + `WHERE r.id = ?
GROUP BY r.id, r.name, r.description, r.capacity, r.is_available, r.created_at, r.updated_at`
	var rows []roomCountRow
	if tx := r.db.WithContext(ctx).Raw(q, id).Scan(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	out := toRoomWithSeats(rows[0])
	return &out, nil
}

func toRoomWithSeats(row roomCountRow) RoomWithSeats {
	return RoomWithSeats{
		Room: domain.Room{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Capacity:    row.Capacity,
			IsAvailable: row.IsAvailable,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		},
		TotalSeats:     row.TotalSeats,
		AvailableSeats: row.AvailableSeats,
	}
}
