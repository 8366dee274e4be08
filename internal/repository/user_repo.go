package repository

import (
	"context"
	"time"

	"coworkly/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Password     string    `gorm:"column:password"`
	Phone        string    `gorm:"column:phone"`
	Role         string    `gorm:"column:role;default:USER"`
	RefreshToken *string   `gorm:"column:refresh_token"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		Phone:        m.Phone,
		Role:         domain.Role(m.Role),
		RefreshToken: m.RefreshToken,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Password:     u.PasswordHash,
		Phone:        u.Phone,
		Role:         string(u.Role),
		RefreshToken: u.RefreshToken,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if tx := r.db.WithContext(ctx).Where("email = ?", email).First(&m); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("email = ?", email).Count(&cnt)
	return cnt > 0, tx.Error
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Save(&m).Error
}

// SetRefreshToken stores (or clears, with nil) the user's refresh token.
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID int64, token *string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("refresh_token", token).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role domain.Role) (*domain.User, error) {
	if err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("role", string(role)).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, userID)
}

// Delete hard-removes the user together with their reservations,
// subscriptions and notifications.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&reservationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&subscriptionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&notificationModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&userModel{}, userID).Error
	})
}

// UserWithCounts is the admin user-list row.
type UserWithCounts struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	CreatedAt         time.Time `json:"createdAt"`
	ReservationCount  int       `json:"reservationCount"`
	SubscriptionCount int       `json:"subscriptionCount"`
}

func (r *UserRepository) ListWithCounts(ctx context.Context) ([]UserWithCounts, error) {
	q := `
SELECT u.id, u.name, u.email, u.role, u.created_at,
       (SELECT COUNT(1) FROM reservations rs WHERE rs.user_id = u.id)  AS reservation_count,
       (SELECT COUNT(1) FROM subscriptions sb WHERE sb.user_id = u.id) AS subscription_count
FROM users u
ORDER BY u.created_at DESC
`
	var rows []UserWithCounts
	if tx := r.db.WithContext(ctx).Raw(q).Scan(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
