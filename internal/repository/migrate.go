package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for all tables. On postgres it
// additionally installs an exclusion constraint so overlapping reservations
// for the same seat are rejected by the database itself, whatever path the
// insert took.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&seatModel{},
		&reservationModel{},
		&subscriptionModel{},
		&notificationModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if db.Migrator().HasConstraint(&reservationModel{}, "reservations_no_overlap") {
		return nil
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	return db.Exec(`
ALTER TABLE reservations
ADD CONSTRAINT reservations_no_overlap
EXCLUDE USING gist (
    seat_id WITH =,
    tstzrange(start_time, end_time, '[)') WITH &&
) WHERE (status <> 'CANCELLED')
`).Error
}
