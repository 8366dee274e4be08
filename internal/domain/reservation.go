package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

type ReservationType string

const (
	ReservationHourly ReservationType = "HOURLY"
	ReservationDaily  ReservationType = "DAILY"
)

func ParseReservationType(s string) (ReservationType, bool) {
	switch ReservationType(s) {
	case ReservationHourly, ReservationDaily:
		return ReservationType(s), true
	}
	return "", false
}

// Reservation holds a half-open [StartTime, EndTime) interval. For a given
// seat no two reservations with status other than CANCELLED may overlap.
type Reservation struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"userId"`
	SeatID    int64             `json:"seatId"`
	StartTime time.Time         `json:"startTime"`
	EndTime   time.Time         `json:"endTime"`
	Type      ReservationType   `json:"type"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Active reports whether the reservation counts toward seat occupancy.
func (r *Reservation) Active() bool {
	return r.Status == ReservationConfirmed || r.Status == ReservationPending
}

// Covers reports whether the reservation interval contains the given instant.
func (r *Reservation) Covers(now time.Time) bool {
	return !now.Before(r.StartTime) && now.Before(r.EndTime)
}
