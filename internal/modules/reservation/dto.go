package reservation

// CreateReservationRequest accepts either an explicit RFC3339 pair in
// startTime/endTime, or a date ("2006-01-02") with "15:04" clock values.
type CreateReservationRequest struct {
	SeatID    int64  `json:"seatId" binding:"required"`
	Date      string `json:"date"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Type      string `json:"type"`
}
