package subscription

import "time"

type SubscribeRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// UsageResponse is the quota report for the caller's newest ACTIVE
// subscription. Without one, Plan is "NONE", Status "INACTIVE" and every
// counter zero.
type UsageResponse struct {
	Plan           string     `json:"plan"`
	Status         string     `json:"status"`
	UsedHours      int        `json:"usedHours"`
	TotalHours     int        `json:"totalHours"`
	RemainingHours int        `json:"remainingHours"`
	EndDate        *time.Time `json:"endDate,omitempty"`
}
