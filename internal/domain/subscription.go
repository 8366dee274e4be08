package domain

import "time"

type SubscriptionPlan string

const (
	PlanMonthly    SubscriptionPlan = "MONTHLY"
	PlanQuarterly  SubscriptionPlan = "QUARTERLY"
	PlanSemiAnnual SubscriptionPlan = "SEMI_ANNUAL"
)

func ParseSubscriptionPlan(s string) (SubscriptionPlan, bool) {
	switch SubscriptionPlan(s) {
	case PlanMonthly, PlanQuarterly, PlanSemiAnnual:
		return SubscriptionPlan(s), true
	}
	return "", false
}

// Months returns the plan duration in calendar months.
func (p SubscriptionPlan) Months() int {
	switch p {
	case PlanMonthly:
		return 1
	case PlanQuarterly:
		return 3
	case PlanSemiAnnual:
		return 6
	}
	return 0
}

// QuotaHours returns the hour allowance measured per subscription period.
// Unknown plans get no allowance.
func (p SubscriptionPlan) QuotaHours() int {
	switch p {
	case PlanMonthly:
		return 40
	case PlanQuarterly:
		return 120
	case PlanSemiAnnual:
		return 250
	}
	return 0
}

type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "PENDING"
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionSuspended SubscriptionStatus = "SUSPENDED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription starts PENDING with no dates; approval sets the window and
// the approver. At most one subscription per user may be ACTIVE or PENDING.
type Subscription struct {
	ID         int64              `json:"id"`
	UserID     int64              `json:"userId"`
	Plan       SubscriptionPlan   `json:"plan"`
	Status     SubscriptionStatus `json:"status"`
	StartDate  *time.Time         `json:"startDate,omitempty"`
	EndDate    *time.Time         `json:"endDate,omitempty"`
	ApprovedBy *int64             `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time         `json:"approvedAt,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}
