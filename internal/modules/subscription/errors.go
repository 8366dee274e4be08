package subscription

import "errors"

var (
	ErrInvalidPlan      = errors.New("invalid subscription plan")
	ErrAlreadyRequested = errors.New("an active or pending subscription already exists")
	ErrNotFound         = errors.New("subscription not found")
	ErrNotPending       = errors.New("only pending subscriptions can be approved")
	ErrForbidden        = errors.New("not allowed")
)
