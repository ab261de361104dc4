package domain

import "time"

// SubscriptionStatus is the lifecycle state of a subscription as owned by the
// subscription backend. The gateway only reads it.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionInactive SubscriptionStatus = "INACTIVE"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
	SubscriptionPending  SubscriptionStatus = "PENDING"
)

// Valid reports whether the status is one of the known states.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionInactive, SubscriptionExpired, SubscriptionPending:
		return true
	}
	return false
}

// SubscriptionRecord mirrors the upstream subscription object.
type SubscriptionRecord struct {
	ID        string             `json:"id"`
	PlanID    string             `json:"planId"`
	Status    SubscriptionStatus `json:"status"`
	StartDate time.Time          `json:"startDate"`
	EndDate   time.Time          `json:"endDate"`
}

// Active reports whether the record grants access to subscription-gated
// content. Only an explicit ACTIVE status counts; everything else fails
// closed.
func (r SubscriptionRecord) Active() bool { return r.Status == SubscriptionActive }

// SubscriptionState is the tri-state answer to "does this user have an active
// subscription". StatePending is distinct from "no": it means the lookup has
// not resolved yet and the caller should re-evaluate once it has.
type SubscriptionState int

const (
	SubscriptionStatePending SubscriptionState = iota
	SubscriptionStateInactiveKnown
	SubscriptionStateActiveKnown
)

// KnownState converts a resolved boolean into the tri-state.
func KnownState(active bool) SubscriptionState {
	if active {
		return SubscriptionStateActiveKnown
	}
	return SubscriptionStateInactiveKnown
}

func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActiveKnown:
		return "active"
	case SubscriptionStateInactiveKnown:
		return "inactive"
	default:
		return "pending"
	}
}
