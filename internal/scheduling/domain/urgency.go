// Package domain defines scheduling types: deadline urgency and focus slots.
package domain

// UrgencyLevel classifies how close a deadline is.
type UrgencyLevel string

const (
	UrgencyOverdue  UrgencyLevel = "overdue"
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyLow      UrgencyLevel = "low"
)

// UrgencyForDays maps days-until-deadline to an urgency level. Negative
// days mean the deadline has passed.
func UrgencyForDays(days int) UrgencyLevel {
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= 1:
		return UrgencyCritical
	case days <= 3:
		return UrgencyHigh
	case days <= 7:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// Score returns the urgency on a 1..10 scale for prioritization.
func (u UrgencyLevel) Score() float64 {
	switch u {
	case UrgencyOverdue:
		return 10
	case UrgencyCritical:
		return 9
	case UrgencyHigh:
		return 7
	case UrgencyMedium:
		return 5
	default:
		return 3
	}
}
