package domain

// TripStatus is the trip lifecycle state.
type TripStatus string

const (
	StatusScheduled TripStatus = "SCHEDULED"
	StatusBoarding  TripStatus = "BOARDING"
	StatusDeparted  TripStatus = "DEPARTED"
	StatusCompleted TripStatus = "COMPLETED"
	StatusCancelled TripStatus = "CANCELLED"
)

// allowedTransitions is the lifecycle graph. COMPLETED and CANCELLED are
// fully terminal; DEPARTED still flows to COMPLETED but is view-only for
// everything except that transition.
var allowedTransitions = map[TripStatus][]TripStatus{
	StatusScheduled: {StatusBoarding, StatusCancelled},
	StatusBoarding:  {StatusDeparted, StatusCancelled},
	StatusDeparted:  {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s TripStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed lifecycle move.
func CanTransition(from, to TripStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports fully terminal states.
func (s TripStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsFrozen reports states in which all non-status fields are view-only.
// Sales, cancellations, capacity edits and vehicle swaps are all rejected.
func (s TripStatus) IsFrozen() bool {
	return s == StatusDeparted || s.IsTerminal()
}

// ForcesHalt reports states that force bookingHalted regardless of any
// bypass flag.
func (s TripStatus) ForcesHalt() bool {
	return s.IsFrozen()
}

// CanSellOnline reports whether the online channel may sell in this state.
func (s TripStatus) CanSellOnline() bool {
	return s == StatusScheduled || s == StatusBoarding
}

// CanSellManual reports whether the manual channel may sell in this state.
// The gate is phrased as "not frozen" rather than a whitelist so both
// channels stay aligned if states are ever added.
func (s TripStatus) CanSellManual() bool {
	return !s.IsFrozen()
}
