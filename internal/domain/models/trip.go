package models

import (
	"time"

	"inventory/internal/domain"
)

// Trip is the seat-count ledger row. AvailableSlots and the halt flags are
// only ever changed through a version-guarded write; Version increments by
// exactly one on every accepted mutation.
type Trip struct {
	ID               int64
	CompanyID        int64
	VehicleID        *int64
	DriverID         *int64
	ConductorID      *int64
	ManualTicketerID *int64

	Status         domain.TripStatus
	TotalSlots     int
	AvailableSlots int

	BookingHalted     bool
	AutoResumeEnabled bool
	AdminResumed      bool
	LowSlotAlertSent  bool

	Version       int64
	DepartureTime time.Time
}

// HeldSeats is the number of currently paid holds implied by the counters.
func (t Trip) HeldSeats() int {
	return t.TotalSlots - t.AvailableSlots
}

// HaltInput builds the pure engine input from this row plus the company
// policy flag.
func (t Trip) HaltInput(companyAutoOff bool) domain.HaltInput {
	return domain.HaltInput{
		Status:            t.Status,
		AvailableSlots:    t.AvailableSlots,
		BookingHalted:     t.BookingHalted,
		AutoResumeEnabled: t.AutoResumeEnabled,
		AdminResumed:      t.AdminResumed,
		CompanyAutoOff:    companyAutoOff,
	}
}

// ApplyHalt folds a decision into the flags. Returns true when the
// low-slot alert must fire; the marker keeps it to once per halt episode
// even though setting BookingHalted itself is idempotent.
func (t *Trip) ApplyHalt(d domain.HaltDecision) bool {
	if !d.Halt {
		return false
	}
	t.BookingHalted = true
	if t.LowSlotAlertSent {
		return false
	}
	t.LowSlotAlertSent = true
	return true
}

// TripUpdate supports PATCH-style staff edits via key presence. VehicleSet
// distinguishes "leave the vehicle alone" from "set it to VehicleID",
// which may be nil to detach.
type TripUpdate struct {
	DriverID          *int64
	ConductorID       *int64
	ManualTicketerID  *int64
	DepartureTime     *time.Time
	AutoResumeEnabled *bool
	VehicleSet        bool
	VehicleID         *int64
}
