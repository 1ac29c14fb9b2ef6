package domain

// LowSlotThreshold is the available-seat count at or below which online
// sales are auto-halted. Fixed, not per-company: a 10-seat minibus halts
// online sales from the moment it is created.
const LowSlotThreshold = 10

// BypassReason tags one of the independent auto-halt bypasses. The three
// reasons are OR-ed, not ranked: any single one suppresses the threshold
// check. None of them survives a forced halt.
type BypassReason string

const (
	BypassCompanyGlobal BypassReason = "company_global"
	BypassAutoResume    BypassReason = "auto_resume"
	BypassAdminResumed  BypassReason = "admin_resumed"
)

// HaltInput is the ledger state the decision is a function of.
type HaltInput struct {
	Status            TripStatus
	AvailableSlots    int
	BookingHalted     bool
	AutoResumeEnabled bool
	AdminResumed      bool
	CompanyAutoOff    bool
}

// HaltDecision is the outcome of one evaluation.
type HaltDecision struct {
	Halt     bool
	Forced   bool
	Bypasses []BypassReason
}

// EvaluateHalt decides whether online selling must be blocked. Pure
// function of the snapshot; it never decides to clear a halt, clearing is
// always an explicit staff resume.
//
// A forced halt (terminal status or zero seats) wins over every bypass.
// Otherwise the threshold applies only when no bypass is active and the
// trip is not already halted.
func EvaluateHalt(in HaltInput) HaltDecision {
	d := HaltDecision{}

	if in.CompanyAutoOff {
		d.Bypasses = append(d.Bypasses, BypassCompanyGlobal)
	}
	if in.AutoResumeEnabled {
		d.Bypasses = append(d.Bypasses, BypassAutoResume)
	}
	if in.AdminResumed {
		d.Bypasses = append(d.Bypasses, BypassAdminResumed)
	}

	if in.Status.ForcesHalt() || in.AvailableSlots == 0 {
		d.Forced = true
		d.Halt = true
		return d
	}

	if in.AvailableSlots <= LowSlotThreshold && len(d.Bypasses) == 0 && !in.BookingHalted {
		d.Halt = true
	}
	return d
}
