package services

import (
	"fmt"

	"inventory/internal/domain"
	"inventory/internal/domain/models"
	"inventory/internal/repositories"
	"inventory/internal/utils"
)

const (
	ChannelOnline = "online"
	ChannelManual = "manual"
)

// SaleResult is returned to both channels on a successful sale.
type SaleResult struct {
	SeatNumbers  []int `json:"seatNumbers"`
	NewAvailable int   `json:"newAvailable"`
}

// CancelResult reports the released state.
type CancelResult struct {
	NewAvailable int `json:"newAvailable"`
}

// SalesService routes sell/cancel requests from the two channels through
// channel-specific gates onto the same version-guarded mutation path. The
// function fields are seams for tests and for the external seat-map and
// notification collaborators; left nil they fall back to the repositories.
type SalesService struct {
	Ledger      TripLedger
	CompanyRepo repositories.CompanyRepository
	SeatRepo    repositories.SeatRepository

	CompanyAutoOff func(companyID int64) (bool, error)
	AllocateSeats  func(tripID int64, count, totalSlots int, channel string) ([]int, error)
	ReleaseSeats   func(tripID int64, count int) error
	Notify         func(t models.Trip)
}

func (s SalesService) companyAutoOff(companyID int64) (bool, error) {
	if s.CompanyAutoOff != nil {
		return s.CompanyAutoOff(companyID)
	}
	return s.CompanyRepo.AutoHaltDisabled(companyID)
}

func (s SalesService) allocateSeats(tripID int64, count, totalSlots int, channel string) ([]int, error) {
	if s.AllocateSeats != nil {
		return s.AllocateSeats(tripID, count, totalSlots, channel)
	}
	return s.SeatRepo.AllocateSeats(tripID, count, totalSlots, channel)
}

func (s SalesService) releaseSeats(tripID int64, count int) error {
	if s.ReleaseSeats != nil {
		return s.ReleaseSeats(tripID, count)
	}
	return s.SeatRepo.ReleaseSeats(tripID, count)
}

// SellOnline is the self-service channel: gated by lifecycle state, the
// booking halt, and raw capacity.
func (s SalesService) SellOnline(tripID int64, seats int) (SaleResult, error) {
	return s.sell(tripID, seats, ChannelOnline)
}

// SellManual is the staff channel: gated by lifecycle state and raw
// capacity only. The booking halt is channel-local to online sales and is
// deliberately never consulted here.
func (s SalesService) SellManual(tripID int64, seats int) (SaleResult, error) {
	return s.sell(tripID, seats, ChannelManual)
}

func (s SalesService) sell(tripID int64, seats int, channel string) (SaleResult, error) {
	if seats <= 0 {
		return SaleResult{}, domain.ValidationError{Field: "seat_count", Msg: "harus lebih dari nol"}
	}

	var alert bool
	t, err := s.Ledger.Mutate(tripID, func(t *models.Trip) error {
		alert = false

		if channel == ChannelOnline {
			if !t.Status.CanSellOnline() {
				return domain.TerminalStateError{Status: string(t.Status)}
			}
			if t.BookingHalted {
				return domain.HaltedError{TripID: t.ID}
			}
		} else if !t.Status.CanSellManual() {
			return domain.TerminalStateError{Status: string(t.Status)}
		}

		if seats > t.AvailableSlots {
			return domain.CapacityError{Requested: seats, Available: t.AvailableSlots}
		}
		t.AvailableSlots -= seats

		// The sale itself may cross the threshold (or hit zero) and must
		// halt subsequent online sales, whichever channel sold.
		off, err := s.companyAutoOff(t.CompanyID)
		if err != nil {
			return err
		}
		alert = t.ApplyHalt(domain.EvaluateHalt(t.HaltInput(off)))
		return nil
	})
	if err != nil {
		return SaleResult{}, err
	}

	// Seat numbering is issued after the guarded decrement committed.
	// Best-effort: a numbering hiccup must not undo a committed sale.
	numbers, aerr := s.allocateSeats(tripID, seats, t.TotalSlots, channel)
	if aerr != nil {
		utils.LogEvent("", "sales", "allocate_seats_failed", aerr.Error())
		numbers = nil
	}

	if alert {
		utils.LogEvent("", "sales", "low_slot_alert",
			fmt.Sprintf("trip=%d available=%d", t.ID, t.AvailableSlots))
		if s.Notify != nil {
			s.Notify(t)
		}
	}

	return SaleResult{SeatNumbers: numbers, NewAvailable: t.AvailableSlots}, nil
}

// Cancel releases held seats from either channel. The increment clamps at
// TotalSlots and never clears the booking halt; un-halting is always an
// explicit staff resume.
func (s SalesService) Cancel(tripID int64, seats int) (CancelResult, error) {
	if seats <= 0 {
		return CancelResult{}, domain.ValidationError{Field: "seat_count", Msg: "harus lebih dari nol"}
	}

	released := 0
	var alert bool
	t, err := s.Ledger.Mutate(tripID, func(t *models.Trip) error {
		alert = false
		if t.Status.IsFrozen() {
			return domain.TerminalStateError{Status: string(t.Status)}
		}

		next := t.AvailableSlots + seats
		if next > t.TotalSlots {
			next = t.TotalSlots
		}
		released = next - t.AvailableSlots
		t.AvailableSlots = next

		off, err := s.companyAutoOff(t.CompanyID)
		if err != nil {
			return err
		}
		alert = t.ApplyHalt(domain.EvaluateHalt(t.HaltInput(off)))
		return nil
	})
	if err != nil {
		return CancelResult{}, err
	}

	if released > 0 {
		if rerr := s.releaseSeats(tripID, released); rerr != nil {
			utils.LogEvent("", "sales", "release_seats_failed", rerr.Error())
		}
	}
	if alert {
		utils.LogEvent("", "sales", "low_slot_alert",
			fmt.Sprintf("trip=%d available=%d", t.ID, t.AvailableSlots))
		if s.Notify != nil {
			s.Notify(t)
		}
	}

	return CancelResult{NewAvailable: t.AvailableSlots}, nil
}
