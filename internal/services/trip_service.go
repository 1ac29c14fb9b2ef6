package services

import (
	"fmt"
	"time"

	"inventory/internal/domain"
	"inventory/internal/domain/models"
	"inventory/internal/repositories"
	"inventory/internal/utils"
)

// TripService owns the administrative side of the ledger: creation, staff
// edits (version-checked), halt/resume, lifecycle transitions, and the
// capacity cascade when a vehicle is reassigned.
type TripService struct {
	Ledger      TripLedger
	TripRepo    repositories.TripRepository
	VehicleRepo repositories.VehicleRepository
	CompanyRepo repositories.CompanyRepository
	SeatRepo    repositories.SeatRepository

	FetchVehicle     func(id int64) (models.Vehicle, error)
	CountHeld        func(tripID int64) (int, error)
	ClearSeatNumbers func(tripID int64) error
	CompanyAutoOff   func(companyID int64) (bool, error)
	Notify           func(t models.Trip)
}

func (s TripService) fetchVehicle(id int64) (models.Vehicle, error) {
	if s.FetchVehicle != nil {
		return s.FetchVehicle(id)
	}
	return s.VehicleRepo.GetVehicle(id)
}

func (s TripService) countHeld(tripID int64) (int, error) {
	if s.CountHeld != nil {
		return s.CountHeld(tripID)
	}
	return s.SeatRepo.CountHeldSeats(tripID)
}

func (s TripService) clearSeatNumbers(tripID int64) error {
	if s.ClearSeatNumbers != nil {
		return s.ClearSeatNumbers(tripID)
	}
	return s.SeatRepo.ClearSeatNumbers(tripID)
}

func (s TripService) companyAutoOff(companyID int64) (bool, error) {
	if s.CompanyAutoOff != nil {
		return s.CompanyAutoOff(companyID)
	}
	return s.CompanyRepo.AutoHaltDisabled(companyID)
}

// TripCreateInput carries the creation form. TotalSlots applies only when
// no vehicle is attached; an attached vehicle's seat count is authoritative.
type TripCreateInput struct {
	CompanyID        int64
	VehicleID        *int64
	DriverID         *int64
	ConductorID      *int64
	ManualTicketerID *int64
	TotalSlots       int
	DepartureTime    time.Time
}

// CreateTrip starts a trip at SCHEDULED with a full ledger and version 0.
// The halt engine runs once right away: a vehicle at or under the
// threshold halts online sales from the start (intentional, see the
// fixed-threshold note on domain.LowSlotThreshold).
func (s TripService) CreateTrip(in TripCreateInput) (models.Trip, error) {
	if in.CompanyID <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "company_id", Msg: "wajib diisi"}
	}
	if in.DepartureTime.IsZero() {
		return models.Trip{}, domain.ValidationError{Field: "departure_time", Msg: "wajib diisi"}
	}

	total := in.TotalSlots
	if in.VehicleID != nil {
		v, err := s.fetchVehicle(*in.VehicleID)
		if err != nil {
			return models.Trip{}, err
		}
		total = v.TotalSeats
	}
	if total <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "total_slots", Msg: "harus lebih dari nol"}
	}

	t := models.Trip{
		CompanyID:        in.CompanyID,
		VehicleID:        in.VehicleID,
		DriverID:         in.DriverID,
		ConductorID:      in.ConductorID,
		ManualTicketerID: in.ManualTicketerID,
		Status:           domain.StatusScheduled,
		TotalSlots:       total,
		AvailableSlots:   total,
		Version:          0,
		DepartureTime:    in.DepartureTime,
	}

	off, err := s.companyAutoOff(t.CompanyID)
	if err != nil {
		return models.Trip{}, err
	}
	_ = t.ApplyHalt(domain.EvaluateHalt(t.HaltInput(off)))

	id, err := s.TripRepo.InsertTrip(t)
	if err != nil {
		return models.Trip{}, err
	}
	t.ID = id
	return t, nil
}

// GetSnapshot is the read path consumed by reporting and notification
// collaborators.
func (s TripService) GetSnapshot(tripID int64) (models.Trip, error) {
	return s.Ledger.Read(tripID)
}

func (s TripService) ListTrips(status string, companyID int64, p domain.Pagination) ([]models.Trip, error) {
	return s.TripRepo.ListTrips(status, companyID, p)
}

// UpdateTrip applies a staff form edit guarded by the version the form was
// rendered from. A mismatch surfaces as a conflict the caller must resolve
// by refreshing; nothing is retried on their behalf. A vehicle change in
// the same form runs the capacity cascade, and a missing vehicle aborts
// the whole update including unrelated fields.
func (s TripService) UpdateTrip(tripID, expectedVersion int64, patch models.TripUpdate) (models.Trip, error) {
	var newVehicle *models.Vehicle
	if patch.VehicleSet && patch.VehicleID != nil {
		v, err := s.fetchVehicle(*patch.VehicleID)
		if err != nil {
			return models.Trip{}, err
		}
		newVehicle = &v
	}

	vehicleChanged := false
	t, err := s.Ledger.MutateAt(tripID, expectedVersion, func(t *models.Trip) error {
		if t.Status.IsFrozen() {
			return domain.TerminalStateError{Status: string(t.Status)}
		}

		if patch.DriverID != nil {
			t.DriverID = patch.DriverID
		}
		if patch.ConductorID != nil {
			t.ConductorID = patch.ConductorID
		}
		if patch.ManualTicketerID != nil {
			t.ManualTicketerID = patch.ManualTicketerID
		}
		if patch.DepartureTime != nil {
			t.DepartureTime = *patch.DepartureTime
		}
		if patch.AutoResumeEnabled != nil {
			t.AutoResumeEnabled = *patch.AutoResumeEnabled
		}

		if patch.VehicleSet {
			if err := s.applyVehicle(t, patch.VehicleID, newVehicle); err != nil {
				return err
			}
			vehicleChanged = patch.VehicleID != nil
		}

		off, err := s.companyAutoOff(t.CompanyID)
		if err != nil {
			return err
		}
		_ = t.ApplyHalt(domain.EvaluateHalt(t.HaltInput(off)))
		return nil
	})
	if err != nil {
		return models.Trip{}, err
	}

	if vehicleChanged {
		if cerr := s.clearSeatNumbers(tripID); cerr != nil {
			utils.LogEvent("", "trips", "clear_seat_numbers_failed", cerr.Error())
		}
	}
	return t, nil
}

// ReassignVehicle swaps (or detaches) the trip's vehicle and recomputes
// capacity from the new seat count minus the paid holds. Recomputation is
// idempotent, so this rides the bounded-retry path.
func (s TripService) ReassignVehicle(tripID int64, vehicleID *int64) (models.Trip, error) {
	var newVehicle *models.Vehicle
	if vehicleID != nil {
		v, err := s.fetchVehicle(*vehicleID)
		if err != nil {
			return models.Trip{}, err
		}
		newVehicle = &v
	}

	var alert bool
	t, err := s.Ledger.Mutate(tripID, func(t *models.Trip) error {
		alert = false
		if t.Status.IsFrozen() {
			return domain.TerminalStateError{Status: string(t.Status)}
		}

		if err := s.applyVehicle(t, vehicleID, newVehicle); err != nil {
			return err
		}

		off, err := s.companyAutoOff(t.CompanyID)
		if err != nil {
			return err
		}
		alert = t.ApplyHalt(domain.EvaluateHalt(t.HaltInput(off)))
		return nil
	})
	if err != nil {
		return models.Trip{}, err
	}

	if vehicleID != nil {
		if cerr := s.clearSeatNumbers(tripID); cerr != nil {
			utils.LogEvent("", "trips", "clear_seat_numbers_failed", cerr.Error())
		}
	}
	if alert {
		utils.LogEvent("", "trips", "low_slot_alert",
			fmt.Sprintf("trip=%d available=%d", t.ID, t.AvailableSlots))
		if s.Notify != nil {
			s.Notify(t)
		}
	}
	return t, nil
}

// applyVehicle folds a vehicle change into the snapshot. Detaching leaves
// capacity untouched (capacity review becomes a manual staff action);
// attaching recomputes from the vehicle's seat count minus paid holds,
// re-counted inside the guarded closure so a racing sale that forces a
// retry is reflected.
func (s TripService) applyVehicle(t *models.Trip, vehicleID *int64, v *models.Vehicle) error {
	t.VehicleID = vehicleID
	if vehicleID == nil || v == nil {
		return nil
	}

	held, err := s.countHeld(t.ID)
	if err != nil {
		return err
	}
	t.TotalSlots = v.TotalSeats
	t.AvailableSlots = v.TotalSeats - held
	if t.AvailableSlots < 0 {
		t.AvailableSlots = 0
	}
	return nil
}

// SetHalt is the staff switch for the online channel. Halting clears the
// one-time resume bypass; resuming sets it, optionally together with the
// persistent bypass, and starts a fresh alert episode. A forced halt
// (terminal state, zero seats) immediately re-asserts itself through the
// engine, so resuming a sold-out trip is a no-op by construction.
func (s TripService) SetHalt(tripID int64, halted, persistent bool) (models.Trip, error) {
	return s.Ledger.Mutate(tripID, func(t *models.Trip) error {
		if t.Status.IsFrozen() {
			return domain.TerminalStateError{Status: string(t.Status)}
		}

		if halted {
			t.BookingHalted = true
			t.AdminResumed = false
			return nil
		}

		t.BookingHalted = false
		t.AdminResumed = true
		t.LowSlotAlertSent = false
		if persistent {
			t.AutoResumeEnabled = true
		}

		off, err := s.companyAutoOff(t.CompanyID)
		if err != nil {
			return err
		}
		_ = t.ApplyHalt(domain.EvaluateHalt(t.HaltInput(off)))
		return nil
	})
}

// TransitionStatus moves the trip through its lifecycle. Entering a frozen
// state forces the booking halt past every bypass and drops the one-time
// resume; the forced value is never reverted by later bypass changes.
func (s TripService) TransitionStatus(tripID int64, next domain.TripStatus) (models.Trip, error) {
	if !domain.ValidStatus(next) {
		return models.Trip{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}

	return s.Ledger.Mutate(tripID, func(t *models.Trip) error {
		if !domain.CanTransition(t.Status, next) {
			return domain.ConflictError{
				Resource: "trip",
				Msg:      fmt.Sprintf("transisi status %s -> %s tidak diizinkan", t.Status, next),
			}
		}
		t.Status = next
		if next.ForcesHalt() {
			t.BookingHalted = true
			t.AdminResumed = false
		}
		return nil
	})
}

// DeleteTrip removes a trip that has no paid holds.
func (s TripService) DeleteTrip(tripID int64) error {
	t, err := s.Ledger.Read(tripID)
	if err != nil {
		return err
	}
	if t.HeldSeats() > 0 {
		return domain.ConflictError{Resource: "trip", Msg: "trip masih memiliki kursi terjual"}
	}
	return s.TripRepo.DeleteTrip(tripID)
}
