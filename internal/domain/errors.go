package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConflictError is returned when a version-guarded write loses the race.
// Expected is the version the writer read, Current what the row holds now;
// the caller must refresh and resubmit, never blindly retry the same delta.
type ConflictError struct {
	Resource string
	Expected int64
	Current  int64
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Expected != 0 || e.Current != 0:
		return fmt.Sprintf("%s version conflict: expected %d, current %d", e.Resource, e.Expected, e.Current)
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// CapacityError rejects a sale whose seat count exceeds what is available
// at commit time. Hard error: no clamping, no partial fill.
type CapacityError struct {
	Requested int
	Available int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("kursi tidak cukup: diminta %d, tersisa %d", e.Requested, e.Available)
}

// HaltedError rejects an online sale while the booking halt is active.
// The manual channel never sees this error.
type HaltedError struct {
	TripID int64
}

func (e HaltedError) Error() string {
	return "penjualan online sedang dihentikan untuk trip ini"
}

// TerminalStateError rejects mutations on trips that are view-only
// (departed, completed, or cancelled).
type TerminalStateError struct {
	Status string
}

func (e TerminalStateError) Error() string {
	if e.Status == "" {
		return "trip sudah tidak bisa diubah"
	}
	return fmt.Sprintf("trip berstatus %s dan tidak bisa diubah", e.Status)
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsCapacity(err error) bool {
	var target CapacityError
	return errors.As(err, &target)
}

func IsHalted(err error) bool {
	var target HaltedError
	return errors.As(err, &target)
}

func IsTerminalState(err error) bool {
	var target TerminalStateError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
