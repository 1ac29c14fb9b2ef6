package services

import (
	"inventory/internal/domain"
	"inventory/internal/domain/models"
	"inventory/internal/repositories"
)

// TripStore is the persistence contract the optimistic write protocol
// needs: a snapshot read and a version-guarded write. Implemented by
// repositories.TripRepository; tests use an in-memory store.
type TripStore interface {
	GetTrip(id int64) (models.Trip, error)
	UpdateTripIfVersion(id, expected int64, t models.Trip) (bool, error)
}

// mutateRetries bounds system-initiated recomputation. Each attempt
// re-reads and recomputes from scratch, so retrying is safe; a stale delta
// is never replayed.
const mutateRetries = 3

// TripLedger wraps every ledger mutation in a compare-and-swap on the
// version token. Writers never hold a lock; whoever commits first wins and
// everyone else re-derives from the new state.
type TripLedger struct {
	Store TripStore
}

func (l TripLedger) store() TripStore {
	if l.Store != nil {
		return l.Store
	}
	return repositories.TripRepository{}
}

// Read returns the current snapshot including its version token.
func (l TripLedger) Read(id int64) (models.Trip, error) {
	return l.store().GetTrip(id)
}

// Mutate is the system path: read, recompute via fn, conditional write,
// bounded retry on conflict. fn must be a pure function of the snapshot it
// receives; it runs once per attempt.
func (l TripLedger) Mutate(id int64, fn func(*models.Trip) error) (models.Trip, error) {
	s := l.store()

	var lastExpected int64
	for attempt := 0; attempt < mutateRetries; attempt++ {
		t, err := s.GetTrip(id)
		if err != nil {
			return models.Trip{}, err
		}
		expected := t.Version
		lastExpected = expected

		if err := fn(&t); err != nil {
			return models.Trip{}, err
		}

		ok, err := s.UpdateTripIfVersion(id, expected, t)
		if err != nil {
			return models.Trip{}, err
		}
		if ok {
			t.Version = expected + 1
			return t, nil
		}
	}

	current, err := s.GetTrip(id)
	if err != nil {
		return models.Trip{}, err
	}
	return models.Trip{}, domain.ConflictError{
		Resource: "trip",
		Expected: lastExpected,
		Current:  current.Version,
	}
}

// MutateAt is the user path: the caller presents the version it showed the
// user and a mismatch is surfaced immediately, because the edit may be
// stale relative to a sale that landed in between.
func (l TripLedger) MutateAt(id, expected int64, fn func(*models.Trip) error) (models.Trip, error) {
	s := l.store()

	t, err := s.GetTrip(id)
	if err != nil {
		return models.Trip{}, err
	}
	if t.Version != expected {
		return models.Trip{}, domain.ConflictError{Resource: "trip", Expected: expected, Current: t.Version}
	}

	if err := fn(&t); err != nil {
		return models.Trip{}, err
	}

	ok, err := s.UpdateTripIfVersion(id, expected, t)
	if err != nil {
		return models.Trip{}, err
	}
	if !ok {
		current, gerr := s.GetTrip(id)
		if gerr != nil {
			return models.Trip{}, gerr
		}
		return models.Trip{}, domain.ConflictError{Resource: "trip", Expected: expected, Current: current.Version}
	}
	t.Version = expected + 1
	return t, nil
}
