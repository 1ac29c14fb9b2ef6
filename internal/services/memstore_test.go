package services

import (
	"sync"
	"time"

	"inventory/internal/domain"
	"inventory/internal/domain/models"
)

// memStore is an in-memory TripStore with the same compare-and-swap
// semantics as the MySQL repository, guarded by a mutex so the race
// tests exercise real interleavings.
type memStore struct {
	mu    sync.Mutex
	trips map[int64]models.Trip
}

func newMemStore(trips ...models.Trip) *memStore {
	m := &memStore{trips: map[int64]models.Trip{}}
	for _, t := range trips {
		m.trips[t.ID] = t
	}
	return m
}

func (m *memStore) GetTrip(id int64) (models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, nil
}

func (m *memStore) UpdateTripIfVersion(id, expected int64, t models.Trip) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.trips[id]
	if !ok || cur.Version != expected {
		return false, nil
	}
	t.ID = id
	t.Version = expected + 1
	m.trips[id] = t
	return true, nil
}

func (m *memStore) get(id int64) models.Trip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trips[id]
}

func scheduledTrip(id int64, total, avail int) models.Trip {
	return models.Trip{
		ID:             id,
		CompanyID:      1,
		Status:         domain.StatusScheduled,
		TotalSlots:     total,
		AvailableSlots: avail,
		DepartureTime:  time.Now().Add(24 * time.Hour),
	}
}

// testSales wires a SalesService onto the in-memory store with all
// external collaborators stubbed out.
func testSales(store TripStore, companyOff bool) *SalesService {
	s := &SalesService{Ledger: TripLedger{Store: store}}
	s.CompanyAutoOff = func(int64) (bool, error) { return companyOff, nil }
	s.AllocateSeats = func(tripID int64, count, totalSlots int, channel string) ([]int, error) {
		nums := make([]int, count)
		for i := range nums {
			nums[i] = i + 1
		}
		return nums, nil
	}
	s.ReleaseSeats = func(int64, int) error { return nil }
	return s
}
