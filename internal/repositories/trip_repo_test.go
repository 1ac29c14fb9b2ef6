package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"inventory/internal/domain"
	"inventory/internal/domain/models"
)

var tripCols = []string{
	"id", "company_id", "vehicle_id", "driver_id", "conductor_id", "manual_ticketer_id",
	"status", "total_slots", "available_slots",
	"booking_halted", "auto_resume_enabled", "admin_resumed", "low_slot_alert_sent",
	"version", "departure_time",
}

func newTripMock(t *testing.T) (TripRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	return TripRepository{DB: db}, mock, func() { db.Close() }
}

func TestGetTripScansNullableColumns(t *testing.T) {
	repo, mock, done := newTripMock(t)
	defer done()

	dep := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id = ?").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(1, 3, nil, 7, nil, nil, "BOARDING", 40, 12, true, false, true, true, 9, dep))

	got, err := repo.GetTrip(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.VehicleID != nil || got.ConductorID != nil || got.ManualTicketerID != nil {
		t.Fatalf("NULL columns must stay nil, got %+v", got)
	}
	if got.DriverID == nil || *got.DriverID != 7 {
		t.Fatalf("driver not scanned: %+v", got.DriverID)
	}
	if got.Status != domain.StatusBoarding || got.Version != 9 {
		t.Fatalf("unexpected row: %+v", got)
	}
	if !got.BookingHalted || got.AutoResumeEnabled || !got.AdminResumed {
		t.Fatalf("flags scanned wrong: %+v", got)
	}
	if !got.DepartureTime.Equal(dep) {
		t.Fatalf("departure scanned wrong: %v", got.DepartureTime)
	}
}

func TestGetTripNotFound(t *testing.T) {
	repo, mock, done := newTripMock(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id = ?").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetTrip(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateTripIfVersionMatch(t *testing.T) {
	repo, mock, done := newTripMock(t)
	defer done()

	mock.ExpectExec("UPDATE trips").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateTripIfVersion(1, 4, models.Trip{Status: domain.StatusScheduled})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("matching version must commit")
	}
}

func TestUpdateTripIfVersionMismatch(t *testing.T) {
	repo, mock, done := newTripMock(t)
	defer done()

	// Zero rows affected: someone else bumped the version first.
	mock.ExpectExec("UPDATE trips").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateTripIfVersion(1, 4, models.Trip{Status: domain.StatusScheduled})
	if err != nil {
		t.Fatalf("mismatch is not an error: %v", err)
	}
	if ok {
		t.Fatalf("stale version must not commit")
	}
}

func TestInsertTripReturnsID(t *testing.T) {
	repo, mock, done := newTripMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(17, 1))

	id, err := repo.InsertTrip(models.Trip{
		CompanyID:      2,
		Status:         domain.StatusScheduled,
		TotalSlots:     40,
		AvailableSlots: 40,
		DepartureTime:  time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 17 {
		t.Fatalf("expected id 17, got %d", id)
	}
}

func TestDeleteTripMissing(t *testing.T) {
	repo, mock, done := newTripMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM trips").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteTrip(5); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListTripsFiltersByStatusAndCompany(t *testing.T) {
	repo, mock, done := newTripMock(t)
	defer done()

	dep := time.Date(2026, 9, 2, 6, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE").
		WithArgs("SCHEDULED", int64(3)).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(1, 3, nil, nil, nil, nil, "SCHEDULED", 40, 40, false, false, false, false, 0, dep).
			AddRow(2, 3, nil, nil, nil, nil, "SCHEDULED", 30, 8, true, false, false, true, 12, dep.Add(time.Hour)))

	trips, err := repo.ListTrips("scheduled", 3, domain.Pagination{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if trips[1].Version != 12 || !trips[1].BookingHalted {
		t.Fatalf("second row scanned wrong: %+v", trips[1])
	}
}
