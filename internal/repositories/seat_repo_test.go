package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newSeatMock(t *testing.T) (SeatRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return SeatRepository{DB: db}, mock, func() { db.Close() }
}

func TestAllocateSeatsSkipsTakenNumbers(t *testing.T) {
	repo, mock, done := newSeatMock(t)
	defer done()

	mock.ExpectQuery("SELECT seat_number FROM trip_seats").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(1).AddRow(3))
	mock.ExpectExec("INSERT INTO trip_seats").
		WithArgs(int64(1), 2, "online").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO trip_seats").
		WithArgs(int64(1), 4, "online").
		WillReturnResult(sqlmock.NewResult(11, 1))

	numbers, err := repo.AllocateSeats(1, 2, 5, "online")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(numbers) != 2 || numbers[0] != 2 || numbers[1] != 4 {
		t.Fatalf("expected lowest free numbers [2 4], got %v", numbers)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAllocateSeatsOverflowRecordsUnnumberedHolds(t *testing.T) {
	repo, mock, done := newSeatMock(t)
	defer done()

	// All numbers taken (possible after a swap to a smaller layout):
	// the holds are still recorded, just without a seat number.
	mock.ExpectQuery("SELECT seat_number FROM trip_seats").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(1).AddRow(2).AddRow(3))
	mock.ExpectExec("INSERT INTO trip_seats").
		WithArgs(int64(1), "manual").
		WillReturnResult(sqlmock.NewResult(20, 1))
	mock.ExpectExec("INSERT INTO trip_seats").
		WithArgs(int64(1), "manual").
		WillReturnResult(sqlmock.NewResult(21, 1))

	numbers, err := repo.AllocateSeats(1, 2, 3, "manual")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(numbers) != 0 {
		t.Fatalf("no numbers available, got %v", numbers)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCountHeldSeats(t *testing.T) {
	repo, mock, done := newSeatMock(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT(.+) FROM trip_seats").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))

	n, err := repo.CountHeldSeats(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 holds, got %d", n)
	}
}

func TestReleaseSeatsRemovesNewestRows(t *testing.T) {
	repo, mock, done := newSeatMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM trip_seats").
		WithArgs(int64(7), 2).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.ReleaseSeats(7, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClearSeatNumbersKeepsHolds(t *testing.T) {
	repo, mock, done := newSeatMock(t)
	defer done()

	mock.ExpectExec("UPDATE trip_seats SET seat_number = NULL").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	if err := repo.ClearSeatNumbers(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
