package repositories

import (
	"database/sql"

	intconfig "inventory/internal/config"
	intdb "inventory/internal/db"
	"inventory/internal/domain"
)

// SeatRepository tracks per-hold seat-number assignments. Rows in
// trip_seats are the paid holds; seat_number may be NULL after a vehicle
// swap until the next issuance.
type SeatRepository struct {
	DB *sql.DB
}

func (r SeatRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CountHeldSeats counts paid holds for a trip, numbered or not.
func (r SeatRepository) CountHeldSeats(tripID int64) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM trip_seats WHERE trip_id = ?`, tripID).Scan(&n)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

// AllocateSeats issues the lowest free seat numbers in 1..totalSlots and
// records one hold row per seat. Called only after the version-guarded
// decrement committed, so the count can never exceed capacity.
func (r SeatRepository) AllocateSeats(tripID int64, count, totalSlots int, channel string) ([]int, error) {
	db := r.db()

	rows, err := db.Query(`SELECT seat_number FROM trip_seats WHERE trip_id = ? AND seat_number IS NOT NULL`, tripID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	taken := map[int]bool{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		taken[n] = true
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}

	numbers := make([]int, 0, count)
	for n := 1; n <= totalSlots && len(numbers) < count; n++ {
		if !taken[n] {
			numbers = append(numbers, n)
		}
	}

	for _, n := range numbers {
		if _, err := db.Exec(`
			INSERT INTO trip_seats (trip_id, seat_number, channel) VALUES (?, ?, ?)
		`, tripID, n, channel); err != nil {
			return nil, domain.InternalError{Err: err}
		}
	}
	// Swap leftovers (unnumbered holds after a vehicle change) get a row
	// without a number; the seat-map collaborator reissues on demand.
	for extra := count - len(numbers); extra > 0; extra-- {
		if _, err := db.Exec(`
			INSERT INTO trip_seats (trip_id, seat_number, channel) VALUES (?, NULL, ?)
		`, tripID, channel); err != nil {
			return nil, domain.InternalError{Err: err}
		}
	}
	return numbers, nil
}

// ReleaseSeats removes the newest count hold rows for a trip.
func (r SeatRepository) ReleaseSeats(tripID int64, count int) error {
	_, err := r.db().Exec(`
		DELETE FROM trip_seats WHERE trip_id = ? ORDER BY id DESC LIMIT ?
	`, tripID, count)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// ClearSeatNumbers wipes the numbering but keeps the holds. Run when the
// assigned vehicle changes: the new layout may be incompatible.
func (r SeatRepository) ClearSeatNumbers(tripID int64) error {
	_, err := r.db().Exec(`UPDATE trip_seats SET seat_number = NULL WHERE trip_id = ?`, tripID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r SeatRepository) EnsureSchema() error {
	db := r.db()
	if db == nil || intdb.HasTable(db, "trip_seats") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS trip_seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	trip_id BIGINT NOT NULL,
	seat_number INT NULL,
	channel VARCHAR(20) NOT NULL DEFAULT 'online',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_trip_seat (trip_id, seat_number),
	KEY idx_trip (trip_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}
