package repositories

import (
	"database/sql"
	"strings"

	intconfig "inventory/internal/config"
	intdb "inventory/internal/db"
	"inventory/internal/domain"
	"inventory/internal/domain/models"
)

// TripRepository persists the trip ledger. Every write goes through
// UpdateTripIfVersion; there is no unconditional update path.
type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, company_id, vehicle_id, driver_id, conductor_id, manual_ticketer_id,
	status, total_slots, available_slots,
	booking_halted, auto_resume_enabled, admin_resumed, low_slot_alert_sent,
	version, departure_time`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var (
		t                                     models.Trip
		vehicleID, driverID, conductorID, mtID sql.NullInt64
		status                                string
	)
	err := row.Scan(
		&t.ID, &t.CompanyID, &vehicleID, &driverID, &conductorID, &mtID,
		&status, &t.TotalSlots, &t.AvailableSlots,
		&t.BookingHalted, &t.AutoResumeEnabled, &t.AdminResumed, &t.LowSlotAlertSent,
		&t.Version, &t.DepartureTime,
	)
	if err != nil {
		return models.Trip{}, err
	}
	t.Status = domain.TripStatus(status)
	if vehicleID.Valid {
		v := vehicleID.Int64
		t.VehicleID = &v
	}
	if driverID.Valid {
		v := driverID.Int64
		t.DriverID = &v
	}
	if conductorID.Valid {
		v := conductorID.Int64
		t.ConductorID = &v
	}
	if mtID.Valid {
		v := mtID.Int64
		t.ManualTicketerID = &v
	}
	return t, nil
}

func (r TripRepository) GetTrip(id int64) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	return t, nil
}

func (r TripRepository) InsertTrip(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (company_id, vehicle_id, driver_id, conductor_id, manual_ticketer_id,
			status, total_slots, available_slots,
			booking_halted, auto_resume_enabled, admin_resumed, low_slot_alert_sent,
			version, departure_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.CompanyID, nullInt(t.VehicleID), nullInt(t.DriverID), nullInt(t.ConductorID), nullInt(t.ManualTicketerID),
		string(t.Status), t.TotalSlots, t.AvailableSlots,
		t.BookingHalted, t.AutoResumeEnabled, t.AdminResumed, t.LowSlotAlertSent,
		t.Version, t.DepartureTime,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// UpdateTripIfVersion is the conditional write at the heart of the ledger:
// the row is rewritten and its version bumped by one only when the version
// the writer read is still the one on the row. Returns false on mismatch
// (or missing row); the caller decides whether to re-read or give up.
func (r TripRepository) UpdateTripIfVersion(id, expected int64, t models.Trip) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE trips
		SET vehicle_id = ?, driver_id = ?, conductor_id = ?, manual_ticketer_id = ?,
			status = ?, total_slots = ?, available_slots = ?,
			booking_halted = ?, auto_resume_enabled = ?, admin_resumed = ?, low_slot_alert_sent = ?,
			departure_time = ?,
			version = version + 1
		WHERE id = ? AND version = ?
	`,
		nullInt(t.VehicleID), nullInt(t.DriverID), nullInt(t.ConductorID), nullInt(t.ManualTicketerID),
		string(t.Status), t.TotalSlots, t.AvailableSlots,
		t.BookingHalted, t.AutoResumeEnabled, t.AdminResumed, t.LowSlotAlertSent,
		t.DepartureTime,
		id, expected,
	)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return affected == 1, nil
}

func (r TripRepository) DeleteTrip(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// ListTrips returns trips filtered by status and/or company, newest first.
func (r TripRepository) ListTrips(status string, companyID int64, p domain.Pagination) ([]models.Trip, error) {
	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		where = append(where, "status = ?")
		args = append(args, strings.ToUpper(s))
	}
	if companyID > 0 {
		where = append(where, "company_id = ?")
		args = append(args, companyID)
	}

	query := `SELECT ` + tripColumns + ` FROM trips WHERE ` + strings.Join(where, " AND ") + ` ORDER BY departure_time ASC, id ASC`
	if p.Page > 0 && p.PageSize > 0 {
		limit := p.PageSize
		if limit > 200 {
			limit = 200
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, (p.Page-1)*limit)
	}

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// EnsureSchema creates the trips table when missing (dev bootstrap).
func (r TripRepository) EnsureSchema() error {
	db := r.db()
	if db == nil || intdb.HasTable(db, "trips") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS trips (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	company_id BIGINT NOT NULL,
	vehicle_id BIGINT NULL,
	driver_id BIGINT NULL,
	conductor_id BIGINT NULL,
	manual_ticketer_id BIGINT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'SCHEDULED',
	total_slots INT NOT NULL DEFAULT 0,
	available_slots INT NOT NULL DEFAULT 0,
	booking_halted TINYINT(1) NOT NULL DEFAULT 0,
	auto_resume_enabled TINYINT(1) NOT NULL DEFAULT 0,
	admin_resumed TINYINT(1) NOT NULL DEFAULT 0,
	low_slot_alert_sent TINYINT(1) NOT NULL DEFAULT 0,
	version BIGINT NOT NULL DEFAULT 0,
	departure_time DATETIME NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_company (company_id),
	KEY idx_status_departure (status, departure_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
