package repositories

import (
	"database/sql"

	intconfig "inventory/internal/config"
	intdb "inventory/internal/db"
	"inventory/internal/domain"
	"inventory/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetVehicle is the capacity authority lookup used when a vehicle is
// (re)assigned to a trip.
func (r VehicleRepository) GetVehicle(id int64) (models.Vehicle, error) {
	var (
		v     models.Vehicle
		color sql.NullString
	)
	err := r.db().QueryRow(`
		SELECT id, vehicle_code, plate_number, total_seats, COALESCE(color,'')
		FROM vehicles WHERE id = ?
	`, id).Scan(&v.ID, &v.VehicleCode, &v.PlateNumber, &v.TotalSeats, &color)
	if err == sql.ErrNoRows {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
	}
	if err != nil {
		return models.Vehicle{}, domain.InternalError{Err: err}
	}
	v.Color = color.String
	return v, nil
}

func (r VehicleRepository) EnsureSchema() error {
	db := r.db()
	if db == nil || intdb.HasTable(db, "vehicles") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS vehicles (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	vehicle_code VARCHAR(50) NOT NULL,
	plate_number VARCHAR(50) NOT NULL,
	total_seats INT NOT NULL DEFAULT 0,
	color VARCHAR(50) NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_vehicle_code (vehicle_code),
	UNIQUE KEY uniq_plate_number (plate_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}
