package repositories

import (
	"database/sql"

	intconfig "inventory/internal/config"
	intdb "inventory/internal/db"
	"inventory/internal/domain"
	"inventory/internal/domain/models"
)

type CompanyRepository struct {
	DB *sql.DB
}

func (r CompanyRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CompanyRepository) GetCompany(id int64) (models.Company, error) {
	var c models.Company
	err := r.db().QueryRow(`
		SELECT id, name, disable_auto_halt FROM companies WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.DisableAutoHalt)
	if err == sql.ErrNoRows {
		return models.Company{}, domain.NotFoundError{Resource: "company"}
	}
	if err != nil {
		return models.Company{}, domain.InternalError{Err: err}
	}
	return c, nil
}

// AutoHaltDisabled is the policy read the halt engine needs. A missing
// company reads as policy-off rather than failing the sale.
func (r CompanyRepository) AutoHaltDisabled(id int64) (bool, error) {
	c, err := r.GetCompany(id)
	if domain.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.DisableAutoHalt, nil
}

func (r CompanyRepository) ListCompanies() ([]models.Company, error) {
	rows, err := r.db().Query(`SELECT id, name, disable_auto_halt FROM companies ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Company{}
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.DisableAutoHalt); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CompanyRepository) InsertCompany(c models.Company) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO companies (name, disable_auto_halt) VALUES (?, ?)
	`, c.Name, c.DisableAutoHalt)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// SetAutoHaltDisabled flips the company-wide bypass.
func (r CompanyRepository) SetAutoHaltDisabled(id int64, disabled bool) error {
	res, err := r.db().Exec(`UPDATE companies SET disable_auto_halt = ? WHERE id = ?`, disabled, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		// idempotent update may match zero rows, cek eksistensi dulu
		if _, gerr := r.GetCompany(id); gerr != nil {
			return gerr
		}
	}
	return nil
}

func (r CompanyRepository) EnsureSchema() error {
	db := r.db()
	if db == nil || intdb.HasTable(db, "companies") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS companies (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	disable_auto_halt TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}
