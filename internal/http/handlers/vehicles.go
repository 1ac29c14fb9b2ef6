package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	intconfig "inventory/internal/config"
	intdb "inventory/internal/db"
	"inventory/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

// GET /api/vehicles?q=LK&page=1&limit=50
func GetVehicles(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	pageStr := strings.TrimSpace(c.Query("page"))
	limitStr := strings.TrimSpace(c.Query("limit"))

	baseSelect := `
		SELECT id, vehicle_code, plate_number, total_seats, COALESCE(color,'') AS color
		FROM vehicles
	`

	where := ""
	args := []any{}
	if q != "" {
		where = " WHERE (vehicle_code LIKE ? OR plate_number LIKE ?) "
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	order := " ORDER BY id DESC "

	query := baseSelect + where + order
	if pageStr != "" && limitStr != "" {
		page, _ := strconv.Atoi(pageStr)
		limit, _ := strconv.Atoi(limitStr)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 50
		}
		if limit > 200 {
			limit = 200
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data kendaraan: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleCode, &v.PlateNumber, &v.TotalSeats, &v.Color); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan data kendaraan: " + err.Error()})
			return
		}
		list = append(list, v)
	}

	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var payload models.VehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data tidak valid", "detail": err.Error()})
		return
	}

	vehicleCode := strings.TrimSpace(payload.VehicleCode)
	plateNumber := strings.TrimSpace(payload.PlateNumber)
	if vehicleCode == "" || plateNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicleCode dan plateNumber wajib diisi"})
		return
	}
	if payload.TotalSeats <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "totalSeats harus lebih dari nol"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO vehicles (vehicle_code, plate_number, total_seats, color)
		VALUES (?, ?, ?, ?)
	`, vehicleCode, plateNumber, payload.TotalSeats, intdb.NullIfEmpty(strings.TrimSpace(payload.Color)))
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "Kode Mobil atau Plat Mobil sudah terdaftar (duplikat)."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menambah kendaraan: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "kendaraan berhasil ditambahkan", "id": id})
}

// PUT /api/vehicles/:id
// Changing total_seats here does NOT ripple into scheduled trips; capacity
// follows the vehicle only through trip vehicle reassignment.
func UpdateVehicle(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.VehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data tidak valid", "detail": err.Error()})
		return
	}

	vehicleCode := strings.TrimSpace(payload.VehicleCode)
	plateNumber := strings.TrimSpace(payload.PlateNumber)
	if vehicleCode == "" || plateNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicleCode dan plateNumber wajib diisi"})
		return
	}
	if payload.TotalSeats <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "totalSeats harus lebih dari nol"})
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE vehicles
		SET vehicle_code = ?, plate_number = ?, total_seats = ?, color = ?
		WHERE id = ?
	`, vehicleCode, plateNumber, payload.TotalSeats, intdb.NullIfEmpty(strings.TrimSpace(payload.Color)), id)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "Kode Mobil atau Plat Mobil sudah terdaftar (duplikat)."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update kendaraan: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "kendaraan tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "kendaraan berhasil diupdate"})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	// Tolak hapus kalau masih dipakai trip aktif.
	var inUse int
	if qerr := intconfig.DB.QueryRow(`
		SELECT COUNT(*) FROM trips
		WHERE vehicle_id = ? AND status IN ('SCHEDULED','BOARDING')
	`, id).Scan(&inUse); qerr != nil && qerr != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek pemakaian kendaraan: " + qerr.Error()})
		return
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "kendaraan masih dipakai trip aktif"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus kendaraan: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "kendaraan tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "kendaraan berhasil dihapus"})
}
