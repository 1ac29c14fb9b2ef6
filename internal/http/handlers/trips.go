package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"inventory/internal/domain"
	"inventory/internal/domain/models"
	"inventory/internal/services"
	"inventory/internal/utils"

	"github.com/gin-gonic/gin"
)

// tripView is the snapshot consumed by the staff portal and the
// reporting/notification collaborators.
type tripView struct {
	ID                       int64  `json:"id"`
	CompanyID                int64  `json:"companyId"`
	VehicleID                *int64 `json:"vehicleId"`
	DriverID                 *int64 `json:"driverId,omitempty"`
	ConductorID              *int64 `json:"conductorId,omitempty"`
	ManualTicketerID         *int64 `json:"manualTicketerId,omitempty"`
	Status                   string `json:"status"`
	TotalSlots               int    `json:"totalSlots"`
	AvailableSlots           int    `json:"availableSlots"`
	BookingHalted            bool   `json:"bookingHalted"`
	AutoResumeEnabled        bool   `json:"autoResumeEnabled"`
	AdminResumedFromAutoHalt bool   `json:"adminResumedFromAutoHalt"`
	LowSlotAlertSent         bool   `json:"lowSlotAlertSent"`
	Version                  int64  `json:"version"`
	DepartureTime            string `json:"departureTime"`
}

func viewFromTrip(t models.Trip) tripView {
	return tripView{
		ID:                       t.ID,
		CompanyID:                t.CompanyID,
		VehicleID:                t.VehicleID,
		DriverID:                 t.DriverID,
		ConductorID:              t.ConductorID,
		ManualTicketerID:         t.ManualTicketerID,
		Status:                   string(t.Status),
		TotalSlots:               t.TotalSlots,
		AvailableSlots:           t.AvailableSlots,
		BookingHalted:            t.BookingHalted,
		AutoResumeEnabled:        t.AutoResumeEnabled,
		AdminResumedFromAutoHalt: t.AdminResumed,
		LowSlotAlertSent:         t.LowSlotAlertSent,
		Version:                  t.Version,
		DepartureTime:            utils.FormatDateTime(t.DepartureTime),
	}
}

func tripIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return 0, false
	}
	return id, true
}

func tripService() services.TripService {
	return services.TripService{}
}

// GET /api/trips?status=SCHEDULED&company_id=1&page=1&limit=50
func GetTrips(c *gin.Context) {
	p := domain.Pagination{}
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("page"))); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil {
		p.PageSize = v
	}
	companyID, _ := strconv.ParseInt(strings.TrimSpace(c.Query("company_id")), 10, 64)

	trips, err := tripService().ListTrips(c.Query("status"), companyID, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]tripView, 0, len(trips))
	for _, t := range trips {
		out = append(out, viewFromTrip(t))
	}
	c.JSON(http.StatusOK, out)
}

type tripCreatePayload struct {
	CompanyID        int64  `json:"companyId" binding:"required"`
	VehicleID        *int64 `json:"vehicleId"`
	DriverID         *int64 `json:"driverId"`
	ConductorID      *int64 `json:"conductorId"`
	ManualTicketerID *int64 `json:"manualTicketerId"`
	TotalSlots       int    `json:"totalSlots"`
	DepartureTime    string `json:"departureTime" binding:"required"`
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var payload tripCreatePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	departure, err := utils.ParseDateTime(payload.DepartureTime)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "format departureTime harus YYYY-MM-DD HH:MM:SS", err)
		return
	}

	t, err := tripService().CreateTrip(services.TripCreateInput{
		CompanyID:        payload.CompanyID,
		VehicleID:        payload.VehicleID,
		DriverID:         payload.DriverID,
		ConductorID:      payload.ConductorID,
		ManualTicketerID: payload.ManualTicketerID,
		TotalSlots:       payload.TotalSlots,
		DepartureTime:    departure,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewFromTrip(t))
}

// GET /api/trips/:id (also mounted at /:id/snapshot for the collaborators)
func GetTripSnapshot(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	t, err := tripService().GetSnapshot(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewFromTrip(t))
}

type tripUpdatePayload struct {
	Version          *int64 `json:"version"`
	VehicleID        *int64 `json:"vehicleId"`
	DriverID         *int64 `json:"driverId"`
	ConductorID      *int64 `json:"conductorId"`
	ManualTicketerID *int64 `json:"manualTicketerId"`
	DepartureTime    string `json:"departureTime"`
	AutoResume       *bool  `json:"autoResumeEnabled"`
}

// PUT /api/trips/:id
// Staff form edit. The body must echo the version the form was rendered
// from; vehicleId is tri-state (absent / null / id), so presence is read
// from the raw body.
func UpdateTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		RespondError(c, http.StatusBadRequest, "body kosong", err)
		return
	}

	var payload tripUpdatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return
	}
	if payload.Version == nil {
		RespondError(c, http.StatusBadRequest, "version wajib disertakan", nil)
		return
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return
	}
	_, vehiclePresent := keys["vehicleId"]

	patch := models.TripUpdate{
		DriverID:          payload.DriverID,
		ConductorID:       payload.ConductorID,
		ManualTicketerID:  payload.ManualTicketerID,
		AutoResumeEnabled: payload.AutoResume,
		VehicleSet:        vehiclePresent,
		VehicleID:         payload.VehicleID,
	}
	if strings.TrimSpace(payload.DepartureTime) != "" {
		departure, perr := utils.ParseDateTime(payload.DepartureTime)
		if perr != nil {
			RespondError(c, http.StatusBadRequest, "format departureTime harus YYYY-MM-DD HH:MM:SS", perr)
			return
		}
		patch.DepartureTime = &departure
	}

	t, err := tripService().UpdateTrip(id, *payload.Version, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewFromTrip(t))
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	if err := tripService().DeleteTrip(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip berhasil dihapus"})
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/trips/:id/status
func TransitionTripStatus(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var payload statusPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	next := domain.TripStatus(strings.ToUpper(strings.TrimSpace(payload.Status)))
	t, err := tripService().TransitionStatus(id, next)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewFromTrip(t))
}

type haltPayload struct {
	Halted     *bool `json:"halted" binding:"required"`
	Persistent bool  `json:"persistent"`
}

// PUT /api/trips/:id/halt
func SetTripHalt(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var payload haltPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	t, err := tripService().SetHalt(id, *payload.Halted, payload.Persistent)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewFromTrip(t))
}

type vehicleAssignPayload struct {
	VehicleID *int64 `json:"vehicleId"`
}

// PUT /api/trips/:id/vehicle
// Body {"vehicleId": 7} reassigns, {"vehicleId": null} detaches.
func ReassignTripVehicle(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var payload vehicleAssignPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	t, err := tripService().ReassignVehicle(id, payload.VehicleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"newTotal":     t.TotalSlots,
		"newAvailable": t.AvailableSlots,
		"trip":         viewFromTrip(t),
	})
}
