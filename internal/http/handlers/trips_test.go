package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"inventory/internal/domain"
	"inventory/internal/domain/models"
	"inventory/internal/utils"
)

func TestViewFromTripFieldMapping(t *testing.T) {
	vid := int64(7)
	dep := time.Date(2026, 9, 1, 8, 30, 0, 0, time.Local)
	trip := models.Trip{
		ID:               3,
		CompanyID:        2,
		VehicleID:        &vid,
		Status:           domain.StatusBoarding,
		TotalSlots:       40,
		AvailableSlots:   9,
		BookingHalted:    true,
		AdminResumed:     true,
		LowSlotAlertSent: true,
		Version:          12,
		DepartureTime:    dep,
	}

	raw, err := json.Marshal(viewFromTrip(trip))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if body["adminResumedFromAutoHalt"] != true {
		t.Fatalf("resume bypass must surface under its wire name, got %v", body)
	}
	if body["version"] != float64(12) {
		t.Fatalf("version token must be in the snapshot, got %v", body["version"])
	}
	if body["departureTime"] != utils.FormatDateTime(dep) {
		t.Fatalf("departure must use the wire datetime layout, got %v", body["departureTime"])
	}
	if body["driverId"] != nil {
		t.Fatalf("unset crew ids must be omitted, got %v", body["driverId"])
	}
	if body["vehicleId"] != float64(7) {
		t.Fatalf("vehicle id must round-trip, got %v", body["vehicleId"])
	}
}
