package models

// Vehicle is the physical unit whose seat count is the authority for a
// trip's TotalSlots whenever it is attached.
type Vehicle struct {
	ID          int64  `json:"id"`
	VehicleCode string `json:"vehicleCode"`
	PlateNumber string `json:"plateNumber"`
	TotalSeats  int    `json:"totalSeats"`
	Color       string `json:"color,omitempty"`
}

// VehiclePayload mirrors the admin form for create/update.
type VehiclePayload struct {
	VehicleCode string `json:"vehicleCode" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	TotalSeats  int    `json:"totalSeats" binding:"required"`
	Color       string `json:"color"`
}
