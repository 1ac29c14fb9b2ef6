package handlers

import (
	"net/http"

	"inventory/internal/services"

	"github.com/gin-gonic/gin"
)

type sellPayload struct {
	SeatCount int `json:"seatCount" binding:"required"`
}

func salesService() services.SalesService {
	return services.SalesService{}
}

// POST /api/trips/:id/sell-online
func SellOnline(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var payload sellPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	res, err := salesService().SellOnline(id, payload.SeatCount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/trips/:id/sell-manual (staff only)
func SellManual(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var payload sellPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	res, err := salesService().SellManual(id, payload.SeatCount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/trips/:id/cancel
// Called by staff and by the payment collaborator when a hold times out.
func CancelSeats(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var payload sellPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	res, err := salesService().Cancel(id, payload.SeatCount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
