package handlers

import (
	"errors"
	"net/http"

	"inventory/internal/domain"
	"inventory/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Version
// conflicts carry expected vs current so the staff UI can prompt a
// refresh instead of silently retrying a stale edit.
func RespondDomainError(c *gin.Context, err error) {
	var conflict domain.ConflictError
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsHalted(err):
		respondError(c, http.StatusConflict, "booking_halted", err.Error(), nil)
	case domain.IsCapacity(err):
		respondError(c, http.StatusConflict, "sold_out", err.Error(), nil)
	case domain.IsTerminalState(err):
		respondError(c, http.StatusConflict, "trip_terminal", err.Error(), nil)
	case errors.As(err, &conflict):
		var details any
		if conflict.Expected != 0 || conflict.Current != 0 {
			details = gin.H{"expected_version": conflict.Expected, "current_version": conflict.Current}
		}
		respondError(c, http.StatusConflict, "conflict", err.Error(), details)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
