package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory/internal/domain"

	"github.com/gin-gonic/gin"
)

func recordDomainError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondDomainError(c, err)
	return w
}

func TestRespondDomainErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.ValidationError{Field: "seat_count", Msg: "harus lebih dari nol"}, http.StatusBadRequest, "validation_error"},
		{"not_found", domain.NotFoundError{Resource: "trip"}, http.StatusNotFound, "not_found"},
		{"halted", domain.HaltedError{TripID: 1}, http.StatusConflict, "booking_halted"},
		{"capacity", domain.CapacityError{Requested: 5, Available: 2}, http.StatusConflict, "sold_out"},
		{"terminal", domain.TerminalStateError{Status: "DEPARTED"}, http.StatusConflict, "trip_terminal"},
		{"conflict", domain.ConflictError{Resource: "trip", Expected: 3, Current: 5}, http.StatusConflict, "conflict"},
		{"internal", errors.New("db on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		w := recordDomainError(tc.err)
		if w.Code != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.name, tc.status, w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid body: %v", tc.name, err)
		}
		if body["code"] != tc.code {
			t.Fatalf("%s: expected code %q, got %v", tc.name, tc.code, body["code"])
		}
	}
}

func TestRespondDomainErrorConflictCarriesVersions(t *testing.T) {
	w := recordDomainError(domain.ConflictError{Resource: "trip", Expected: 3, Current: 5})

	var body struct {
		Details struct {
			Expected int64 `json:"expected_version"`
			Current  int64 `json:"current_version"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Details.Expected != 3 || body.Details.Current != 5 {
		t.Fatalf("conflict details must carry both versions, got %+v", body.Details)
	}
}

func TestRespondDomainErrorHidesInternalDetail(t *testing.T) {
	w := recordDomainError(errors.New("dsn: user:pass@tcp(...)"))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["error"] != "terjadi kesalahan" {
		t.Fatalf("internal errors must not leak detail, got %v", body["error"])
	}
}
