package models

import (
	"testing"

	"inventory/internal/domain"
)

func TestApplyHaltAlertOncePerEpisode(t *testing.T) {
	trip := Trip{Status: domain.StatusScheduled, TotalSlots: 20, AvailableSlots: 9}

	fire := trip.ApplyHalt(domain.EvaluateHalt(trip.HaltInput(false)))
	if !fire || !trip.BookingHalted || !trip.LowSlotAlertSent {
		t.Fatalf("first threshold crossing must halt and fire the alert, got %+v fire=%v", trip, fire)
	}

	// Same episode: further mutations keep the halt but stay silent.
	trip.AvailableSlots = 8
	trip.BookingHalted = false // simulate a caller that cleared the flag without resuming
	if trip.ApplyHalt(domain.EvaluateHalt(trip.HaltInput(false))) {
		t.Fatalf("alert must not refire within the same episode")
	}
	if !trip.BookingHalted {
		t.Fatalf("halt flag must be re-set even when the alert stays quiet")
	}

	// A resume clears the marker; the next crossing is a new episode.
	trip.BookingHalted = false
	trip.LowSlotAlertSent = false
	trip.AdminResumed = false
	if !trip.ApplyHalt(domain.EvaluateHalt(trip.HaltInput(false))) {
		t.Fatalf("new episode must fire the alert again")
	}
}

func TestApplyHaltNoDecisionNoChange(t *testing.T) {
	trip := Trip{Status: domain.StatusScheduled, TotalSlots: 20, AvailableSlots: 15}
	if trip.ApplyHalt(domain.EvaluateHalt(trip.HaltInput(false))) {
		t.Fatalf("no alert expected above the threshold")
	}
	if trip.BookingHalted || trip.LowSlotAlertSent {
		t.Fatalf("flags must stay untouched when the engine decides nothing")
	}
}

func TestHeldSeats(t *testing.T) {
	trip := Trip{TotalSlots: 40, AvailableSlots: 33}
	if got := trip.HeldSeats(); got != 7 {
		t.Fatalf("expected 7 held seats, got %d", got)
	}
}
