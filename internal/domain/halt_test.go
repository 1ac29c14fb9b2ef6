package domain

import "testing"

func input(avail int) HaltInput {
	return HaltInput{Status: StatusScheduled, AvailableSlots: avail}
}

func TestEvaluateHaltAboveThreshold(t *testing.T) {
	d := EvaluateHalt(input(11))
	if d.Halt {
		t.Fatalf("expected no halt at 11 available, got %+v", d)
	}
}

func TestEvaluateHaltAtThreshold(t *testing.T) {
	d := EvaluateHalt(input(LowSlotThreshold))
	if !d.Halt {
		t.Fatalf("expected halt at threshold")
	}
	if d.Forced {
		t.Fatalf("threshold halt should not be forced")
	}
}

func TestEvaluateHaltAlreadyHaltedNoRetrigger(t *testing.T) {
	in := input(7)
	in.BookingHalted = true
	d := EvaluateHalt(in)
	if d.Halt {
		t.Fatalf("engine should not re-decide a halt that is already in force")
	}
}

func TestEvaluateHaltBypassesAreORed(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*HaltInput)
	}{
		{"company_global", func(in *HaltInput) { in.CompanyAutoOff = true }},
		{"auto_resume", func(in *HaltInput) { in.AutoResumeEnabled = true }},
		{"admin_resumed", func(in *HaltInput) { in.AdminResumed = true }},
	}
	for _, tc := range cases {
		in := input(5)
		tc.mut(&in)
		d := EvaluateHalt(in)
		if d.Halt {
			t.Fatalf("%s: single bypass must suppress threshold halt", tc.name)
		}
		if len(d.Bypasses) != 1 {
			t.Fatalf("%s: expected one bypass reason, got %v", tc.name, d.Bypasses)
		}
	}
}

func TestEvaluateHaltForcedBeatsEveryBypass(t *testing.T) {
	in := HaltInput{
		Status:            StatusDeparted,
		AvailableSlots:    50,
		AutoResumeEnabled: true,
		AdminResumed:      true,
		CompanyAutoOff:    true,
	}
	d := EvaluateHalt(in)
	if !d.Halt || !d.Forced {
		t.Fatalf("terminal status must force a halt past all bypasses, got %+v", d)
	}
}

func TestEvaluateHaltZeroSeatsForcedWithBypasses(t *testing.T) {
	in := input(0)
	in.AutoResumeEnabled = true
	in.AdminResumed = true
	in.CompanyAutoOff = true
	d := EvaluateHalt(in)
	if !d.Halt || !d.Forced {
		t.Fatalf("zero seats must force a halt past all bypasses, got %+v", d)
	}
}

func TestEvaluateHaltZeroSeatsWhileHalted(t *testing.T) {
	in := input(0)
	in.BookingHalted = true
	d := EvaluateHalt(in)
	if !d.Halt {
		t.Fatalf("forced halt must hold even when already halted")
	}
}
