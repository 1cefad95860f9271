package service

import "testing"

func TestComputeMinutesLateSigned(t *testing.T) {
	minutes, ok := ComputeMinutesLate("08:00", "08:15")
	if !ok || minutes != 15 {
		t.Fatalf("expected 15, got %d (ok=%v)", minutes, ok)
	}

	minutes, ok = ComputeMinutesLate("08:15", "08:00")
	if !ok || minutes != -15 {
		t.Fatalf("expected -15, got %d (ok=%v)", minutes, ok)
	}
}

func TestComputeMinutesLateUnknown(t *testing.T) {
	cases := []struct {
		scheduled string
		actual    string
	}{
		{"25:99", "08:00"},
		{"", "08:00"},
		{"08:00", ""},
		{"8h00", "08:00"},
		{"08:60", "08:00"},
		{"08:00:99", "08:00"},
		{"late", "08:00"},
	}
	for _, tc := range cases {
		if _, ok := ComputeMinutesLate(tc.scheduled, tc.actual); ok {
			t.Fatalf("expected unknown for (%q, %q)", tc.scheduled, tc.actual)
		}
	}
}

func TestComputeMinutesLateFormats(t *testing.T) {
	cases := []struct {
		scheduled string
		actual    string
		want      int
	}{
		{"8:05", "8:06", 1},
		{"08:00:00", "08:47:30", 47},
		{"00:00", "23:59", 1439},
		{"08:00", "08:00", 0},
	}
	for _, tc := range cases {
		got, ok := ComputeMinutesLate(tc.scheduled, tc.actual)
		if !ok || got != tc.want {
			t.Fatalf("(%q, %q): expected %d, got %d (ok=%v)", tc.scheduled, tc.actual, tc.want, got, ok)
		}
	}
}

// A trip scheduled just before midnight that departs just after computes as a
// large negative value. This mirrors the long-standing behavior of the
// minute-of-day subtraction; see DESIGN.md.
func TestComputeMinutesLateNoDayRollover(t *testing.T) {
	minutes, ok := ComputeMinutesLate("23:50", "00:10")
	if !ok || minutes != -1420 {
		t.Fatalf("expected -1420, got %d (ok=%v)", minutes, ok)
	}
}
