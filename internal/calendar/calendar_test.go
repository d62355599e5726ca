package calendar

import (
	"testing"
	"time"
)

func TestNewLocalizer_Matching(t *testing.T) {
	monday := time.Date(2024, 7, 29, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		locale string
		want   string
	}{
		{"es", "Lunes"},
		{"es-CU", "Lunes"},
		{"en", "Monday"},
		{"en-US", "Monday"},
		{"fr", "Lunes"}, // unsupported falls back to Spanish
		{"", "Lunes"},
	}
	for _, tc := range cases {
		if got := NewLocalizer(tc.locale).WeekdayName(monday); got != tc.want {
			t.Errorf("WeekdayName(%q, monday) = %q, want %q", tc.locale, got, tc.want)
		}
	}
}

func TestNames_MondayFirst(t *testing.T) {
	names := NewLocalizer("es").Names()
	if names[0] != "Lunes" || names[6] != "Domingo" {
		t.Errorf("names must be Monday-first: %v", names)
	}
}

func TestMondayIndex(t *testing.T) {
	if MondayIndex(time.Monday) != 0 {
		t.Error("Monday should map to index 0")
	}
	if MondayIndex(time.Sunday) != 6 {
		t.Error("Sunday should map to index 6")
	}
	if MondayIndex(time.Wednesday) != 2 {
		t.Error("Wednesday should map to index 2")
	}
}
