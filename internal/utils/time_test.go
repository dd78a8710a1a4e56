package utils

import (
	"testing"
	"time"
)

func TestDaysUntil(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 1, 10, 23, 0, 0, 0, loc)

	tests := []struct {
		date string
		want int
	}{
		{"2026-01-11", 1},
		{"2026-01-10", 0},
		{"2026-01-17", 7},
		{"2026-01-01", -9},
	}
	for _, tt := range tests {
		got, err := DaysUntil(tt.date, now)
		if err != nil {
			t.Fatalf("DaysUntil(%q) error = %v", tt.date, err)
		}
		if got != tt.want {
			t.Errorf("DaysUntil(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}

	if _, err := DaysUntil("2026-13-01", now); err == nil {
		t.Error("expected error for invalid month")
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{450, "07:30"},
		{1440, "00:00"},
		{1800, "06:00"},
		{-60, "23:00"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{30: "30m", 120: "2h", 90: "1h30m", 0: "0m"}
	for minutes, want := range tests {
		if got := FormatDuration(minutes); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", minutes, got, want)
		}
	}
}

func TestHoursToMinutes(t *testing.T) {
	tests := map[float64]int{0: 0, 0.5: 30, 2.25: 135, 1.0 / 3: 20, 6: 360, 1.995: 119, 0.009: 0}
	for hours, want := range tests {
		if got := HoursToMinutes(hours); got != want {
			t.Errorf("HoursToMinutes(%v) = %d, want %d", hours, got, want)
		}
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	got, err := ParseTimeToMinutes("07:45")
	if err != nil || got != 465 {
		t.Errorf("ParseTimeToMinutes(07:45) = %d, %v", got, err)
	}
	if _, err := ParseTimeToMinutes("7h45"); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestLoadLocation(t *testing.T) {
	for _, tz := range []string{"", "Local"} {
		loc, err := LoadLocation(tz)
		if err != nil || loc != time.Local {
			t.Errorf("LoadLocation(%q) = %v, %v", tz, loc, err)
		}
	}
	if ValidateTimezone("Not/AZone") {
		t.Error("ValidateTimezone accepted an unknown zone")
	}
	if _, err := NowInTimezone("Not/AZone"); err == nil {
		t.Error("NowInTimezone accepted an unknown zone")
	}
}
