package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/obliviraorg/edumentor/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// DaysUntil returns ceil((date at midnight - now) in days), reading date
// (YYYY-MM-DD) in now's location. An exam later today counts as 0 days.
func DaysUntil(date string, now time.Time) (int, error) {
	d, err := time.ParseInLocation(constants.DateFormat, date, now.Location())
	if err != nil {
		return 0, err
	}
	days := math.Ceil(d.Sub(now).Hours() / 24)
	return int(days), nil
}

// HoursToMinutes converts a fractional hour budget to whole minutes, rounding
// down so the result never exceeds the budget.
func HoursToMinutes(hours float64) int {
	return int(math.Floor(hours * constants.MinutesPerHour))
}

// FormatMinutes renders minutes from midnight as HH:MM, wrapping past midnight.
func FormatMinutes(minutes int) string {
	minutes %= constants.MinutesPerDay
	if minutes < 0 {
		minutes += constants.MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/constants.MinutesPerHour, minutes%constants.MinutesPerHour)
}

// FormatDuration renders a minute count as "2h", "30m" or "1h30m".
func FormatDuration(minutes int) string {
	h, m := minutes/constants.MinutesPerHour, minutes%constants.MinutesPerHour
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
