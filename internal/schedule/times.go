package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockMinutes converts an HH:MM wall-clock string into minutes since
// midnight.
func ClockMinutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in clock value %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in clock value %q", clock)
	}
	return hours*60 + minutes, nil
}

// ValidateTimeRange checks that both clocks parse and that start precedes
// end on the same day. Overnight shifts are not modeled.
func ValidateTimeRange(start, end string) error {
	s, err := ClockMinutes(start)
	if err != nil {
		return err
	}
	e, err := ClockMinutes(end)
	if err != nil {
		return err
	}
	if s >= e {
		return ErrInvalidTimeRange
	}
	return nil
}

// HoursBetween returns the wall-clock duration between two clocks in
// fractional hours.
func HoursBetween(start, end string) (float64, error) {
	s, err := ClockMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ClockMinutes(end)
	if err != nil {
		return 0, err
	}
	if s >= e {
		return 0, ErrInvalidTimeRange
	}
	return float64(e-s) / 60.0, nil
}
