package types

import (
	"fmt"
	"time"
)

// DayTime is a time of day expressed as minutes since midnight.
//
// Period bounds use DayTime so that comparisons are independent of date,
// location and DST transitions within a day.
type DayTime int

// ParseDayTime parses a "HH:MM" clock string into a DayTime.
//
// Returns:
//   - DayTime: Minutes since midnight
//   - error: Parse error for malformed input
func ParseDayTime(s string) (DayTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}

	return DayTime(t.Hour()*60 + t.Minute()), nil
}

// DayTimeOf extracts the DayTime of the given instant in its location.
func DayTimeOf(t time.Time) DayTime {
	return DayTime(t.Hour()*60 + t.Minute())
}

// String returns the "HH:MM" representation.
func (d DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(d)/60, int(d)%60)
}

// Period is a named, time-bounded class session.
//
// Periods are static configuration and never mutated at runtime. The
// [Start, End] window is inclusive on both bounds.
type Period struct {
	// Name identifies the period (e.g., "Clase 1").
	Name string

	// Start is the inclusive start of the period.
	Start DayTime

	// End is the inclusive end of the period.
	End DayTime
}

// Contains reports whether the time of day falls within the inclusive
// [Start, End] window.
func (p Period) Contains(d DayTime) bool {
	return p.Start <= d && d <= p.End
}
