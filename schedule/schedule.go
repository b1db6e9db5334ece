// Package schedule maps wall-clock time to named class periods.
package schedule

import (
	"time"

	"github.com/chungastico/vigia/types"
)

// Reason explains why (or that) a period lookup matched.
type Reason int

const (
	// ReasonInPeriod indicates the instant falls inside a class period.
	ReasonInPeriod Reason = iota

	// ReasonNoActivePeriod indicates a class day with no period covering
	// the instant.
	ReasonNoActivePeriod

	// ReasonNotClassDay indicates the weekday is outside the configured
	// class days.
	ReasonNotClassDay
)

// String returns a human-readable description suitable for status output.
func (r Reason) String() string {
	switch r {
	case ReasonInPeriod:
		return "in period"
	case ReasonNoActivePeriod:
		return "no active period"
	case ReasonNotClassDay:
		return "not a class day"
	default:
		return "unknown"
	}
}

// Schedule resolves wall-clock instants to class periods.
//
// A Schedule is a pure function of its static configuration: an ordered
// period list and an active-weekday set. It carries no mutable state and is
// safe for concurrent use.
type Schedule struct {
	periods []types.Period
	days    map[time.Weekday]struct{}
}

// New creates a Schedule from an ordered period list and the set of active
// class weekdays.
//
// Periods are evaluated in the given order; the first period whose inclusive
// [start, end] window contains an instant wins.
func New(periods []types.Period, days []time.Weekday) *Schedule {
	s := &Schedule{
		periods: make([]types.Period, len(periods)),
		days:    make(map[time.Weekday]struct{}, len(days)),
	}
	copy(s.periods, periods)
	for _, d := range days {
		s.days[d] = struct{}{}
	}

	return s
}

// Current returns the period active at now, or the reason none is.
//
// Returns:
//   - string: Period name ("" when no period is active)
//   - Reason: ReasonInPeriod on a match, otherwise ReasonNotClassDay or
//     ReasonNoActivePeriod. Callers use the distinction to suppress writes
//     and to report status.
func (s *Schedule) Current(now time.Time) (string, Reason) {
	if _, ok := s.days[now.Weekday()]; !ok {
		return "", ReasonNotClassDay
	}

	tod := types.DayTimeOf(now)
	for _, p := range s.periods {
		if p.Contains(tod) {
			return p.Name, ReasonInPeriod
		}
	}

	return "", ReasonNoActivePeriod
}

// Periods returns a copy of the configured period list.
func (s *Schedule) Periods() []types.Period {
	out := make([]types.Period, len(s.periods))
	copy(out, s.periods)

	return out
}
