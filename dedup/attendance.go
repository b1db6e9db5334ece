package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/zeebo/xxh3"

	"github.com/chungastico/vigia/types"
)

// Attendance suppresses duplicate attendance writes for the same
// (student, period, calendar day).
type Attendance struct {
	store types.Store

	// recorded caches confirmed writes keyed by a hash of
	// student|period|day. Day rollover is inherent in the key, so stale
	// entries are merely unused, never wrong.
	recorded *xsync.Map[uint64, struct{}]
}

// NewAttendance creates an attendance dedup engine over the store.
func NewAttendance(store types.Store) *Attendance {
	return &Attendance{
		store:    store,
		recorded: xsync.NewMap[uint64, struct{}](),
	}
}

// ShouldRecord reports whether an attendance write for the student and
// period is permitted at now.
//
// Returns:
//   - bool: true iff no attendance record exists within now's calendar day
//   - error: Storage error (the caller skips the write on error)
func (a *Attendance) ShouldRecord(ctx context.Context, studentID, period string, now time.Time) (bool, error) {
	key := dayKey(studentID, period, now)
	if _, ok := a.recorded.Load(key); ok {
		return false, nil
	}

	attended, err := a.store.AttendedOn(ctx, studentID, period, now)
	if err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	if attended {
		a.recorded.Store(key, struct{}{})

		return false, nil
	}

	return true, nil
}

// MarkRecorded notes a confirmed attendance write so later checks within the
// same day short-circuit. Call only after the store write succeeded.
func (a *Attendance) MarkRecorded(studentID, period string, now time.Time) {
	a.recorded.Store(dayKey(studentID, period, now), struct{}{})
}

// dayKey hashes (student, period, calendar day) into a cache key.
func dayKey(studentID, period string, now time.Time) uint64 {
	return xxh3.HashString(studentID + "\x00" + period + "\x00" + now.Format("2006-01-02"))
}

// pairKey hashes (student, period) into a cache key.
func pairKey(studentID, period string) uint64 {
	return xxh3.HashString(studentID + "\x00" + period)
}
