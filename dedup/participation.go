package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/chungastico/vigia/types"
)

// Participation enforces a cooldown between participation writes for the
// same (student, period).
//
// The cooldown is a configuration parameter supplied at construction, not a
// constant baked into the engine.
type Participation struct {
	store    types.Store
	cooldown time.Duration

	// last caches the most recent known participation timestamp per
	// (student, period).
	last *xsync.Map[uint64, time.Time]
}

// NewParticipation creates a participation debounce engine over the store.
func NewParticipation(store types.Store, cooldown time.Duration) *Participation {
	return &Participation{
		store:    store,
		cooldown: cooldown,
		last:     xsync.NewMap[uint64, time.Time](),
	}
}

// ShouldRecord reports whether a participation write for the student and
// period is permitted at now.
//
// Returns:
//   - bool: true iff no prior participation exists or the elapsed time since
//     the most recent one is at least the cooldown
//   - error: Storage error (the caller skips the write on error)
func (p *Participation) ShouldRecord(ctx context.Context, studentID, period string, now time.Time) (bool, error) {
	key := pairKey(studentID, period)
	if ts, ok := p.last.Load(key); ok && now.Sub(ts) < p.cooldown {
		return false, nil
	}

	ts, found, err := p.store.LastParticipation(ctx, studentID, period)
	if err != nil {
		return false, fmt.Errorf("check participation: %w", err)
	}
	if !found {
		return true, nil
	}

	p.last.Store(key, ts)

	return now.Sub(ts) >= p.cooldown, nil
}

// MarkRecorded notes a confirmed participation write. Call only after the
// store write succeeded.
func (p *Participation) MarkRecorded(studentID, period string, now time.Time) {
	p.last.Store(pairKey(studentID, period), now)
}
