// Package desks provides the thread-safe desk assignment registry linking
// camera-frame zones to students.
package desks

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/chungastico/vigia/types"
)

// ErrUnknownZone is returned when a zone name is not among the configured
// desk zones.
var ErrUnknownZone = errors.New("unknown desk zone")

// Registry maps configured desk zones to their occupants.
//
// The zone set is static; only occupancy mutates. The registry is shared
// between the pose-monitoring worker and request-handling collaborators, so
// every operation serializes through a single mutex over the whole mapping.
// That keeps the one-zone-per-student invariant atomic: assigning a student
// to a new zone clears any prior zone holding them in the same critical
// section.
type Registry struct {
	mu          sync.Mutex
	zones       map[string]types.Rect
	assignments map[string]string // zone name → student ID, "" when vacant
}

// NewRegistry creates a Registry over the configured zones, all vacant.
func NewRegistry(zones map[string]types.Rect) *Registry {
	r := &Registry{
		zones:       make(map[string]types.Rect, len(zones)),
		assignments: make(map[string]string, len(zones)),
	}
	for name, rect := range zones {
		r.zones[name] = rect
		r.assignments[name] = ""
	}

	return r
}

// Assign places studentID at the named zone; an empty studentID vacates it.
//
// If the student currently occupies another zone, that zone is cleared
// first, so a student appears in at most one zone at any time.
//
// Returns:
//   - error: ErrUnknownZone when zone is not configured
func (r *Registry) Assign(zone, studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.zones[zone]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownZone, zone)
	}

	if studentID != "" {
		for name, occupant := range r.assignments {
			if occupant == studentID {
				r.assignments[name] = ""
			}
		}
	}
	r.assignments[zone] = studentID

	return nil
}

// Lookup returns the occupant of the named zone.
//
// Returns:
//   - string: Student ID ("" when vacant)
//   - bool: false when zone is not configured
func (r *Registry) Lookup(zone string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.assignments[zone]

	return id, ok
}

// Snapshot returns a point-in-time copy of the full zone → occupant mapping.
// Readers never observe a mapping under concurrent mutation.
func (r *Registry) Snapshot() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]string, len(r.assignments))
	for zone, id := range r.assignments {
		out[zone] = id
	}

	return out
}

// ZoneAt returns the name of the zone whose bounds contain the point, in
// frame-pixel coordinates.
//
// Returns:
//   - string: Zone name
//   - bool: false when no zone contains the point
func (r *Registry) ZoneAt(x, y float64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Deterministic resolution when zones overlap.
	for _, name := range r.sortedZoneNames() {
		if r.zones[name].Contains(x, y) {
			return name, true
		}
	}

	return "", false
}

// Zones returns the configured zone names in sorted order.
func (r *Registry) Zones() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sortedZoneNames()
}

func (r *Registry) sortedZoneNames() []string {
	names := make([]string, 0, len(r.zones))
	for name := range r.zones {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
