package desks

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chungastico/vigia/types"
)

func testZones() map[string]types.Rect {
	return map[string]types.Rect{
		"Pupitre 1": {Left: 50, Top: 100, Right: 250, Bottom: 300},
		"Pupitre 2": {Left: 350, Top: 100, Right: 550, Bottom: 300},
	}
}

func TestRegistry_AssignMovesStudent(t *testing.T) {
	r := NewRegistry(testZones())

	require.NoError(t, r.Assign("Pupitre 1", "S1"))
	require.NoError(t, r.Assign("Pupitre 2", "S1"))

	snap := r.Snapshot()
	require.Equal(t, "", snap["Pupitre 1"])
	require.Equal(t, "S1", snap["Pupitre 2"])
}

func TestRegistry_AssignEmptyClearsZone(t *testing.T) {
	r := NewRegistry(testZones())

	require.NoError(t, r.Assign("Pupitre 1", "S1"))
	require.NoError(t, r.Assign("Pupitre 2", "S2"))
	require.NoError(t, r.Assign("Pupitre 1", ""))

	snap := r.Snapshot()
	require.Equal(t, "", snap["Pupitre 1"])
	require.Equal(t, "S2", snap["Pupitre 2"])
}

func TestRegistry_AssignUnknownZone(t *testing.T) {
	r := NewRegistry(testZones())

	err := r.Assign("Pupitre 9", "S1")
	require.ErrorIs(t, err, ErrUnknownZone)
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(testZones())
	require.NoError(t, r.Assign("Pupitre 1", "S1"))

	id, ok := r.Lookup("Pupitre 1")
	require.True(t, ok)
	require.Equal(t, "S1", id)

	id, ok = r.Lookup("Pupitre 2")
	require.True(t, ok)
	require.Empty(t, id)

	_, ok = r.Lookup("Pupitre 9")
	require.False(t, ok)
}

func TestRegistry_SnapshotIsCopy(t *testing.T) {
	r := NewRegistry(testZones())
	require.NoError(t, r.Assign("Pupitre 1", "S1"))

	snap := r.Snapshot()
	snap["Pupitre 1"] = "tampered"

	id, _ := r.Lookup("Pupitre 1")
	require.Equal(t, "S1", id)
}

func TestRegistry_ZoneAt(t *testing.T) {
	r := NewRegistry(testZones())

	zone, ok := r.ZoneAt(100, 200)
	require.True(t, ok)
	require.Equal(t, "Pupitre 1", zone)

	zone, ok = r.ZoneAt(400, 150)
	require.True(t, ok)
	require.Equal(t, "Pupitre 2", zone)

	// Between the two zones.
	_, ok = r.ZoneAt(300, 200)
	require.False(t, ok)

	// Bounds are exclusive.
	_, ok = r.ZoneAt(50, 200)
	require.False(t, ok)
}

func TestRegistry_ConcurrentAssignKeepsInvariant(t *testing.T) {
	zones := make(map[string]types.Rect)
	for i := range 8 {
		zones[fmt.Sprintf("Z%d", i)] = types.Rect{Right: 1, Bottom: 1}
	}
	r := NewRegistry(zones)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(zone string) {
			defer wg.Done()
			for range 100 {
				_ = r.Assign(zone, "S1")
			}
		}(fmt.Sprintf("Z%d", i))
	}
	wg.Wait()

	// S1 must end up in exactly one zone.
	occupied := 0
	for _, id := range r.Snapshot() {
		if id == "S1" {
			occupied++
		}
	}
	require.Equal(t, 1, occupied)
}
