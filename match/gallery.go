// Package match implements nearest-neighbor face matching over a gallery of
// labeled embedding samples.
package match

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/chungastico/vigia/types"
)

// Entry is a single labeled embedding sample.
//
// A student contributes one Entry per captured sample, all carrying the same
// label, so the gallery behaves as a 1-of-many nearest-neighbor classifier.
type Entry struct {
	Label     string
	Embedding []float64
}

// Result is an accepted match.
type Result struct {
	// Label is the label of the winning gallery entry.
	Label string

	// Distance is the Euclidean distance between query and winner.
	Distance float64
}

// Gallery holds the ordered labeled embeddings used for matching during a
// session.
//
// The gallery is built once per session start from persisted student data
// and is immutable afterwards, so it is safe for concurrent reads. Ties on
// the minimum distance resolve to the first entry in build order; since the
// entry order follows store iteration order, ties between near-duplicate
// samples may resolve differently across gallery rebuilds. This matches the
// accepted matching semantics and is deterministic for a given build.
type Gallery struct {
	entries   []Entry
	tolerance float64
}

// New creates a Gallery from explicit entries.
//
// Parameters:
//   - entries: Ordered labeled embeddings
//   - tolerance: Maximum accepted match distance (exclusive)
func New(entries []Entry, tolerance float64) *Gallery {
	g := &Gallery{
		entries:   make([]Entry, len(entries)),
		tolerance: tolerance,
	}
	copy(g.entries, entries)

	return g
}

// Build creates a Gallery from persisted students, one entry per stored
// embedding sample, labeled with the student ID.
func Build(students []types.Student, tolerance float64) *Gallery {
	var entries []Entry
	for _, s := range students {
		for _, emb := range s.Embeddings {
			entries = append(entries, Entry{Label: s.ID, Embedding: emb})
		}
	}

	return New(entries, tolerance)
}

// Match returns the best gallery match for the query embedding.
//
// The minimum-distance entry wins and is accepted only when its distance is
// below the gallery tolerance. Entries whose dimension differs from the
// query are skipped.
//
// Returns:
//   - Result: Winning label and distance
//   - bool: false when the gallery is empty or no entry clears the tolerance
func (g *Gallery) Match(query []float64) (Result, bool) {
	best := Result{Distance: math.Inf(1)}
	for _, e := range g.entries {
		d, ok := distance(query, e.Embedding)
		if !ok {
			continue
		}
		if d < best.Distance {
			best = Result{Label: e.Label, Distance: d}
		}
	}

	if best.Distance >= g.tolerance {
		return Result{}, false
	}

	return best, true
}

// Size returns the number of gallery entries.
func (g *Gallery) Size() int {
	return len(g.entries)
}

// Fingerprint returns a stable hash of the gallery contents, used to
// identify a particular build in logs and metrics.
func (g *Gallery) Fingerprint() uint64 {
	h := xxh3.New()
	var buf [8]byte
	for _, e := range g.entries {
		_, _ = h.WriteString(e.Label)
		for _, v := range e.Embedding {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
		}
	}

	return h.Sum64()
}

// distance computes the Euclidean distance between two vectors.
//
// Returns:
//   - float64: The distance
//   - bool: false on dimension mismatch
func distance(a, b []float64) (float64, bool) {
	if len(a) != len(b) {
		return 0, false
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum), true
}
