// Package testing provides test utilities for the Vigia library.
//
// This package offers deterministic fakes for the Monitor's injected
// collaborators, following Go's convention of providing testing utilities in
// a dedicated package (similar to net/http/httptest).
//
// Key utilities:
//   - MemStore: Thread-safe in-memory Store implementation
//   - FakeCamera / FakeSource: Scripted frame production
//   - StaticEncoder / StaticEstimator: Fixed embeddings and poses
//   - NewTestLogger: Logger writing to testing.T
//   - StartEmbeddedNATS: In-process NATS server for notify tests
//
// Example usage:
//
//	import vigiatest "github.com/chungastico/vigia/testing"
//
//	func TestMonitor(t *testing.T) {
//	    store := vigiatest.NewMemStore()
//	    // wire store into the component under test
//	}
package testing
