// Package dedup enforces the write-time invariants on monitoring records:
// at most one attendance event per (student, period, calendar day) and a
// minimum cooldown between participation events per (student, period).
//
// Both engines are read-then-decide checks against the persistence store.
// They do not guarantee atomicity against concurrent writers for the same
// student; the Monitor's single-writer-per-session discipline makes the
// pattern safe. On top of the store check, each engine keeps a concurrent
// in-process cache of confirmed writes so that the per-frame hot path does
// not hit the store for students it has already recorded.
package dedup
