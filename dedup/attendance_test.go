package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vigiatest "github.com/chungastico/vigia/testing"
)

func TestAttendance_ShouldRecord(t *testing.T) {
	ctx := context.Background()
	store := vigiatest.NewMemStore()
	engine := NewAttendance(store)

	now := time.Date(2025, 9, 1, 7, 0, 0, 0, time.UTC)

	ok, err := engine.ShouldRecord(ctx, "S1", "Clase 1", now)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.RecordAttendance(ctx, "S1", "Clase 1", now))
	engine.MarkRecorded("S1", "Clase 1", now)

	t.Run("same day is suppressed", func(t *testing.T) {
		ok, err := engine.ShouldRecord(ctx, "S1", "Clase 1", now.Add(time.Hour))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("other period is permitted", func(t *testing.T) {
		ok, err := engine.ShouldRecord(ctx, "S1", "Clase 2", now.Add(2*time.Hour))
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("other student is permitted", func(t *testing.T) {
		ok, err := engine.ShouldRecord(ctx, "S2", "Clase 1", now.Add(time.Minute))
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("next day is permitted again", func(t *testing.T) {
		ok, err := engine.ShouldRecord(ctx, "S1", "Clase 1", now.Add(24*time.Hour))
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestAttendance_StoreBacked(t *testing.T) {
	// A record written by an earlier session (fresh engine, cold cache)
	// still suppresses the write.
	ctx := context.Background()
	store := vigiatest.NewMemStore()
	now := time.Date(2025, 9, 1, 7, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordAttendance(ctx, "S1", "Clase 1", now))

	engine := NewAttendance(store)
	ok, err := engine.ShouldRecord(ctx, "S1", "Clase 1", now.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, ok)
}
