package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDayTime(t *testing.T) {
	cases := []struct {
		in   string
		want DayTime
	}{
		{"00:00", 0},
		{"06:00", 360},
		{"07:50", 470},
		{"23:59", 23*60 + 59},
	}

	for _, tc := range cases {
		got, err := ParseDayTime(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
		require.Equal(t, tc.in, got.String())
	}
}

func TestParseDayTime_Malformed(t *testing.T) {
	for _, in := range []string{"", "24:00", "7am", "10-30", "10:62"} {
		_, err := ParseDayTime(in)
		require.Error(t, err, in)
	}
}

func TestDayTimeOf(t *testing.T) {
	instant := time.Date(2025, 9, 1, 9, 50, 30, 0, time.UTC)
	require.Equal(t, DayTime(9*60+50), DayTimeOf(instant))
}

func TestPeriodContains_InclusiveBounds(t *testing.T) {
	p := Period{Name: "Clase 1", Start: 360, End: 470}

	require.True(t, p.Contains(360), "start bound is inclusive")
	require.True(t, p.Contains(470), "end bound is inclusive")
	require.True(t, p.Contains(420))
	require.False(t, p.Contains(359))
	require.False(t, p.Contains(471))
}

func TestSessionState_String(t *testing.T) {
	require.Equal(t, "Idle", SessionIdle.String())
	require.Equal(t, "Attendance", SessionAttendance.String())
	require.Equal(t, "Pose", SessionPose.String())
	require.Equal(t, "Unknown", SessionState(42).String())
}
