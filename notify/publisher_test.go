package notify

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	vigiatest "github.com/chungastico/vigia/testing"
	"github.com/chungastico/vigia/types"
)

func TestNew_RequiresConnection(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, types.ErrConnRequired)
}

func subscribe(t *testing.T, nc *nats.Conn, subject string) chan *nats.Msg {
	t.Helper()

	ch := make(chan *nats.Msg, 4)
	sub, err := nc.ChanSubscribe(subject, ch)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Unsubscribe() })
	require.NoError(t, nc.Flush())

	return ch
}

func receive(t *testing.T, ch chan *nats.Msg) *nats.Msg {
	t.Helper()

	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")

		return nil
	}
}

func TestPublisher_Attendance(t *testing.T) {
	_, nc := vigiatest.StartEmbeddedNATS(t)

	pub, err := New(nc)
	require.NoError(t, err)

	ch := subscribe(t, nc, SubjectAttendance)

	ts := time.Now().Truncate(time.Millisecond)
	require.NoError(t, pub.PublishAttendance(types.AttendanceEvent{
		StudentID: "s1",
		Period:    "Clase 2",
		Timestamp: ts,
	}))

	var msg AttendanceMessage
	require.NoError(t, msgpack.Unmarshal(receive(t, ch).Data, &msg))
	require.NotEmpty(t, msg.EventID)
	require.Equal(t, "s1", msg.StudentID)
	require.Equal(t, "Clase 2", msg.Period)
	require.True(t, msg.Timestamp.Equal(ts))
}

func TestPublisher_Participation(t *testing.T) {
	_, nc := vigiatest.StartEmbeddedNATS(t)

	pub, err := New(nc)
	require.NoError(t, err)

	ch := subscribe(t, nc, SubjectParticipation)

	require.NoError(t, pub.PublishParticipation(types.ParticipationEvent{
		StudentID: "s2",
		Period:    "Clase 4",
		Timestamp: time.Now(),
		Points:    1,
	}))

	var msg ParticipationMessage
	require.NoError(t, msgpack.Unmarshal(receive(t, ch).Data, &msg))
	require.NotEmpty(t, msg.EventID)
	require.Equal(t, "s2", msg.StudentID)
	require.Equal(t, 1, msg.Points)
}

func TestPublisher_SessionChange(t *testing.T) {
	_, nc := vigiatest.StartEmbeddedNATS(t)

	pub, err := New(nc)
	require.NoError(t, err)

	ch := subscribe(t, nc, SubjectSession)

	require.NoError(t, pub.PublishSessionChange(types.SessionIdle, types.SessionAttendance))

	var msg SessionMessage
	require.NoError(t, msgpack.Unmarshal(receive(t, ch).Data, &msg))
	require.Equal(t, "Idle", msg.From)
	require.Equal(t, "Attendance", msg.To)
}

func TestPublisher_UniqueEventIDs(t *testing.T) {
	_, nc := vigiatest.StartEmbeddedNATS(t)

	pub, err := New(nc)
	require.NoError(t, err)

	ch := subscribe(t, nc, SubjectAttendance)

	ev := types.AttendanceEvent{StudentID: "s1", Period: "Clase 1", Timestamp: time.Now()}
	require.NoError(t, pub.PublishAttendance(ev))
	require.NoError(t, pub.PublishAttendance(ev))

	var first, second AttendanceMessage
	require.NoError(t, msgpack.Unmarshal(receive(t, ch).Data, &first))
	require.NoError(t, msgpack.Unmarshal(receive(t, ch).Data, &second))
	require.NotEqual(t, first.EventID, second.EventID)
}

func TestPublisher_Hooks(t *testing.T) {
	_, nc := vigiatest.StartEmbeddedNATS(t)

	pub, err := New(nc)
	require.NoError(t, err)

	hooks := pub.Hooks()
	require.NotNil(t, hooks.OnSessionChanged)
	require.NotNil(t, hooks.OnAttendanceRecorded)
	require.NotNil(t, hooks.OnParticipationRecorded)

	ch := subscribe(t, nc, SubjectAttendance)

	err = hooks.OnAttendanceRecorded(t.Context(), types.AttendanceEvent{
		StudentID: "s1",
		Period:    "Clase 1",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	receive(t, ch)
}
