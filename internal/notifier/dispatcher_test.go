package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

type fakeSink struct {
	name string
	err  error

	mu     sync.Mutex
	events []domain.NotificationEvent
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Deliver(_ context.Context, event domain.NotificationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *fakeSink) delivered() []domain.NotificationEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.NotificationEvent(nil), f.events...)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testEvent(t *testing.T, kind domain.EventKind) domain.NotificationEvent {
	t.Helper()

	start, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	end, err := types.NewTimeStringFromString("11:00")
	require.NoError(t, err)

	snapshot := domain.ReservationSnapshot{
		ReservationID: 42,
		Date:          "2026-09-15",
		Start:         start,
		End:           end,
		MenuID:        "personal-60",
		MenuLabel:     "パーソナル60分",
		Source:        domain.SourceWeb,
		CustomerName:  "山田太郎",
	}

	return domain.NewNotificationEvent(kind, snapshot, time.Now())
}

func TestDispatcher_DeliversToAllSinks(t *testing.T) {
	first := &fakeSink{name: "first"}
	second := &fakeSink{name: "second"}

	d := NewDispatcher([]Sink{first, second}, nopLogger{}, nil)

	event := testEvent(t, domain.EventReservationCreated)
	d.Dispatch(event)
	d.Wait()

	require.Len(t, first.delivered(), 1)
	require.Len(t, second.delivered(), 1)
	assert.Equal(t, event.ID, first.delivered()[0].ID)
	assert.Equal(t, event.ID, second.delivered()[0].ID)
}

func TestDispatcher_SinkFailureDoesNotBlockOthers(t *testing.T) {
	failing := &fakeSink{name: "failing", err: errors.New("unreachable")}
	healthy := &fakeSink{name: "healthy"}

	d := NewDispatcher([]Sink{failing, healthy}, nopLogger{}, nil)

	d.Dispatch(testEvent(t, domain.EventReservationCancelled))
	d.Wait()

	assert.Len(t, failing.delivered(), 1)
	assert.Len(t, healthy.delivered(), 1)
}

func TestDispatcher_EventIDsAreUnique(t *testing.T) {
	sink := &fakeSink{name: "sink"}
	d := NewDispatcher([]Sink{sink}, nopLogger{}, nil)

	d.Dispatch(testEvent(t, domain.EventReservationCreated))
	d.Dispatch(testEvent(t, domain.EventReservationCreated))
	d.Wait()

	events := sink.delivered()
	require.Len(t, events, 2)
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestLineSink_SkipsWithoutLinkedAccount(t *testing.T) {
	pusher := &fakePusher{}
	sink := NewLineSink(pusher)

	err := sink.Deliver(context.Background(), testEvent(t, domain.EventReservationCreated))

	require.NoError(t, err)
	assert.Zero(t, pusher.calls)
}

func TestLineSink_PushesToLinkedAccount(t *testing.T) {
	pusher := &fakePusher{}
	sink := NewLineSink(pusher)

	event := testEvent(t, domain.EventReservationCreated)
	lineID := "U1234567890"
	event.Reservation.LineUserID = &lineID

	err := sink.Deliver(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, 1, pusher.calls)
	assert.Equal(t, lineID, pusher.lastTo)
	assert.Contains(t, pusher.lastText, "山田太郎")
	assert.Contains(t, pusher.lastText, "10:00")
}

type fakePusher struct {
	calls    int
	lastTo   string
	lastText string
}

func (f *fakePusher) PushText(_ context.Context, lineUserID, text string) error {
	f.calls++
	f.lastTo = lineUserID
	f.lastText = text
	return nil
}
