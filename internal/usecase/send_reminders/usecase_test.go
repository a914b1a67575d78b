package send_reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

type fakeReservationRepo struct {
	due []*domain.Reservation

	gotFrom types.TimeString
	gotTo   types.TimeString
	marked  []int64
}

func (f *fakeReservationRepo) GetDueReminders(_ context.Context, _ time.Time, from, to types.TimeString) ([]*domain.Reservation, error) {
	f.gotFrom = from
	f.gotTo = to
	return f.due, nil
}

func (f *fakeReservationRepo) MarkReminderSent(_ context.Context, id int64) error {
	f.marked = append(f.marked, id)
	return nil
}

type fakePusher struct {
	err   error
	texts map[string]string
}

func (f *fakePusher) PushText(_ context.Context, lineUserID, text string) error {
	if f.err != nil {
		return f.err
	}
	if f.texts == nil {
		f.texts = make(map[string]string)
	}
	f.texts[lineUserID] = text
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func ts(t *testing.T, value string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return v
}

func dueReservation(t *testing.T, id int64, lineID string) *domain.Reservation {
	t.Helper()
	line := lineID
	return &domain.Reservation{
		ID:           id,
		Start:        ts(t, "17:00"),
		End:          ts(t, "18:00"),
		MenuLabel:    "パーソナル60分",
		Status:       domain.StatusActive,
		CustomerName: "山田太郎",
		LineUserID:   &line,
	}
}

func TestUseCase_Execute_SendsAndMarks(t *testing.T) {
	repo := &fakeReservationRepo{due: []*domain.Reservation{dueReservation(t, 7, "U123")}}
	pusher := &fakePusher{}

	uc := NewUseCase(repo, pusher, 180, 15, nopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 15, 14, 0, 0, 0, time.Local)}

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	assert.Equal(t, []int64{7}, repo.marked)
	assert.Contains(t, pusher.texts["U123"], "17:00")
	assert.Contains(t, pusher.texts["U123"], "山田太郎")

	// 14:00 + 180 мин = 17:00, окно ±15 мин
	assert.Equal(t, "16:45", repo.gotFrom.String())
	assert.Equal(t, "17:15", repo.gotTo.String())
}

func TestUseCase_Execute_PushFailureLeavesUnmarked(t *testing.T) {
	repo := &fakeReservationRepo{due: []*domain.Reservation{dueReservation(t, 7, "U123")}}
	pusher := &fakePusher{err: errors.New("line down")}

	uc := NewUseCase(repo, pusher, 180, 15, nopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 15, 14, 0, 0, 0, time.Local)}

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Zero(t, sent)
	assert.Empty(t, repo.marked)
}

func TestUseCase_Execute_WindowPastMidnightSkipped(t *testing.T) {
	repo := &fakeReservationRepo{due: []*domain.Reservation{dueReservation(t, 7, "U123")}}

	uc := NewUseCase(repo, &fakePusher{}, 180, 15, nopLogger{})
	// 22:00 + 165 мин >= полуночи: окно целиком завтра
	uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 15, 22, 0, 0, 0, time.Local)}

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, repo.marked)
}

func TestUseCase_Execute_NothingDue(t *testing.T) {
	repo := &fakeReservationRepo{}

	uc := NewUseCase(repo, &fakePusher{}, 180, 15, nopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 15, 14, 0, 0, 0, time.Local)}

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}
