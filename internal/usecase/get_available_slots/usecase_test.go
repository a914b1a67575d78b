package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piste-boss/piste-reserve/internal/domain"
	menuRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/menu"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	calls        int
}

func (f *fakeReservationRepo) GetActiveByDate(_ context.Context, _ time.Time) ([]*domain.Reservation, error) {
	f.calls++
	return f.reservations, nil
}

type fakeMenuRepo struct {
	menus map[string]*domain.ServiceMenu
}

func (f *fakeMenuRepo) GetByID(_ context.Context, id string) (*domain.ServiceMenu, error) {
	m, ok := f.menus[id]
	if !ok {
		return nil, menuRepo.ErrMenuNotFound
	}
	return m, nil
}

type fakeHolidayRepo struct {
	closed map[string]bool
}

func (f *fakeHolidayRepo) IsClosed(_ context.Context, date time.Time) (bool, error) {
	return f.closed[date.Format(domain.DateFormat)], nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

func newTestUseCase(t *testing.T, reservations *fakeReservationRepo, holidays *fakeHolidayRepo, now time.Time) *UseCase {
	t.Helper()

	menus := &fakeMenuRepo{menus: map[string]*domain.ServiceMenu{
		"personal-60": {ID: "personal-60", Label: "パーソナル60分", DurationMinutes: 60, Active: true},
		"trial-20":    {ID: "trial-20", Label: "体験20分", DurationMinutes: 20, Active: true},
		"retired":     {ID: "retired", Label: "旧メニュー", DurationMinutes: 30, Active: false},
	}}

	uc := NewUseCase(reservations, menus, holidays, domain.DefaultBusinessHours(), nil, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestUseCase_Execute_FiltersBookedRanges(t *testing.T) {
	// Вторник, рабочий день
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{
		{Status: domain.StatusActive, Start: ts(t, "09:00"), End: ts(t, "10:00")},
	}}

	uc := newTestUseCase(t, reservations, &fakeHolidayRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date, MenuID: "personal-60"})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, "09:30", slot.String())
	}
	assert.Contains(t, slotStrings(resp), "10:00")
	assert.NotContains(t, slotStrings(resp), "09:00")
}

func TestUseCase_Execute_HolidayYieldsEmpty(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	reservations := &fakeReservationRepo{}
	holidays := &fakeHolidayRepo{closed: map[string]bool{"2026-09-15": true}}

	uc := newTestUseCase(t, reservations, holidays, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date, MenuID: "trial-20"})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Zero(t, reservations.calls, "closed day must not hit the reservation store")
}

func TestUseCase_Execute_ClosedWeekdayYieldsEmpty(t *testing.T) {
	// Понедельник закрыт по умолчанию
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	uc := newTestUseCase(t, &fakeReservationRepo{}, &fakeHolidayRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date, MenuID: "trial-20"})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_UnknownMenu(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	uc := newTestUseCase(t, &fakeReservationRepo{}, &fakeHolidayRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{Date: date, MenuID: "nope"})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestUseCase_Execute_InactiveMenuRejected(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	uc := newTestUseCase(t, &fakeReservationRepo{}, &fakeHolidayRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{Date: date, MenuID: "retired"})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestUseCase_Execute_PastDateRejected(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local)

	uc := newTestUseCase(t, &fakeReservationRepo{}, &fakeHolidayRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{Date: date, MenuID: "trial-20"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_MissingMenuID(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	uc := newTestUseCase(t, &fakeReservationRepo{}, &fakeHolidayRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{Date: date})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func slotStrings(resp *Response) []string {
	out := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		out = append(out, s.String())
	}
	return out
}
