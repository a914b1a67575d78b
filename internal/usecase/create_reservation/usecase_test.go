package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piste-boss/piste-reserve/internal/domain"
	menuRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/menu"
	reservationRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/reservation"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

type fakeReservationRepo struct {
	existing []*domain.Reservation
	nextID   int64

	created []*domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	stored := *res
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.created = append(f.created, &stored)
	f.existing = append(f.existing, &stored)
	return &stored, nil
}

func (f *fakeReservationRepo) GetActiveByDate(_ context.Context, date time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, r := range f.existing {
		if r.IsActive() && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindDuplicate(_ context.Context, date time.Time, start types.TimeString, customerName string) (*domain.Reservation, error) {
	for _, r := range f.existing {
		if r.IsActive() && r.Date.Equal(date) && r.Start == start && r.CustomerName == customerName {
			return r, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeDispatcher struct {
	events []domain.NotificationEvent
}

func (f *fakeDispatcher) Dispatch(event domain.NotificationEvent) {
	f.events = append(f.events, event)
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

type fixture struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	dispatcher   *fakeDispatcher
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	reservations := &fakeReservationRepo{}
	menus := &fakeMenuRepo{menus: map[string]*domain.ServiceMenu{
		"personal-60": {ID: "personal-60", Label: "パーソナル60分", DurationMinutes: 60, Active: true},
		"trial-20":    {ID: "trial-20", Label: "体験20分", DurationMinutes: 20, Active: true},
	}}
	dispatcher := &fakeDispatcher{}

	uc := NewUseCase(
		reservations, menus, &fakeHolidayRepo{}, domain.DefaultBusinessHours(),
		fakeTxManager{}, dispatcher, nil, nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}

	return &fixture{uc: uc, reservations: reservations, dispatcher: dispatcher}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local), // вторник
		StartTime:     ts(t, "10:00"),
		MenuID:        "personal-60",
		CustomerName:  "山田太郎",
		CustomerPhone: "090-1234-5678",
		CustomerEmail: "taro@example.com",
	}
}

func testNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
}

func TestUseCase_Execute_CreatesReservation(t *testing.T) {
	f := newFixture(t, testNow())

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:00", resp.EndTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	assert.Equal(t, string(domain.SourceWeb), resp.Source)
	assert.False(t, resp.AlreadyExisted)

	require.Len(t, f.dispatcher.events, 1)
	assert.Equal(t, domain.EventReservationCreated, f.dispatcher.events[0].Kind)
	assert.Equal(t, resp.ID, f.dispatcher.events[0].Reservation.ReservationID)
}

func TestUseCase_Execute_OverlapRejected(t *testing.T) {
	f := newFixture(t, testNow())

	first := validRequest(t)
	first.StartTime = ts(t, "09:00")
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// 09:30-10:30 пересекается с 09:00-10:00
	second := validRequest(t)
	second.StartTime = ts(t, "09:30")
	second.CustomerName = "佐藤花子"

	_, err = f.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, f.reservations.created, 1)
}

func TestUseCase_Execute_TouchingBoundaryAccepted(t *testing.T) {
	f := newFixture(t, testNow())

	first := validRequest(t)
	first.StartTime = ts(t, "09:00")
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Предыдущее бронирование заканчивается ровно в 10:00
	second := validRequest(t)
	second.StartTime = ts(t, "10:00")
	second.CustomerName = "佐藤花子"

	resp, err := f.uc.Execute(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime.String())
}

func TestUseCase_Execute_DuplicateSubmissionReturnsSameID(t *testing.T) {
	f := newFixture(t, testNow())

	first, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	second, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.AlreadyExisted)
	assert.Len(t, f.reservations.created, 1)
	// Уведомление уходит только при первом создании
	assert.Len(t, f.dispatcher.events, 1)
}

func TestUseCase_Execute_EmptyPhoneRejected(t *testing.T) {
	f := newFixture(t, testNow())

	req := validRequest(t)
	req.CustomerPhone = ""

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.reservations.created)
	assert.Empty(t, f.dispatcher.events)
}

func TestUseCase_Execute_EmptyEmailRejected(t *testing.T) {
	f := newFixture(t, testNow())

	req := validRequest(t)
	req.CustomerEmail = ""

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.reservations.created)
	assert.Empty(t, f.dispatcher.events)
}

func TestUseCase_Execute_MalformedEmailRejected(t *testing.T) {
	f := newFixture(t, testNow())

	req := validRequest(t)
	req.CustomerEmail = "taro.example.com"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.reservations.created)
}

func TestUseCase_Execute_ClosedWeekdayRejected(t *testing.T) {
	f := newFixture(t, testNow())

	req := validRequest(t)
	req.Date = time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local) // понедельник

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestUseCase_Execute_PastDateRejected(t *testing.T) {
	f := newFixture(t, time.Date(2026, 9, 20, 12, 0, 0, 0, time.Local))

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_SameDayPastTimeRejected(t *testing.T) {
	f := newFixture(t, time.Date(2026, 9, 15, 15, 5, 0, 0, time.Local))

	req := validRequest(t)
	req.StartTime = ts(t, "14:00")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_UnknownMenuRejected(t *testing.T) {
	f := newFixture(t, testNow())

	req := validRequest(t)
	req.MenuID = "nope"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestUseCase_Execute_EndTimeRecomputedFromMenu(t *testing.T) {
	f := newFixture(t, testNow())

	req := validRequest(t)
	req.MenuID = "trial-20"
	req.StartTime = ts(t, "13:00")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "13:20", resp.EndTime.String())
}
