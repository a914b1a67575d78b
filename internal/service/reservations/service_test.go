package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piste-boss/piste-reserve/internal/domain"
	reservationRepo "github.com/piste-boss/piste-reserve/internal/infra/storage/reservation"
	"github.com/piste-boss/piste-reserve/internal/service/reservations/models"
	"github.com/piste-boss/piste-reserve/pkg/ptr"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

type fakeRepo struct {
	byID map[int64]*domain.Reservation
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) GetWithFilter(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, r := range f.byID {
		if !filter.IncludeCancelled && filter.Status == nil && r.IsCancelled() {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason *string) error {
	r, ok := f.byID[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if r.IsCancelled() {
		return reservationRepo.ErrAlreadyCancelled
	}
	now := time.Now()
	r.Status = domain.StatusCancelled
	r.CancelReason = reason
	r.CancelledAt = &now
	return nil
}

func (f *fakeRepo) SetLineUserID(_ context.Context, id int64, lineUserID string) error {
	r, ok := f.byID[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	r.LineUserID = &lineUserID
	return nil
}

type fakeDispatcher struct {
	events []domain.NotificationEvent
}

func (f *fakeDispatcher) Dispatch(event domain.NotificationEvent) {
	f.events = append(f.events, event)
}

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

func activeReservation(t *testing.T, id int64) *domain.Reservation {
	t.Helper()
	return &domain.Reservation{
		ID:              id,
		Date:            time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local),
		Start:           ts(t, "10:00"),
		End:             ts(t, "11:00"),
		MenuID:          "personal-60",
		MenuLabel:       "パーソナル60分",
		DurationMinutes: 60,
		Source:          domain.SourceWeb,
		Status:          domain.StatusActive,
		CustomerName:    "山田太郎",
		CustomerPhone:   "090-1234-5678",
	}
}

func newService(repo *fakeRepo, dispatcher *fakeDispatcher) *Service {
	return NewService(repo, dispatcher, nil, nopLogger{})
}

func TestService_GetByID(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Reservation{1: activeReservation(t, 1)}}
	svc := newService(repo, &fakeDispatcher{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{byID: map[int64]*domain.Reservation{}}, &fakeDispatcher{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_Cancel(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Reservation{1: activeReservation(t, 1)}}
	dispatcher := &fakeDispatcher{}
	svc := newService(repo, dispatcher)

	reason := "schedule conflict"
	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CancelReason: &reason})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, repo.byID[1].Status)
	require.NotNil(t, repo.byID[1].CancelReason)
	assert.Equal(t, reason, *repo.byID[1].CancelReason)

	// Ровно одно событие отмены со снимком и причиной
	require.Len(t, dispatcher.events, 1)
	event := dispatcher.events[0]
	assert.Equal(t, domain.EventReservationCancelled, event.Kind)
	assert.Equal(t, int64(1), event.Reservation.ReservationID)
	require.NotNil(t, event.Reservation.CancelReason)
	assert.Equal(t, reason, *event.Reservation.CancelReason)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	cancelled := activeReservation(t, 1)
	cancelled.Status = domain.StatusCancelled
	repo := &fakeRepo{byID: map[int64]*domain.Reservation{1: cancelled}}
	dispatcher := &fakeDispatcher{}
	svc := newService(repo, dispatcher)

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Empty(t, dispatcher.events)
}

func TestService_Cancel_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{byID: map[int64]*domain.Reservation{}}, &fakeDispatcher{})

	err := svc.Cancel(context.Background(), 5, &models.CancelReservationRequest{})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_Cancel_ReasonTooLong(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Reservation{1: activeReservation(t, 1)}}
	svc := newService(repo, &fakeDispatcher{})

	long := make([]byte, domain.MaxCancelReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}
	reason := string(long)

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CancelReason: &reason})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, domain.StatusActive, repo.byID[1].Status)
}

func TestService_List_ExcludesCancelledByDefault(t *testing.T) {
	cancelled := activeReservation(t, 2)
	cancelled.Status = domain.StatusCancelled
	repo := &fakeRepo{byID: map[int64]*domain.Reservation{
		1: activeReservation(t, 1),
		2: cancelled,
	}}
	svc := newService(repo, &fakeDispatcher{})

	resp, err := svc.List(context.Background(), &models.ListReservationsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(1), resp.Reservations[0].ID)
}

func TestService_List_InvalidStatus(t *testing.T) {
	svc := newService(&fakeRepo{byID: map[int64]*domain.Reservation{}}, &fakeDispatcher{})

	_, err := svc.List(context.Background(), &models.ListReservationsRequest{Status: ptr.Ptr("nope")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_LinkLineUser(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Reservation{1: activeReservation(t, 1)}}
	svc := newService(repo, &fakeDispatcher{})

	resp, err := svc.LinkLineUser(context.Background(), 1, &models.LinkLineUserRequest{LineUserID: "U123"})
	require.NoError(t, err)

	require.NotNil(t, resp.LineUserID)
	assert.Equal(t, "U123", *resp.LineUserID)
}

func TestService_LinkLineUser_EmptyID(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Reservation{1: activeReservation(t, 1)}}
	svc := newService(repo, &fakeDispatcher{})

	_, err := svc.LinkLineUser(context.Background(), 1, &models.LinkLineUserRequest{LineUserID: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
