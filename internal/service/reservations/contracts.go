package reservations

import (
	"context"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	// Cancel переводит активное бронирование в статус cancelled
	Cancel(ctx context.Context, id int64, reason *string) error
	SetLineUserID(ctx context.Context, id int64, lineUserID string) error
}

// EventDispatcher раздает событие каналам уведомлений. Может быть nil.
type EventDispatcher interface {
	Dispatch(event domain.NotificationEvent)
}

// SlotCacheInvalidator сбрасывает кэш занятых интервалов. Может быть nil.
type SlotCacheInvalidator interface {
	InvalidateDate(ctx context.Context, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
