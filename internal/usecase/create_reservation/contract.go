package create_reservation

import (
	"context"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// Create сохраняет новое бронирование
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	// GetActiveByDate получает активные бронирования на дату с блокировкой
	// внутри транзакции
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	// FindDuplicate ищет активное бронирование с теми же датой, временем
	// начала и именем клиента
	FindDuplicate(ctx context.Context, date time.Time, start types.TimeString, customerName string) (*domain.Reservation, error)
}

// MenuRepository интерфейс репозитория меню услуг
type MenuRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceMenu, error)
}

// HolidayRepository интерфейс репозитория выходных дней
type HolidayRepository interface {
	IsClosed(ctx context.Context, date time.Time) (bool, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в транзакции с уровнем SERIALIZABLE
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
