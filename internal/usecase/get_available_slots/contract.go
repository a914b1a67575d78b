package get_available_slots

import (
	"context"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetActiveByDate получает активные бронирования на дату, отсортированные по началу
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
}

// MenuRepository интерфейс репозитория меню услуг
type MenuRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServiceMenu, error)
}

// HolidayRepository интерфейс репозитория выходных дней
type HolidayRepository interface {
	IsClosed(ctx context.Context, date time.Time) (bool, error)
}

// SlotCache кэш занятых интервалов по дате. Может отсутствовать (nil).
type SlotCache interface {
	GetActiveRanges(ctx context.Context, date time.Time) ([]domain.TimeRange, error)
	SetActiveRanges(ctx context.Context, date time.Time, ranges []domain.TimeRange) error
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
