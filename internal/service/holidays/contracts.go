package holidays

import (
	"context"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// HolidayRepository интерфейс репозитория выходных дней
type HolidayRepository interface {
	List(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error)
	// Add отмечает дату как выходной; повторное добавление не ошибка
	Add(ctx context.Context, date time.Time) error
	Remove(ctx context.Context, date time.Time) error
}

// SlotCacheInvalidator сбрасывает кэш занятых интервалов. Может быть nil.
type SlotCacheInvalidator interface {
	InvalidateDate(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
