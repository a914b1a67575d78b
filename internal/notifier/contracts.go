package notifier

import (
	"context"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// Sink доставляет событие во внешний канал уведомлений
type Sink interface {
	// Name метки в метриках и логах
	Name() string
	// Deliver доставляет событие. Ошибка логируется диспетчером и не
	// влияет на остальные каналы.
	Deliver(ctx context.Context, event domain.NotificationEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Counter инкрементирует счетчик доставок по каналу, виду события и статусу
type Counter interface {
	ObserveNotification(sink, kind, status string)
}
