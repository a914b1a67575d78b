package send_reminders

import (
	"context"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetDueReminders получает активные бронирования с привязанным LINE,
	// по которым еще не отправлялось напоминание, с началом в интервале
	GetDueReminders(ctx context.Context, date time.Time, from, to types.TimeString) ([]*domain.Reservation, error)
	// MarkReminderSent отмечает, что напоминание отправлено
	MarkReminderSent(ctx context.Context, id int64) error
}

// LinePusher push-сообщения клиенту в LINE
type LinePusher interface {
	PushText(ctx context.Context, lineUserID, text string) error
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
