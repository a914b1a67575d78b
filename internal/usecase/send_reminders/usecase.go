package send_reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
	"github.com/piste-boss/piste-reserve/pkg/types"
)

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = fmt.Errorf("usecase: internal error")

// UseCase use case отправки напоминаний о предстоящих визитах.
// Каждый тик выбирает активные бронирования с привязанным LINE,
// начинающиеся примерно через leadMinutes, и шлет push-сообщение.
// Флаг reminder_sent защищает от повторной отправки между тиками.
type UseCase struct {
	reservationRepo ReservationRepository
	linePusher      LinePusher
	leadMinutes     int
	windowMinutes   int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	linePusher LinePusher,
	leadMinutes int,
	windowMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		linePusher:      linePusher,
		leadMinutes:     leadMinutes,
		windowMinutes:   windowMinutes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute обрабатывает один тик: находит бронирования в окне напоминания
// и отправляет push. Возвращает количество отправленных напоминаний.
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()
	currentMinutes := now.Hour()*60 + now.Minute()

	fromMinutes := currentMinutes + uc.leadMinutes - uc.windowMinutes
	toMinutes := currentMinutes + uc.leadMinutes + uc.windowMinutes

	// Окно целиком за полночь относится к завтрашним броням, их
	// обработает завтрашний тик
	if fromMinutes >= 24*60 {
		return 0, nil
	}
	if toMinutes > 24*60-1 {
		toMinutes = 24*60 - 1
	}
	if fromMinutes < 0 {
		fromMinutes = 0
	}

	from, err := types.FromMinutes(fromMinutes)
	if err != nil {
		return 0, fmt.Errorf("%w: build window start: %v", ErrInternal, err)
	}
	to, err := types.FromMinutes(toMinutes)
	if err != nil {
		return 0, fmt.Errorf("%w: build window end: %v", ErrInternal, err)
	}

	due, err := uc.reservationRepo.GetDueReminders(ctx, now, from, to)
	if err != nil {
		uc.logger.Error("SendReminders: failed to get due reservations: %v", err)
		return 0, fmt.Errorf("%w: failed to get due reservations: %v", ErrInternal, err)
	}

	sent := 0
	for _, res := range due {
		if res.LineUserID == nil || *res.LineUserID == "" {
			continue
		}

		if err := uc.linePusher.PushText(ctx, *res.LineUserID, reminderText(res)); err != nil {
			// Неотправленное напоминание останется в выборке следующего тика
			uc.logger.Error("SendReminders: failed to push reminder for reservation id=%d: %v", res.ID, err)
			continue
		}

		if err := uc.reservationRepo.MarkReminderSent(ctx, res.ID); err != nil {
			uc.logger.Error("SendReminders: failed to mark reminder sent for reservation id=%d: %v", res.ID, err)
			continue
		}

		sent++
	}

	if sent > 0 {
		uc.logger.Info("SendReminders: sent %d reminders", sent)
	}

	return sent, nil
}

// Run запускает периодическую обработку до отмены контекста
func (uc *UseCase) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	uc.logger.Info("SendReminders: worker started, interval=%s", interval)

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("SendReminders: worker stopped")
			return
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil {
				uc.logger.Error("SendReminders: tick failed: %v", err)
			}
		}
	}
}

// reminderText формирует текст напоминания
func reminderText(res *domain.Reservation) string {
	return fmt.Sprintf(
		"%s様\n本日%sより「%s」のご予約がございます。\nお気をつけてお越しください。",
		res.CustomerName, res.Start, res.MenuLabel,
	)
}
