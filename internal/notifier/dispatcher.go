package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

const deliverTimeout = 10 * time.Second

// Dispatcher раздает событие всем настроенным каналам уведомлений.
// Доставка at-least-once: ошибка одного канала не блокирует остальные
// и не откатывает уже зафиксированное бронирование.
type Dispatcher struct {
	sinks   []Sink
	log     Logger
	metrics Counter

	wg sync.WaitGroup
}

// NewDispatcher создает dispatcher. metrics может быть nil.
func NewDispatcher(sinks []Sink, log Logger, metrics Counter) *Dispatcher {
	return &Dispatcher{
		sinks:   sinks,
		log:     log,
		metrics: metrics,
	}
}

// Dispatch асинхронно доставляет событие во все каналы и сразу возвращает
// управление: вызывающий код не ждет внешних систем
func (d *Dispatcher) Dispatch(event domain.NotificationEvent) {
	for _, sink := range d.sinks {
		d.wg.Add(1)
		go func(s Sink) {
			defer d.wg.Done()
			d.deliver(s, event)
		}(sink)
	}
}

func (d *Dispatcher) deliver(s Sink, event domain.NotificationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	if err := s.Deliver(ctx, event); err != nil {
		d.observe(s.Name(), event.Kind, "error")
		d.log.Error("notifier: sink %s failed for event %s: %v", s.Name(), event.ID, err)
		return
	}

	d.observe(s.Name(), event.Kind, "ok")
	d.log.Info("notifier: sink %s delivered event %s kind=%s", s.Name(), event.ID, event.Kind)
}

func (d *Dispatcher) observe(sink string, kind domain.EventKind, status string) {
	if d.metrics == nil {
		return
	}
	d.metrics.ObserveNotification(sink, string(kind), status)
}

// Wait блокируется до завершения всех доставок в полете.
// Используется при graceful shutdown и в тестах.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
