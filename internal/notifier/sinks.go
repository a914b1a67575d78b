package notifier

import (
	"context"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// LinePusher push-сообщения клиенту в LINE
type LinePusher interface {
	PushText(ctx context.Context, lineUserID, text string) error
}

// EmailSender письма администратору
type EmailSender interface {
	SendText(ctx context.Context, to, subject, text string) error
}

// CalendarForwarder форвардинг события во внешний календарь
type CalendarForwarder interface {
	Forward(ctx context.Context, event domain.NotificationEvent) error
}

// QueuePublisher публикация события в брокер
type QueuePublisher interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

// LineSink отправляет клиенту push в LINE, если аккаунт привязан
type LineSink struct {
	pusher LinePusher
}

func NewLineSink(pusher LinePusher) *LineSink {
	return &LineSink{pusher: pusher}
}

func (s *LineSink) Name() string { return "line" }

func (s *LineSink) Deliver(ctx context.Context, event domain.NotificationEvent) error {
	// Без привязанного аккаунта доставлять некуда, это не ошибка
	if event.Reservation.LineUserID == nil || *event.Reservation.LineUserID == "" {
		return nil
	}
	return s.pusher.PushText(ctx, *event.Reservation.LineUserID, lineText(event))
}

// EmailSink отправляет письмо администратору зала
type EmailSink struct {
	sender  EmailSender
	adminTo string
}

func NewEmailSink(sender EmailSender, adminTo string) *EmailSink {
	return &EmailSink{sender: sender, adminTo: adminTo}
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) Deliver(ctx context.Context, event domain.NotificationEvent) error {
	return s.sender.SendText(ctx, s.adminTo, emailSubject(event.Kind), emailText(event))
}

// CalendarSink форвардит событие во внешний календарь
type CalendarSink struct {
	forwarder CalendarForwarder
}

func NewCalendarSink(forwarder CalendarForwarder) *CalendarSink {
	return &CalendarSink{forwarder: forwarder}
}

func (s *CalendarSink) Name() string { return "calendar" }

func (s *CalendarSink) Deliver(ctx context.Context, event domain.NotificationEvent) error {
	return s.forwarder.Forward(ctx, event)
}

// QueueSink публикует событие в брокер для внешних потребителей
type QueueSink struct {
	publisher QueuePublisher
}

func NewQueueSink(publisher QueuePublisher) *QueueSink {
	return &QueueSink{publisher: publisher}
}

func (s *QueueSink) Name() string { return "queue" }

func (s *QueueSink) Deliver(ctx context.Context, event domain.NotificationEvent) error {
	return s.publisher.Publish(ctx, event)
}
