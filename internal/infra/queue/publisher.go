package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// ErrPublishFailed возвращается при любой ошибке публикации события
var ErrPublishFailed = errors.New("queue: publish failed")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирования в RabbitMQ.
// Сообщения persistent, exchange типа topic: потребители (аналитика,
// внешние интеграции) подписываются на reservation.created /
// reservation.cancelled независимо друг от друга.
type Publisher struct {
	url      string
	exchange string
	log      Logger
}

// NewPublisher создает publisher событий бронирования
func NewPublisher(url, exchange string, log Logger) *Publisher {
	return &Publisher{url: url, exchange: exchange, log: log}
}

// routingKey строит ключ маршрутизации по виду события
func routingKey(kind domain.EventKind) string {
	return "reservation." + string(kind)
}

// Publish публикует событие. Соединение открывается на каждую публикацию:
// частота событий - единицы в минуту, пул соединений того не стоит.
func (p *Publisher) Publish(ctx context.Context, event domain.NotificationEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrPublishFailed, err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("%w: channel: %v", ErrPublishFailed, err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare, durable - события переживают рестарт брокера
	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	); err != nil {
		return fmt.Errorf("%w: exchange declare: %v", ErrPublishFailed, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublishFailed, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		p.exchange,
		routingKey(event.Kind),
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		return fmt.Errorf("%w: publish: %v", ErrPublishFailed, err)
	}

	p.log.Info("queue: published event id=%s key=%s", event.ID, routingKey(event.Kind))
	return nil
}
