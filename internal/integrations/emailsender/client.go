package emailsender

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ErrSendFailed возвращается, когда почтовый провайдер отклонил отправку
var ErrSendFailed = errors.New("emailsender: send failed")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client отправляет транзакционные письма через Resend
type Client struct {
	client *resend.Client
	from   string
	log    Logger
}

// NewClient создает нового отправителя писем
func NewClient(apiKey, from string, log Logger) *Client {
	return &Client{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

// SendText отправляет текстовое письмо одному получателю
func (c *Client) SendText(ctx context.Context, to, subject, text string) error {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Text:    text,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSendFailed, to, err)
	}

	c.log.Info("emailsender: sent message id=%s to=%s", sent.Id, to)
	return nil
}
