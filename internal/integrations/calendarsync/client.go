package calendarsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client пересылает события бронирования во внешний вебхук
// синхронизации календаря (Google Apps Script в проде)
type Client struct {
	webhookURL string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента синхронизации календаря
func NewClient(webhookURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Forward пересылает событие в вебхук календаря.
// События с источником calendar_sync пропускаются: такие записи пришли
// ИЗ календаря, и пересылка обратно зациклила бы синхронизацию.
func (c *Client) Forward(ctx context.Context, event domain.NotificationEvent) error {
	if event.Reservation.Source == domain.SourceCalendarSync {
		c.log.Info("calendarsync: skipping event id=%s, source is calendar_sync", event.ID)
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrForwardFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrForwardFailed, resp.StatusCode, string(respBody))
	}

	c.log.Info("calendarsync: forwarded event id=%s kind=%s reservation=%d",
		event.ID, event.Kind, event.Reservation.ReservationID)
	return nil
}
