package linemessaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент LINE Messaging API (push-сообщения).
// В пакете нет SDK-зависимости: оригинальный сервис ходит напрямую
// в REST endpoint, клиент повторяет это поведение.
type Client struct {
	baseURL      string
	channelToken string
	httpClient   *http.Client
	log          Logger
}

// NewClient создает новый экземпляр клиента LINE Messaging API
func NewClient(baseURL, channelToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:      baseURL,
		channelToken: channelToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// PushText отправляет текстовое push-сообщение пользователю LINE
func (c *Client) PushText(ctx context.Context, lineUserID, text string) error {
	url := c.baseURL + "/v2/bot/message/push"

	body, err := json.Marshal(pushRequest{
		To:       lineUserID,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrPushFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("LINE push sent to user=%s", lineUserID)
	return nil
}
