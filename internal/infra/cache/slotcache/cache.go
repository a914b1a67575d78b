package slotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/piste-boss/piste-reserve/internal/domain"
)

// Cache кэширует список занятых интервалов на дату в redis.
// Листинг слотов допускает слегка устаревшие данные (авторитетная
// проверка все равно выполняется при коммите), поэтому короткий TTL
// снимает нагрузку с БД в пиковые часы без риска двойного бронирования.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// ErrCacheMiss возвращается, когда данных по дате в кэше нет
var ErrCacheMiss = errors.New("slotcache: cache miss")

// New создает кэш занятых интервалов
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(date time.Time) string {
	return "slots:active-ranges:" + date.Format(domain.DateFormat)
}

// GetActiveRanges возвращает закэшированные интервалы активных
// бронирований на дату
func (c *Cache) GetActiveRanges(ctx context.Context, date time.Time) ([]domain.TimeRange, error) {
	data, err := c.client.Get(ctx, key(date)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("slotcache: get: %w", err)
	}

	var ranges []domain.TimeRange
	if err := json.Unmarshal(data, &ranges); err != nil {
		return nil, fmt.Errorf("slotcache: unmarshal: %w", err)
	}
	return ranges, nil
}

// SetActiveRanges сохраняет интервалы активных бронирований на дату
func (c *Cache) SetActiveRanges(ctx context.Context, date time.Time, ranges []domain.TimeRange) error {
	data, err := json.Marshal(ranges)
	if err != nil {
		return fmt.Errorf("slotcache: marshal: %w", err)
	}

	if err := c.client.Set(ctx, key(date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("slotcache: set: %w", err)
	}
	return nil
}

// InvalidateDate сбрасывает кэш по дате. Вызывается после коммита
// и отмены бронирования.
func (c *Cache) InvalidateDate(ctx context.Context, date time.Time) error {
	if err := c.client.Del(ctx, key(date)).Err(); err != nil {
		return fmt.Errorf("slotcache: del: %w", err)
	}
	return nil
}
