package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	salonCacheName = "salon"
	salonKeyPrefix = "salon:profile:"

	invalidateAttempts   = 3
	invalidateRetryDelay = 50 * time.Millisecond
)

// SalonCache кеширует профили салонов в Redis (cache-aside)
// Ошибки Redis не ломают запрос: читаем из базы и пишем предупреждение в лог
// Салон, ключ которого не удалось сбросить после обновления, читается мимо кеша,
// пока удаление ключа не пройдёт
type SalonCache struct {
	next       SalonRepository
	redis      redis.UniversalClient
	ttl        time.Duration
	metrics    Metrics
	logger     Logger
	retryDelay time.Duration

	mu    sync.Mutex
	stale map[uuid.UUID]struct{}
}

// NewSalonCache оборачивает репозиторий салонов
func NewSalonCache(next SalonRepository, client redis.UniversalClient, ttl time.Duration, metrics Metrics, logger Logger) *SalonCache {
	return &SalonCache{
		next:       next,
		redis:      client,
		ttl:        ttl,
		metrics:    metrics,
		logger:     logger,
		retryDelay: invalidateRetryDelay,
		stale:      make(map[uuid.UUID]struct{}),
	}
}

// Create регистрирует салон, кеш заполняется при первом чтении
func (c *SalonCache) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	return c.next.Create(ctx, salon)
}

// GetByID получает салон из кеша, при промахе - из репозитория
func (c *SalonCache) GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error) {
	key := salonKey(id)

	// Устаревший ключ: сначала пробуем его сбросить, иначе идём в базу без кеша
	if c.isStale(id) {
		if !c.invalidate(ctx, id, 1) {
			return c.next.GetByID(ctx, id)
		}
	}

	if salon, ok := c.read(ctx, key); ok {
		return salon, nil
	}

	salon, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.write(ctx, key, salon)
	return salon, nil
}

// UpdateSchedule обновляет расписание и сбрасывает кеш салона
func (c *SalonCache) UpdateSchedule(ctx context.Context, id uuid.UUID, schedule domain.WeeklySchedule) error {
	if err := c.next.UpdateSchedule(ctx, id, schedule); err != nil {
		return err
	}

	c.invalidate(ctx, id, invalidateAttempts)
	return nil
}

// invalidate удаляет ключ салона с повторами
// Если Redis так и не ответил, салон помечается устаревшим до успешного удаления
func (c *SalonCache) invalidate(ctx context.Context, id uuid.UUID, attempts int) bool {
	key := salonKey(id)

	var err error
	for attempt := 1; ; attempt++ {
		if err = c.redis.Del(ctx, key).Err(); err == nil {
			c.markStale(id, false)
			return true
		}
		if attempt >= attempts || ctx.Err() != nil {
			break
		}

		select {
		case <-ctx.Done():
		case <-time.After(c.retryDelay * time.Duration(attempt)):
		}
	}

	c.inc("invalidate_error")
	c.logger.Warn("SalonCache: failed to invalidate salon=%s, reading it past the cache: %v", id, err)
	c.markStale(id, true)
	return false
}

func (c *SalonCache) isStale(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.stale[id]
	return ok
}

func (c *SalonCache) markStale(id uuid.UUID, stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stale {
		c.stale[id] = struct{}{}
		return
	}
	delete(c.stale, id)
}

func (c *SalonCache) read(ctx context.Context, key string) (*domain.Salon, bool) {
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.inc("miss")
		} else {
			c.inc("error")
			c.logger.Warn("SalonCache: get %s: %v", key, err)
		}
		return nil, false
	}

	var salon domain.Salon
	if err := json.Unmarshal(val, &salon); err != nil {
		c.inc("error")
		c.logger.Warn("SalonCache: decode %s: %v", key, err)
		return nil, false
	}

	c.inc("hit")
	return &salon, true
}

func (c *SalonCache) write(ctx context.Context, key string, salon *domain.Salon) {
	data, err := json.Marshal(salon)
	if err != nil {
		c.logger.Warn("SalonCache: encode %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("SalonCache: set %s: %v", key, err)
	}
}

func (c *SalonCache) inc(result string) {
	if c.metrics != nil {
		c.metrics.IncCache(salonCacheName, result)
	}
}

func salonKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", salonKeyPrefix, id)
}
