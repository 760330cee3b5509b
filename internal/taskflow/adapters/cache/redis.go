// Package cache содержит кэш профилей пользователей в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/cache"
	"taskflow/internal/taskflow/resilience"
	"taskflow/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet   = "UserCache.Get"
	LogMethodSet   = "UserCache.Set"
	LogMethodClose = "UserCache.Close"

	ErrorFailedToGet    = "failed to get user from redis"
	ErrorFailedToSet    = "failed to set user in redis"
	ErrorFailedToDecode = "failed to decode cached user"
	ErrorFailedToEncode = "failed to encode user"
	ErrorFailedToClose  = "failed to close redis connection"

	keyPrefix = "taskflow:user:"
)

// LookupRecorder учитывает результаты обращений к кэшу.
type LookupRecorder interface {
	CacheLookup(result string)
}

// cachedUser - представление пользователя в кэше. Хэш пароля не хранится.
type cachedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// RedisUserCache реализует cache.UserCache.
type RedisUserCache struct {
	client   *redis.Client
	ttl      time.Duration
	guard    *resilience.ServiceResilience
	recorder LookupRecorder
}

// NewRedisUserCache создает кэш пользователей поверх готового клиента.
func NewRedisUserCache(
	client *redis.Client,
	ttl time.Duration,
	guard *resilience.ServiceResilience,
	recorder LookupRecorder,
) cache.UserCache {
	return &RedisUserCache{
		client:   client,
		ttl:      ttl,
		guard:    guard,
		recorder: recorder,
	}
}

func userKey(userID string) string {
	return keyPrefix + userID
}

func (c *RedisUserCache) record(result string) {
	if c.recorder != nil {
		c.recorder.CacheLookup(result)
	}
}

func (c *RedisUserCache) execute(ctx context.Context, op string, fn func() error) error {
	if c.guard == nil {
		return fn()
	}
	return c.guard.ExecuteWithResilience(ctx, op, fn)
}

// Get возвращает профиль из кэша. Промах дает (nil, nil).
func (c *RedisUserCache) Get(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("userID", userID))

	var raw []byte
	err := c.execute(ctx, "get", func() error {
		value, err := c.client.Get(ctx, userKey(userID)).Bytes()
		if errors.Is(err, redis.Nil) {
			raw = nil
			return nil
		}
		if err != nil {
			return err
		}
		raw = value
		return nil
	})
	if err != nil {
		c.record("error")
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	if raw == nil {
		c.record("miss")
		return nil, nil
	}

	var cached cachedUser
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.record("error")
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	c.record("hit")
	return &entities.User{
		ID:        cached.ID,
		Name:      cached.Name,
		Email:     cached.Email,
		CreatedAt: cached.CreatedAt,
	}, nil
}

// Set сохраняет профиль пользователя с настроенным временем жизни.
func (c *RedisUserCache) Set(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("userID", user.ID))

	raw, err := json.Marshal(cachedUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	err = c.execute(ctx, "set", func() error {
		return c.client.Set(ctx, userKey(user.ID), raw, c.ttl).Err()
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisUserCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
