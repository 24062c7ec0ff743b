// cache содержит read-through кэш профилей на базе Redis.
// Кэш — строго best-effort: любая его ошибка не должна влиять на
// результат запроса, решение об этом принимает сервисный слой.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-social-network/profile-service/internal/models"
	"github.com/redis/go-redis/v9"
)

// ProfileCache — минимальный контракт кэша профилей.
type ProfileCache interface {
	// Get возвращает профиль и признак его наличия в кэше.
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, bool, error)
	// Set сохраняет профиль с настроенным TTL.
	Set(ctx context.Context, profile *models.Profile) error
	// Invalidate удаляет запись профиля из кэша (вызывается после мутации).
	Invalidate(ctx context.Context, userID uuid.UUID) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "profiles:".
func NewRedisCache(redisURL, prefix string, ttl time.Duration) (ProfileCache, error) {
	if prefix == "" {
		prefix = "profiles:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix, ttl: ttl}, nil
}

func (c *redisCache) key(userID uuid.UUID) string { return c.prefix + userID.String() }

// Храним профиль как JSON-значение с TTL.
func (c *redisCache) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}

		return nil, false, err
	}

	var profile models.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, false, err
	}

	return &profile, true, nil
}

func (c *redisCache) Set(ctx context.Context, profile *models.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, c.key(profile.ID), raw, c.ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, c.key(userID)).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
