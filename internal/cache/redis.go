package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options параметры подключения к Redis
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache снимки месяцев в Redis в виде JSON
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache оборачивает готовый клиент
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Connect подключается к Redis. Пустой адрес или недоступный сервер дают Noop.
func Connect(ctx context.Context, opts Options, logger *zap.Logger) (MonthCache, func() error) {
	if opts.Addr == "" {
		logger.Warn("REDIS_ADDR not set, month cache disabled")
		return Noop{}, func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis, month cache disabled", zap.String("addr", opts.Addr), zap.Error(err))
		_ = client.Close()
		return Noop{}, func() error { return nil }
	}

	logger.Info("Connected to Redis", zap.String("addr", opts.Addr), zap.Duration("ttl", opts.TTL))
	return NewRedisCache(client, opts.TTL), client.Close
}

func (c *RedisCache) Get(ctx context.Context, month model.Date) ([]model.Reservation, bool, error) {
	raw, err := c.client.Get(ctx, MonthKey(month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get month snapshot: %w", err)
	}

	var reservations []model.Reservation
	if err := json.Unmarshal(raw, &reservations); err != nil {
		return nil, false, fmt.Errorf("decode month snapshot: %w", err)
	}

	return reservations, true, nil
}

func (c *RedisCache) Set(ctx context.Context, month model.Date, reservations []model.Reservation) error {
	if reservations == nil {
		reservations = []model.Reservation{}
	}

	raw, err := json.Marshal(reservations)
	if err != nil {
		return fmt.Errorf("encode month snapshot: %w", err)
	}

	if err := c.client.Set(ctx, MonthKey(month), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set month snapshot: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, month model.Date) error {
	if err := c.client.Del(ctx, MonthKey(month)).Err(); err != nil {
		return fmt.Errorf("invalidate month snapshot: %w", err)
	}
	return nil
}
