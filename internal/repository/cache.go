package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/config"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/logging"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

const (
	receiptKeyPrefix = "receipt:"
	defaultCacheTTL  = 10 * time.Minute
)

// RedisReceiptCache implements ReceiptCache using Redis.
type RedisReceiptCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewRedisReceiptCache creates a new Redis-based receipt cache.
func NewRedisReceiptCache(cfg config.RedisConfig) *RedisReceiptCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisReceiptCache{
		client: client,
		ttl:    ttl,
		logger: logging.NewLogger("receipt-cache"),
	}
}

func receiptKey(id string) string {
	return receiptKeyPrefix + id
}

// Get returns nil without error on a cache miss.
func (c *RedisReceiptCache) Get(ctx context.Context, id string) (*models.Receipt, error) {
	data, err := c.client.Get(ctx, receiptKey(id)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", logging.Fields{"receipt_id": id})
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error", logging.Fields{
			"receipt_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}

	var receipt models.Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, err
	}

	c.logger.Debug("Cache hit", logging.Fields{"receipt_id": id})
	return &receipt, nil
}

func (c *RedisReceiptCache) Set(ctx context.Context, receipt *models.Receipt) error {
	data, err := json.Marshal(receipt)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, receiptKey(receipt.ID), data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error", logging.Fields{
			"receipt_id": receipt.ID,
			"error":      err.Error(),
		})
		return err
	}

	c.logger.Debug("Receipt cached", logging.Fields{
		"receipt_id": receipt.ID,
		"ttl":        c.ttl.String(),
	})
	return nil
}

// Ping checks that Redis is reachable.
func (c *RedisReceiptCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool.
func (c *RedisReceiptCache) Close() error {
	return c.client.Close()
}
