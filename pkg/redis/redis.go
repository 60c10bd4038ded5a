package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flows-notify/pkg/config"
	"flows-notify/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis client with additional functionality
type Client struct {
	client *redis.Client
}

// NewClient creates a new Redis client
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := rdb.Ping(ctx)
	if result.Err() != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", result.Err())
	}

	logger.Info("Connected to Redis successfully")

	return &Client{
		client: rdb,
	}, nil
}

// NewClientFromAddr creates a Redis client for a raw address, used in tests
func NewClientFromAddr(addr string) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Set sets a key-value pair with expiration
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	result := c.client.Set(ctx, key, data, expiration)
	if result.Err() != nil {
		return fmt.Errorf("failed to set key: %w", result.Err())
	}

	return nil
}

// Get gets a value by key
func (c *Client) Get(ctx context.Context, key string, dest interface{}) error {
	result := c.client.Get(ctx, key)
	if result.Err() != nil {
		if result.Err() == redis.Nil {
			return fmt.Errorf("key not found: %s", key)
		}
		return fmt.Errorf("failed to get key: %w", result.Err())
	}

	data, err := result.Bytes()
	if err != nil {
		return fmt.Errorf("failed to get bytes: %w", err)
	}

	err = json.Unmarshal(data, dest)
	if err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return nil
}

// Delete deletes a key
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	result := c.client.Del(ctx, keys...)
	if result.Err() != nil {
		return fmt.Errorf("failed to delete keys: %w", result.Err())
	}

	return nil
}

// SetNX sets a key only if it doesn't exist
func (c *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	result := c.client.SetNX(ctx, key, value, expiration)
	if result.Err() != nil {
		return false, fmt.Errorf("failed to set key if not exists: %w", result.Err())
	}
	return result.Val(), nil
}

// Expire sets expiration for a key
func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) error {
	result := c.client.Expire(ctx, key, expiration)
	if result.Err() != nil {
		return fmt.Errorf("failed to set expiration: %w", result.Err())
	}
	return nil
}
