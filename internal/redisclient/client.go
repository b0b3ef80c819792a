package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"product-store/internal/models"

	"github.com/go-redis/redis/v8"
)

// Client caches catalog entities as JSON under short TTLs. Writes go to
// Postgres first; the cache is invalidated after every rating fold, both
// locally and by the event worker on other replicas.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func productKey(id int64) string { return fmt.Sprintf("product:%d", id) }
func storeKey(id int64) string   { return fmt.Sprintf("store:%d", id) }

// GetProduct returns a cached product, or nil on miss
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("corrupt cached product %d: %w", id, err)
	}
	return &product, nil
}

// SetProduct caches a product with the configured TTL
func (c *Client) SetProduct(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKey(product.ID), data, c.ttl).Err()
}

// InvalidateProduct drops a cached product
func (c *Client) InvalidateProduct(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, productKey(id)).Err()
}

// GetStore returns a cached store, or nil on miss
func (c *Client) GetStore(ctx context.Context, id int64) (*models.Store, error) {
	data, err := c.rdb.Get(ctx, storeKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var store models.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("corrupt cached store %d: %w", id, err)
	}
	return &store, nil
}

// SetStore caches a store with the configured TTL
func (c *Client) SetStore(ctx context.Context, store *models.Store) error {
	data, err := json.Marshal(store)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, storeKey(store.ID), data, c.ttl).Err()
}

// InvalidateStore drops a cached store
func (c *Client) InvalidateStore(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, storeKey(id)).Err()
}
