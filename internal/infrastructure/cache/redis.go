package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sangkips/shopdesk-pos/internal/config"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/repository"
)

// Catalog cache keys
const (
	ProductKeyPrefix = "catalog:product:"
	ProductsKey      = "catalog:products"
)

// NewRedisClient connects to Redis. It returns nil when no address is
// configured or the server does not answer, and callers run uncached.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis unavailable at %s, catalog cache disabled: %v", cfg.Addr, err)
		client.Close()
		return nil
	}
	log.Printf("Connected to Redis at %s", cfg.Addr)
	return client
}

type productCache struct {
	client *redis.Client
}

// NewProductCache creates a catalog cache. A nil client makes every lookup
// a miss and every write a no-op.
func NewProductCache(client *redis.Client) repository.ProductCache {
	return &productCache{client: client}
}

func (c *productCache) GetProduct(ctx context.Context, id string) (*entity.Product, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, ProductKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}
	var p entity.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *productCache) SetProduct(ctx context.Context, p *entity.Product, ttl time.Duration) {
	if c.client == nil || p == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	c.client.Set(ctx, ProductKeyPrefix+p.ID, data, ttl)
}

func (c *productCache) GetProducts(ctx context.Context) ([]entity.Product, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, ProductsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *productCache) SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	c.client.Set(ctx, ProductsKey, data, ttl)
}

// Invalidate drops the catalog list and every cached product.
func (c *productCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	keys := []string{ProductsKey}
	iter := c.client.Scan(ctx, 0, ProductKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	c.client.Del(ctx, keys...)
}
