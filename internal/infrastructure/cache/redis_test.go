package cache

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/config"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
)

func TestNewRedisClientWithoutAddress(t *testing.T) {
	if client := NewRedisClient(&config.RedisConfig{}); client != nil {
		t.Fatalf("expected nil client without address")
	}
}

func TestProductCacheWithoutClientIsPassThrough(t *testing.T) {
	cache := NewProductCache(nil)
	ctx := context.Background()

	cache.SetProduct(ctx, &entity.Product{ID: "p1"}, time.Minute)
	cache.SetProducts(ctx, []entity.Product{{ID: "p1"}}, time.Minute)
	cache.Invalidate(ctx)

	if _, ok := cache.GetProduct(ctx, "p1"); ok {
		t.Errorf("expected miss from disabled cache")
	}
	if _, ok := cache.GetProducts(ctx); ok {
		t.Errorf("expected miss from disabled cache")
	}
}
