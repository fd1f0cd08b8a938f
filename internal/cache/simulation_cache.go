// backend-go/internal/cache/simulation_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sopcenter/backend-go/internal/config"
	"github.com/sopcenter/backend-go/internal/domain"
)

const (
	simulationKeyPrefix     = "simulation:result"
	simulationScanBatchSize = 100
)

// SimulationCache stores simulation results keyed by promo id and store
// subset. Caching is opt-in: the reference behavior re-reads data on every
// call, so the default wiring is the noop implementation.
type SimulationCache interface {
	Get(ctx context.Context, promoID string, stores []string) (*domain.SimulationResult, bool, error)
	Set(ctx context.Context, promoID string, stores []string, result *domain.SimulationResult) error
	InvalidateAll(ctx context.Context) error
}

type redisSimulationCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSimulationCache struct{}

func NewSimulationCache(cfg config.CacheConfig) (SimulationCache, error) {
	if !cfg.Enabled {
		return &noopSimulationCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSimulationCache{client: client, ttl: ttl}, nil
}

func NewNoopSimulationCache() SimulationCache {
	return &noopSimulationCache{}
}

func (c *redisSimulationCache) Get(ctx context.Context, promoID string, stores []string) (*domain.SimulationResult, bool, error) {
	key := buildSimulationKey(promoID, stores)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.SimulationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode simulation cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisSimulationCache) Set(ctx context.Context, promoID string, stores []string, result *domain.SimulationResult) error {
	key := buildSimulationKey(promoID, stores)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode simulation cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSimulationCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, simulationKeyPrefix, simulationScanBatchSize)
}

func (n *noopSimulationCache) Get(ctx context.Context, promoID string, stores []string) (*domain.SimulationResult, bool, error) {
	return nil, false, nil
}

func (n *noopSimulationCache) Set(ctx context.Context, promoID string, stores []string, result *domain.SimulationResult) error {
	return nil
}

func (n *noopSimulationCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSimulationKey(promoID string, stores []string) string {
	return fmt.Sprintf("%s:%s", simulationKeyPrefix, simulationHash(promoID, stores))
}

// simulationHash produces a stable key: store subsets hash identically
// regardless of order, and a nil subset (all stores) is distinct from an
// empty one.
func simulationHash(promoID string, stores []string) string {
	parts := []string{"promo_id=" + strings.TrimSpace(promoID)}

	if stores != nil {
		normalized := make([]string, 0, len(stores))
		for _, s := range stores {
			s = strings.TrimSpace(s)
			if s != "" {
				normalized = append(normalized, s)
			}
		}
		sort.Strings(normalized)
		parts = append(parts, "stores="+strings.Join(normalized, ","))
	}

	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
