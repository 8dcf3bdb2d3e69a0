// Package cache fournit le cache Redis court-terme du résumé dashboard.
// Quand Redis n'est pas configuré, un no-op prend la place et chaque requête
// recalcule le résumé.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/application/reports"
	"github.com/ramzib/dukan-pos/pkg/config"
)

const (
	summaryKeyPrefix  = "dashboard:summary:"
	defaultSummaryTTL = time.Minute
)

// Vérifie que les deux implémentations couvrent le port.
var (
	_ reports.SummaryCache = (*redisSummaryCache)(nil)
	_ reports.SummaryCache = (*noopSummaryCache)(nil)
)

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

// NewSummaryCache construit le cache selon la configuration: Redis si activé,
// sinon le no-op. Un ping échoué à l'ouverture est une erreur franche.
func NewSummaryCache(cfg config.CacheConfig) (reports.SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := time.Duration(cfg.DashboardTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &redisSummaryCache{client: client, ttl: ttl}, nil
}

// NewNoopSummaryCache renvoie un cache inerte (tests, Redis désactivé).
func NewNoopSummaryCache() reports.SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, bool, error) {
	payload, err := c.client.Get(ctx, summaryKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var summary dto.DashboardSummaryDTO
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode dashboard summary: %w", err)
	}
	return &summary, true, nil
}

func (c *redisSummaryCache) SetSummary(ctx context.Context, userID string, summary *dto.DashboardSummaryDTO) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode dashboard summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKeyPrefix+userID, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, summaryKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (noopSummaryCache) GetSummary(context.Context, string) (*dto.DashboardSummaryDTO, bool, error) {
	return nil, false, nil
}

func (noopSummaryCache) SetSummary(context.Context, string, *dto.DashboardSummaryDTO) error {
	return nil
}

func (noopSummaryCache) Invalidate(context.Context, string) error {
	return nil
}
