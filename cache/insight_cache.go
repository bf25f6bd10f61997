package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"finpulse/database/models"
)

// InsightCache stores LLM-generated insights and explanations keyed by
// a hash of the metrics that produced them, so a recomputation with
// identical numbers never pays for a second LLM call. Entries expire
// with a TTL instead of living in an unbounded map.
type InsightCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewInsightCache creates a new insight cache instance
func NewInsightCache(redis *RedisClient, ttl time.Duration) *InsightCache {
	return &InsightCache{
		redis: redis,
		ttl:   ttl,
	}
}

// GetInsights retrieves cached LLM insights for a business.
// Returns the cached set and true if found, nil and false otherwise.
func (c *InsightCache) GetInsights(ctx context.Context, businessID, dataHash string) ([]models.Insight, bool) {
	if c.redis == nil {
		return nil, false
	}

	cacheKey := fmt.Sprintf("llm:insights:%s:%s", businessID, dataHash)
	var set []models.Insight

	if err := c.redis.Get(ctx, cacheKey, &set); err != nil {
		return nil, false
	}

	return set, true
}

// SetInsights caches an LLM insight set for a business.
func (c *InsightCache) SetInsights(ctx context.Context, businessID, dataHash string, set []models.Insight) error {
	if c.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	cacheKey := fmt.Sprintf("llm:insights:%s:%s", businessID, dataHash)
	return c.redis.Set(ctx, cacheKey, set, c.ttl)
}

// DeleteInsights removes a cached insight set. Used when the set could
// not be persisted, so the cache never holds insights the database
// does not.
func (c *InsightCache) DeleteInsights(ctx context.Context, businessID, dataHash string) error {
	if c.redis == nil {
		return nil
	}

	cacheKey := fmt.Sprintf("llm:insights:%s:%s", businessID, dataHash)
	return c.redis.Delete(ctx, cacheKey)
}

// GetExplanation retrieves a cached section explanation.
func (c *InsightCache) GetExplanation(ctx context.Context, businessID, section, dataHash string) (string, bool) {
	if c.redis == nil {
		return "", false
	}

	cacheKey := fmt.Sprintf("llm:explain:%s:%s:%s", businessID, section, dataHash)
	var text string

	if err := c.redis.Get(ctx, cacheKey, &text); err != nil {
		return "", false
	}

	return text, true
}

// SetExplanation caches a section explanation.
func (c *InsightCache) SetExplanation(ctx context.Context, businessID, section, dataHash, text string) error {
	if c.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	cacheKey := fmt.Sprintf("llm:explain:%s:%s:%s", businessID, section, dataHash)
	return c.redis.Set(ctx, cacheKey, text, c.ttl)
}

// GenerateDataHash creates a hash from metrics data to detect whether
// the numbers behind a cached entry changed
func GenerateDataHash(data interface{}) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return fmt.Sprintf("%x", hash[:8]) // Use first 8 bytes for shorter hash
}
