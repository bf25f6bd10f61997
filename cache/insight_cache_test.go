package cache

import (
	"context"
	"testing"

	"finpulse/database/models"
)

func TestGenerateDataHashStable(t *testing.T) {
	m := models.FinancialMetrics{
		BusinessID:   "biz-1",
		TotalRevenue: 100000,
		NetProfit:    60000,
		ProfitMargin: 60,
	}

	a := GenerateDataHash(m)
	b := GenerateDataHash(m)
	if a != b {
		t.Errorf("Hash not stable for identical input: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("Expected 16 hex chars, got %d (%q)", len(a), a)
	}
}

func TestGenerateDataHashChangesWithData(t *testing.T) {
	m := models.FinancialMetrics{BusinessID: "biz-1", TotalRevenue: 100000}
	a := GenerateDataHash(m)

	m.TotalRevenue = 100001
	b := GenerateDataHash(m)
	if a == b {
		t.Error("Expected hash to change when metrics change")
	}
}

func TestInsightCacheNilRedis(t *testing.T) {
	c := NewInsightCache(nil, 0)
	ctx := context.Background()

	if _, ok := c.GetInsights(ctx, "biz-1", "hash"); ok {
		t.Error("Expected cache miss with nil redis")
	}
	if err := c.SetInsights(ctx, "biz-1", "hash", nil); err == nil {
		t.Error("Expected error setting insights with nil redis")
	}
	if _, ok := c.GetExplanation(ctx, "biz-1", "health", "hash"); ok {
		t.Error("Expected cache miss with nil redis")
	}
	if err := c.DeleteInsights(ctx, "biz-1", "hash"); err != nil {
		t.Errorf("Expected invalidation to no-op with nil redis, got %v", err)
	}
	if err := c.SetExplanation(ctx, "biz-1", "health", "hash", "text"); err == nil {
		t.Error("Expected error setting explanation with nil redis")
	}
}
