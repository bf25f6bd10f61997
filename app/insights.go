package app

import (
	"context"
	"log"
	"sort"
	"time"

	"finpulse/cache"
	"finpulse/database"
	"finpulse/database/insights"
	"finpulse/database/models"
	"finpulse/llm"
)

const llmCallTimeout = 30 * time.Second

// InsightService owns the best-effort LLM enrichment: richer insight
// text and on-demand section explanations. Every call degrades to the
// deterministic output when the LLM or Redis is unavailable.
type InsightService struct {
	db        *database.Database
	llmClient *llm.Client
	insCache  *cache.InsightCache
}

// NewInsightService creates a new insight service. llmClient may be
// nil, which disables enrichment entirely.
func NewInsightService(db *database.Database, llmClient *llm.Client, insCache *cache.InsightCache) *InsightService {
	return &InsightService{
		db:        db,
		llmClient: llmClient,
		insCache:  insCache,
	}
}

// EnrichInsights asks the LLM for richer insights and replaces the
// stored rule-based set on success. Called from a goroutine after the
// pipeline commits; all failures are soft.
func (s *InsightService) EnrichInsights(businessID string, m models.FinancialMetrics, batch []models.Transaction) {
	if s.llmClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), llmCallTimeout)
	defer cancel()

	dataHash := cache.GenerateDataHash(m)

	var set []models.Insight
	if cached, ok := s.insCache.GetInsights(ctx, businessID, dataHash); ok {
		set = cached
	} else {
		prompt := llm.BuildInsightPrompt(m, expenseBreakdown(batch, m.TotalExpenses))

		content, err := s.llmClient.Analyze(ctx, prompt)
		if err != nil {
			log.Printf("⚠️  LLM insight generation failed for %s, keeping rule-based insights: %v", businessID, err)
			return
		}

		set, err = llm.ParseInsights(content, s.llmClient.Model())
		if err != nil {
			log.Printf("⚠️  LLM insight response unusable for %s, keeping rule-based insights: %v", businessID, err)
			return
		}

		if err := s.insCache.SetInsights(ctx, businessID, dataHash, set); err != nil {
			log.Printf("⚠️  Failed to cache LLM insights for %s: %v", businessID, err)
		}
	}

	if err := insights.NewRepository(s.db.DB()).Replace(businessID, set); err != nil {
		log.Printf("⚠️  Failed to store LLM insights for %s: %v", businessID, err)
		// Drop the cache entry so the next run regenerates instead of
		// serving a set the database never accepted.
		if delErr := s.insCache.DeleteInsights(ctx, businessID, dataHash); delErr != nil {
			log.Printf("⚠️  Failed to invalidate insight cache for %s: %v", businessID, delErr)
		}
		return
	}
	log.Printf("✨ Stored %d LLM insights for %s", len(set), businessID)
}

// ExplainSection returns a natural-language explanation for one
// dashboard section, cached by the metrics that produced it. The
// fallback string keeps the endpoint functional without an LLM.
func (s *InsightService) ExplainSection(ctx context.Context, businessID, section, status string, m models.FinancialMetrics) (string, error) {
	dataHash := cache.GenerateDataHash(m)

	if s.insCache != nil {
		if cached, ok := s.insCache.GetExplanation(ctx, businessID, section, dataHash); ok {
			return cached, nil
		}
	}

	if s.llmClient == nil {
		return "Explanations are temporarily unavailable. The scores above are computed directly from your uploaded transactions.", nil
	}

	prompt := llm.BuildExplanationPrompt(section, status, m)
	text, err := s.llmClient.Analyze(ctx, prompt)
	if err != nil {
		return "", err
	}

	if s.insCache != nil {
		if err := s.insCache.SetExplanation(ctx, businessID, section, dataHash, text); err != nil {
			log.Printf("⚠️  Failed to cache explanation for %s/%s: %v", businessID, section, err)
		}
	}

	return text, nil
}

// expenseBreakdown computes per-category debit totals from the
// in-memory batch, largest first, for the LLM prompt.
func expenseBreakdown(batch []models.Transaction, totalExpenses float64) []models.ExpenseCategory {
	byCategory := make(map[string]float64)
	for _, t := range batch {
		if t.Direction == models.DirectionDebit {
			byCategory[t.Category] += t.Amount
		}
	}

	breakdown := make([]models.ExpenseCategory, 0, len(byCategory))
	for category, total := range byCategory {
		share := 0.0
		if totalExpenses > 0 {
			share = total / totalExpenses * 100
		}
		breakdown = append(breakdown, models.ExpenseCategory{
			Category: category,
			Total:    total,
			SharePct: share,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total != breakdown[j].Total {
			return breakdown[i].Total > breakdown[j].Total
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown
}
