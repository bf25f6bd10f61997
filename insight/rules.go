// Package insight is the deterministic rule engine that turns
// aggregate financial metrics into qualitative statements. It is the
// always-available fallback for the external LLM insight service and
// every figure in its text comes from the supplied metrics, never from
// a template placeholder.
package insight

import (
	"fmt"

	"finpulse/database/models"
	"finpulse/helpers"
)

// Rule thresholds. Ratios are fractions of revenue unless noted.
const (
	strongCashFlowRatio  = 0.2
	highReceivablesRatio = 0.2
	lowMarginPct         = 10
	excellentMarginPct   = 20
	dominantExpenseShare = 0.3
	creditReadyCashRatio = 0.15
	creditReadyMarginPct = 12
	creditPotentialRatio = 0.05
)

// Generate runs every rule against the metrics and recent transaction
// batch. Rules are independent; each contributes at most one insight.
func Generate(metrics models.FinancialMetrics, transactions []models.Transaction) []models.Insight {
	var insights []models.Insight

	cashFlowRatio := 0.0
	if metrics.TotalRevenue > 0 {
		cashFlowRatio = (metrics.TotalRevenue - metrics.TotalExpenses) / metrics.TotalRevenue
	}
	receivablesRatio := 0.0
	if metrics.TotalRevenue > 0 {
		receivablesRatio = metrics.Receivables / metrics.TotalRevenue
	}
	profitMargin := metrics.ProfitMargin

	insights = append(insights, cashFlowInsight(cashFlowRatio))

	if margin := marginInsight(profitMargin); margin != nil {
		insights = append(insights, *margin)
	}

	if receivablesRatio > highReceivablesRatio {
		insights = append(insights, models.Insight{
			InsightType: models.InsightReceivables,
			Title:       "High Outstanding Receivables",
			Description: fmt.Sprintf(
				"Outstanding receivables represent %s of revenue. Consider implementing stricter payment terms, offering early payment discounts, or using invoice factoring.",
				helpers.FormatPercent(receivablesRatio*100)),
			Severity: models.SeverityMedium,
		})
	}

	if expense := topExpenseInsight(metrics.TotalExpenses, transactions); expense != nil {
		insights = append(insights, *expense)
	}

	if credit := creditInsight(cashFlowRatio, profitMargin); credit != nil {
		insights = append(insights, *credit)
	}

	return insights
}

func cashFlowInsight(ratio float64) models.Insight {
	switch {
	case ratio > strongCashFlowRatio:
		return models.Insight{
			InsightType: models.InsightCashFlow,
			Title:       "Strong Cash Flow Position",
			Description: fmt.Sprintf(
				"Your business maintains healthy cash reserves with a %s net cash flow margin. This indicates excellent financial stability and growth potential.",
				helpers.FormatPercent(ratio*100)),
			Severity: models.SeverityLow,
		}
	case ratio > 0:
		return models.Insight{
			InsightType: models.InsightCashFlow,
			Title:       "Moderate Cash Flow",
			Description: fmt.Sprintf(
				"Your cash flow margin of %s is positive but could be improved. Consider reviewing expenses and optimizing pricing strategies.",
				helpers.FormatPercent(ratio*100)),
			Severity: models.SeverityMedium,
		}
	default:
		return models.Insight{
			InsightType: models.InsightCashFlow,
			Title:       "Cash Flow Concern",
			Description: "Your expenses exceed revenue, creating negative cash flow. Immediate action is needed to reduce costs or increase sales.",
			Severity:    models.SeverityCritical,
		}
	}
}

// marginInsight fires only outside the 10-20% band; margins inside it
// yield no insight.
func marginInsight(margin float64) *models.Insight {
	if margin < lowMarginPct {
		return &models.Insight{
			InsightType: models.InsightExpense,
			Title:       "Profit Margin Below Industry Average",
			Description: fmt.Sprintf(
				"Your profit margin of %s is below the typical industry standard. Review operational expenses, negotiate better supplier rates, and optimize resource allocation.",
				helpers.FormatPercent(margin)),
			Severity: models.SeverityHigh,
		}
	}
	if margin >= excellentMarginPct {
		return &models.Insight{
			InsightType: models.InsightExpense,
			Title:       "Excellent Profit Margins",
			Description: fmt.Sprintf(
				"Your %s profit margin exceeds industry standards. This strong performance indicates efficient operations and good pricing strategy.",
				helpers.FormatPercent(margin)),
			Severity: models.SeverityLow,
		}
	}
	return nil
}

// topExpenseInsight flags the largest expense category when it eats
// more than 30% of total expenses.
func topExpenseInsight(totalExpenses float64, transactions []models.Transaction) *models.Insight {
	if totalExpenses <= 0 {
		return nil
	}

	byCategory := make(map[string]float64)
	for _, t := range transactions {
		if t.Direction == models.DirectionDebit {
			byCategory[t.Category] += t.Amount
		}
	}

	topCategory := ""
	topTotal := 0.0
	for category, total := range byCategory {
		if total > topTotal || (total == topTotal && category < topCategory) {
			topCategory = category
			topTotal = total
		}
	}

	share := topTotal / totalExpenses
	if topCategory == "" || share <= dominantExpenseShare {
		return nil
	}

	return &models.Insight{
		InsightType: models.InsightExpense,
		Title:       fmt.Sprintf("High %s Expenses", topCategory),
		Description: fmt.Sprintf(
			"%s expenses account for %s of total costs (%s). Review and optimize spending in this category for potential savings.",
			topCategory, helpers.FormatPercent(share*100), helpers.FormatRupee(topTotal)),
		Severity: models.SeverityMedium,
	}
}

func creditInsight(cashFlowRatio, margin float64) *models.Insight {
	if cashFlowRatio >= creditReadyCashRatio && margin >= creditReadyMarginPct {
		return &models.Insight{
			InsightType: models.InsightCredit,
			Title:       "Excellent Credit Readiness",
			Description: fmt.Sprintf(
				"Your financial profile indicates strong creditworthiness with a %s cash flow margin and %s profit margin. You may qualify for working capital loans with favorable terms.",
				helpers.FormatPercent(cashFlowRatio*100), helpers.FormatPercent(margin)),
			Severity: models.SeverityLow,
		}
	}
	if cashFlowRatio >= creditPotentialRatio {
		return &models.Insight{
			InsightType: models.InsightCredit,
			Title:       "Good Credit Potential",
			Description: fmt.Sprintf(
				"Your financial metrics show good potential for credit approval at a %s cash flow margin. Maintain consistent payment history and consider building your credit profile for better loan terms.",
				helpers.FormatPercent(cashFlowRatio*100)),
			Severity: models.SeverityMedium,
		}
	}
	return nil
}
