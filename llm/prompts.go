package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"finpulse/database/models"
	"finpulse/helpers"
)

const maxTopCategories = 3

// BuildInsightPrompt renders the structured financial context for the
// insight generation call. The LLM is a one-way data consumer: nothing
// it returns feeds back into the deterministic pipeline.
func BuildInsightPrompt(m models.FinancialMetrics, breakdown []models.ExpenseCategory) string {
	cashFlowRatio := 0.0
	receivablesRatio := 0.0
	if m.TotalRevenue > 0 {
		cashFlowRatio = (m.TotalRevenue - m.TotalExpenses) / m.TotalRevenue * 100
		receivablesRatio = m.Receivables / m.TotalRevenue * 100
	}

	top := make([]string, 0, maxTopCategories)
	for i, c := range breakdown {
		if i >= maxTopCategories {
			break
		}
		top = append(top, fmt.Sprintf("%s: %s", c.Category, helpers.FormatRupee(c.Total)))
	}
	if len(top) == 0 {
		top = append(top, "none recorded")
	}

	var b strings.Builder
	b.WriteString("Analyze the following financial data and provide 4-6 specific, actionable insights.\n\n")
	b.WriteString("Financial Data:\n")
	fmt.Fprintf(&b, "- Total Revenue: %s\n", helpers.FormatRupee(m.TotalRevenue))
	fmt.Fprintf(&b, "- Total Expenses: %s\n", helpers.FormatRupee(m.TotalExpenses))
	fmt.Fprintf(&b, "- Net Profit: %s\n", helpers.FormatRupee(m.NetProfit))
	fmt.Fprintf(&b, "- Profit Margin: %s\n", helpers.FormatPercent(m.ProfitMargin))
	fmt.Fprintf(&b, "- Outstanding Receivables: %s (%s of revenue)\n",
		helpers.FormatRupee(m.Receivables), helpers.FormatPercent(receivablesRatio))
	fmt.Fprintf(&b, "- Outstanding Payables: %s\n", helpers.FormatRupee(m.Payables))
	fmt.Fprintf(&b, "- Cash Flow Ratio: %s\n", helpers.FormatPercent(cashFlowRatio))
	fmt.Fprintf(&b, "- Top Expense Categories: %s\n", strings.Join(top, ", "))
	b.WriteString(`
For each insight, provide:
1. A specific title (5-10 words)
2. A detailed description (2-3 sentences with specific numbers and recommendations)
3. The type: "cash_flow", "expense", "credit", or "receivables"
4. Severity: "low" (positive), "medium" (needs attention), "high" (important), or "critical" (urgent)

Return ONLY valid JSON in this exact format:
{
  "insights": [
    {
      "title": "string",
      "description": "string",
      "insight_type": "string",
      "severity": "string"
    }
  ]
}`)

	return b.String()
}

// BuildExplanationPrompt renders the context for a section explanation
// request (e.g. "Financial Health" / "Negative").
func BuildExplanationPrompt(section, status string, m models.FinancialMetrics) string {
	cashFlowStatus := "neutral"
	if m.NetProfit > 0 {
		cashFlowStatus = "positive"
	} else if m.NetProfit < 0 {
		cashFlowStatus = "negative"
	}

	receivablesRatio := 0.0
	payablesRatio := 0.0
	if m.TotalRevenue > 0 {
		receivablesRatio = m.Receivables / m.TotalRevenue * 100
	}
	if m.TotalExpenses > 0 {
		payablesRatio = m.Payables / m.TotalExpenses * 100
	}

	var b strings.Builder
	b.WriteString("Explain the following financial assessment.\n\n")
	fmt.Fprintf(&b, "Section: %s\nStatus: %s\n\n", section, status)
	b.WriteString("Metrics:\n")
	fmt.Fprintf(&b, "- Total Revenue: %s\n", helpers.FormatRupee(m.TotalRevenue))
	fmt.Fprintf(&b, "- Total Expenses: %s\n", helpers.FormatRupee(m.TotalExpenses))
	fmt.Fprintf(&b, "- Net Profit: %s\n", helpers.FormatRupee(m.NetProfit))
	fmt.Fprintf(&b, "- Profit Margin: %s\n", helpers.FormatPercent(m.ProfitMargin))
	fmt.Fprintf(&b, "- Cash Flow Status: %s\n", cashFlowStatus)
	fmt.Fprintf(&b, "- Receivables Ratio: %s\n", helpers.FormatPercent(receivablesRatio))
	fmt.Fprintf(&b, "- Payables Ratio: %s\n", helpers.FormatPercent(payablesRatio))
	b.WriteString(`
Tasks:
1. Explain WHY this status occurred (2-3 sentences)
2. Explain WHAT risk or opportunity it creates (2-3 sentences)
3. Give 3 specific, practical improvement actions`)

	return b.String()
}

// insightEnvelope matches the JSON the prompt demands from the model.
type insightEnvelope struct {
	Insights []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		InsightType string `json:"insight_type"`
		Severity    string `json:"severity"`
	} `json:"insights"`
}

var validSeverities = map[string]bool{
	models.SeverityLow:      true,
	models.SeverityMedium:   true,
	models.SeverityHigh:     true,
	models.SeverityCritical: true,
}

var validTypes = map[string]bool{
	models.InsightCashFlow:    true,
	models.InsightExpense:     true,
	models.InsightCredit:      true,
	models.InsightReceivables: true,
}

// ParseInsights extracts the insights array from a model response.
// Models wrap JSON in prose or code fences often enough that the
// parser takes the outermost brace pair rather than trusting the whole
// body.
func ParseInsights(content, model string) ([]models.Insight, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var envelope insightEnvelope
	if err := json.Unmarshal([]byte(content[start:end+1]), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse insights JSON: %w", err)
	}
	if len(envelope.Insights) == 0 {
		return nil, fmt.Errorf("response contained no insights")
	}

	set := make([]models.Insight, 0, len(envelope.Insights))
	for _, in := range envelope.Insights {
		if in.Title == "" || in.Description == "" {
			continue
		}
		severity := in.Severity
		if !validSeverities[severity] {
			severity = models.SeverityMedium
		}
		insightType := in.InsightType
		if !validTypes[insightType] {
			insightType = models.InsightExpense
		}
		set = append(set, models.Insight{
			Title:       in.Title,
			Description: in.Description,
			InsightType: insightType,
			Severity:    severity,
			LLMModel:    model,
		})
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("response contained no usable insights")
	}
	return set, nil
}
