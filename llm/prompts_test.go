package llm

import (
	"strings"
	"testing"

	"finpulse/database/models"
)

func sampleMetrics() models.FinancialMetrics {
	return models.FinancialMetrics{
		BusinessID:    "biz-1",
		TotalRevenue:  100000,
		TotalExpenses: 40000,
		NetProfit:     60000,
		ProfitMargin:  60,
		Receivables:   12000,
		Payables:      3200,
	}
}

func TestBuildInsightPromptIncludesFigures(t *testing.T) {
	breakdown := []models.ExpenseCategory{
		{Category: "Salary", Total: 25000},
		{Category: "Rent", Total: 15000},
	}
	prompt := BuildInsightPrompt(sampleMetrics(), breakdown)

	for _, want := range []string{
		"₹100,000",
		"₹40,000",
		"₹60,000",
		"60.0%",
		"Salary: ₹25,000",
		"Rent: ₹15,000",
		`"insights"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestBuildInsightPromptCapsCategories(t *testing.T) {
	breakdown := []models.ExpenseCategory{
		{Category: "Salary", Total: 1},
		{Category: "Rent", Total: 1},
		{Category: "Utilities", Total: 1},
		{Category: "Marketing", Total: 1},
	}
	prompt := BuildInsightPrompt(sampleMetrics(), breakdown)
	if strings.Contains(prompt, "Marketing") {
		t.Error("Expected only the top 3 categories in the prompt")
	}
}

func TestBuildInsightPromptEmptyBreakdown(t *testing.T) {
	prompt := BuildInsightPrompt(sampleMetrics(), nil)
	if !strings.Contains(prompt, "none recorded") {
		t.Error("Expected placeholder for empty expense breakdown")
	}
}

func TestBuildExplanationPromptStatus(t *testing.T) {
	m := sampleMetrics()
	prompt := BuildExplanationPrompt("Financial Health", "Strong", m)
	if !strings.Contains(prompt, "Section: Financial Health") {
		t.Error("Expected section name in prompt")
	}
	if !strings.Contains(prompt, "Cash Flow Status: positive") {
		t.Error("Expected positive cash flow status")
	}

	m.NetProfit = -500
	prompt = BuildExplanationPrompt("Cash Flow", "Weak", m)
	if !strings.Contains(prompt, "Cash Flow Status: negative") {
		t.Error("Expected negative cash flow status")
	}
}

func TestParseInsightsCleanJSON(t *testing.T) {
	content := `{"insights": [
		{"title": "Strong margins", "description": "Margins are healthy.", "insight_type": "expense", "severity": "low"},
		{"title": "Watch receivables", "description": "Receivables are growing.", "insight_type": "receivables", "severity": "medium"}
	]}`

	set, err := ParseInsights(content, "mistral-small-latest")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("Expected 2 insights, got %d", len(set))
	}
	if set[0].Title != "Strong margins" || set[0].Severity != models.SeverityLow {
		t.Errorf("Unexpected first insight: %+v", set[0])
	}
	if set[0].LLMModel != "mistral-small-latest" {
		t.Errorf("Expected model recorded on insight, got %q", set[0].LLMModel)
	}
}

func TestParseInsightsFencedJSON(t *testing.T) {
	content := "Here is the analysis:\n```json\n" +
		`{"insights": [{"title": "T", "description": "D", "insight_type": "cash_flow", "severity": "high"}]}` +
		"\n```\nLet me know if you need more."

	set, err := ParseInsights(content, "m")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(set) != 1 || set[0].InsightType != models.InsightCashFlow {
		t.Errorf("Unexpected result: %+v", set)
	}
}

func TestParseInsightsInvalidFieldsCoerced(t *testing.T) {
	content := `{"insights": [{"title": "T", "description": "D", "insight_type": "bogus", "severity": "apocalyptic"}]}`

	set, err := ParseInsights(content, "m")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if set[0].InsightType != models.InsightExpense {
		t.Errorf("Expected type coerced to expense, got %q", set[0].InsightType)
	}
	if set[0].Severity != models.SeverityMedium {
		t.Errorf("Expected severity coerced to medium, got %q", set[0].Severity)
	}
}

func TestParseInsightsRejectsGarbage(t *testing.T) {
	cases := []string{
		"no json here at all",
		"{}",
		`{"insights": []}`,
		`{"insights": [{"title": "", "description": ""}]}`,
	}
	for _, c := range cases {
		if _, err := ParseInsights(c, "m"); err == nil {
			t.Errorf("Expected error for %q", c)
		}
	}
}
