package engine

import "fmt"

// Both composite scores start from a neutral base and apply additive
// tier adjustments, then clamp to [0, 100].
const scoreBase = 50

// HealthScorecard represents the additive rule table behind the
// Financial Health Score: profit margin tier, receivables exposure,
// and cash flow strength on top of the neutral base.
type HealthScorecard struct {
	ProfitMarginPts int // +20 / +10 / +5 / -20
	ReceivablesPts  int // +15 / +10 / +5 / -10
	CashFlowPts     int // +15 / +10 / +5 / -15

	// Breakdown for logging
	Breakdown map[string]int
}

// EvaluateHealth scores the overall financial stability of a business
// from its profit margin, receivables estimate, revenue, and expenses.
// Ratios with a zero denominator evaluate to 0, never an error.
func EvaluateHealth(profitMargin, receivables, revenue, expenses float64) *HealthScorecard {
	sc := &HealthScorecard{Breakdown: make(map[string]int)}

	sc.ProfitMarginPts = scoreProfitMarginTier(profitMargin)
	sc.Breakdown["ProfitMargin"] = sc.ProfitMarginPts

	receivablesRatio := 0.0
	if revenue > 0 {
		receivablesRatio = receivables / revenue * 100
	}
	sc.ReceivablesPts = scoreReceivablesExposure(receivablesRatio)
	sc.Breakdown["Receivables"] = sc.ReceivablesPts

	sc.CashFlowPts = scoreCashFlow(revenue-expenses, revenue)
	sc.Breakdown["CashFlow"] = sc.CashFlowPts

	return sc
}

// Total returns the clamped health score.
func (sc *HealthScorecard) Total() int {
	return clampScore(scoreBase + sc.ProfitMarginPts + sc.ReceivablesPts + sc.CashFlowPts)
}

// String returns a formatted breakdown of the scorecard
func (sc *HealthScorecard) String() string {
	return fmt.Sprintf("Health: %d/100 [Margin:%+d, Receivables:%+d, CashFlow:%+d]",
		sc.Total(), sc.ProfitMarginPts, sc.ReceivablesPts, sc.CashFlowPts)
}

// CreditScorecard represents the additive rule table behind the Credit
// Readiness Score: profitability, debt load, and receivables exposure.
type CreditScorecard struct {
	ProfitPts      int // +25 / +15 / +10 / -20
	DebtPts        int // +15 / +10 / +5 / -10
	ReceivablesPts int // +10 / +5 / -5

	// Breakdown for logging
	Breakdown map[string]int
}

// EvaluateCredit scores loan/credit eligibility. A positive net profit
// below the 5% ratio tier earns no bonus at all; that hole in the rule
// table is kept as-is for score compatibility with existing records.
func EvaluateCredit(netProfit, revenue, loanObligations, receivables float64) *CreditScorecard {
	sc := &CreditScorecard{Breakdown: make(map[string]int)}

	sc.ProfitPts = scoreProfitability(netProfit, revenue)
	sc.Breakdown["Profit"] = sc.ProfitPts

	debtRatio := 0.0
	if revenue > 0 {
		debtRatio = loanObligations / revenue * 100
	}
	sc.DebtPts = scoreDebtLoad(debtRatio)
	sc.Breakdown["Debt"] = sc.DebtPts

	receivablesRatio := 0.0
	if revenue > 0 {
		receivablesRatio = receivables / revenue * 100
	}
	sc.ReceivablesPts = scoreCreditReceivables(receivablesRatio)
	sc.Breakdown["Receivables"] = sc.ReceivablesPts

	return sc
}

// Total returns the clamped credit readiness score.
func (sc *CreditScorecard) Total() int {
	return clampScore(scoreBase + sc.ProfitPts + sc.DebtPts + sc.ReceivablesPts)
}

// String returns a formatted breakdown of the scorecard
func (sc *CreditScorecard) String() string {
	return fmt.Sprintf("Credit: %d/100 [Profit:%+d, Debt:%+d, Receivables:%+d]",
		sc.Total(), sc.ProfitPts, sc.DebtPts, sc.ReceivablesPts)
}

// Scoring helper functions

func scoreProfitMarginTier(margin float64) int {
	switch {
	case margin >= 20:
		return 20
	case margin >= 10:
		return 10
	case margin >= 0:
		return 5
	default:
		return -20
	}
}

func scoreReceivablesExposure(ratio float64) int {
	switch {
	case ratio < 10:
		return 15
	case ratio < 20:
		return 10
	case ratio < 30:
		return 5
	default:
		return -10
	}
}

func scoreCashFlow(cashFlow, revenue float64) int {
	if cashFlow <= 0 {
		return -15
	}

	ratio := cashFlow / revenue * 100
	switch {
	case ratio >= 20:
		return 15
	case ratio >= 10:
		return 10
	default:
		return 5
	}
}

func scoreProfitability(netProfit, revenue float64) int {
	if netProfit <= 0 {
		return -20
	}

	ratio := 0.0
	if revenue > 0 {
		ratio = netProfit / revenue * 100
	}
	switch {
	case ratio >= 15:
		return 25
	case ratio >= 10:
		return 15
	case ratio >= 5:
		return 10
	default:
		return 0
	}
}

func scoreDebtLoad(ratio float64) int {
	switch {
	case ratio < 20:
		return 15
	case ratio < 40:
		return 10
	case ratio < 60:
		return 5
	default:
		return -10
	}
}

func scoreCreditReceivables(ratio float64) int {
	switch {
	case ratio < 15:
		return 10
	case ratio < 25:
		return 5
	default:
		return -5
	}
}

// clampScore truncates out-of-range totals to the nearest bound.
func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
