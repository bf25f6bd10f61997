package engine

import (
	"math"
	"time"

	"finpulse/database/models"
)

// Fixed-ratio estimates standing in for real receivables/payables
// ledgers, which this system does not hold.
const (
	receivablesRatio = 0.12
	payablesRatio    = 0.08
	loanRatio        = 0.15
)

// Aggregate reduces a transaction batch to one FinancialMetrics record.
// Every figure is a commutative reduction, so transaction order never
// affects the output. An empty batch yields zero aggregates with both
// period bounds set to now.
func Aggregate(transactions []models.Transaction, businessID string, now time.Time) models.FinancialMetrics {
	var totalRevenue, totalExpenses float64
	for _, t := range transactions {
		if t.Direction == models.DirectionCredit {
			totalRevenue += t.Amount
		} else {
			totalExpenses += t.Amount
		}
	}

	receivables := math.Floor(totalRevenue * receivablesRatio)
	payables := math.Floor(totalExpenses * payablesRatio)
	loanObligations := math.Floor(totalRevenue * loanRatio)

	netProfit := totalRevenue - totalExpenses

	// Scores consume the raw margin; only the stored figure is rounded.
	profitMargin := 0.0
	if totalRevenue > 0 {
		profitMargin = netProfit / totalRevenue * 100
	}

	periodStart, periodEnd := dataPeriod(transactions, now)

	return models.FinancialMetrics{
		BusinessID:       businessID,
		TotalRevenue:     math.Round(totalRevenue),
		TotalExpenses:    math.Round(totalExpenses),
		CashInflow:       math.Round(totalRevenue),
		CashOutflow:      math.Round(totalExpenses),
		Receivables:      math.Round(receivables),
		Payables:         math.Round(payables),
		LoanObligations:  math.Round(loanObligations),
		NetProfit:        math.Round(netProfit),
		ProfitMargin:     roundTo2(profitMargin),
		HealthScore:      EvaluateHealth(profitMargin, receivables, totalRevenue, totalExpenses).Total(),
		CreditScore:      EvaluateCredit(netProfit, totalRevenue, loanObligations, receivables).Total(),
		DataPeriodStart:  periodStart,
		DataPeriodEnd:    periodEnd,
		TransactionCount: len(transactions),
	}
}

// dataPeriod returns the earliest and latest transaction dates,
// defaulting both to now for an empty batch.
func dataPeriod(transactions []models.Transaction, now time.Time) (time.Time, time.Time) {
	if len(transactions) == 0 {
		today := truncateToDay(now)
		return today, today
	}

	start, end := transactions[0].Date, transactions[0].Date
	for _, t := range transactions[1:] {
		if t.Date.Before(start) {
			start = t.Date
		}
		if t.Date.After(end) {
			end = t.Date
		}
	}
	return start, end
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
