package engine

import (
	"fmt"
	"math/rand"
	"time"

	"finpulse/database/models"
)

// Demo sampling parameters: one transaction per calendar day over the
// trailing window, ~60% credits, with direction-specific amount ranges.
const (
	demoDays         = 90
	demoCreditChance = 0.6
	demoCreditMin    = 50000
	demoCreditSpan   = 200000 // amounts in [50000, 250000)
	demoDebitMin     = 10000
	demoDebitSpan    = 150000 // amounts in [10000, 160000)
)

var demoCreditCategories = []string{
	"Sales Revenue", "Service Income", "Investment Returns", "Loan Received",
}

var demoDebitCategories = []string{
	"Vendor Payment", "Salary", "Rent", "Utilities",
	"Marketing", "Raw Materials", "Equipment", "Other",
}

// DemoGenerator produces a synthetic 90-day transaction history for
// the demo bank connection. The random source and clock are injected
// so tests can assert exact output.
type DemoGenerator struct {
	rng *rand.Rand
	now time.Time
}

// NewDemoGenerator creates a generator seeded for reproducible output.
func NewDemoGenerator(seed int64, now time.Time) *DemoGenerator {
	return &DemoGenerator{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// Generate emits one transaction per day for the past 90 days,
// today first, descending.
func (g *DemoGenerator) Generate(businessID string) []models.Transaction {
	transactions := make([]models.Transaction, 0, demoDays)

	today := truncateToDay(g.now)
	for i := 0; i < demoDays; i++ {
		date := today.AddDate(0, 0, -i)

		direction := models.DirectionDebit
		categories := demoDebitCategories
		var amount float64
		if g.rng.Float64() < demoCreditChance {
			direction = models.DirectionCredit
			categories = demoCreditCategories
			amount = float64(g.rng.Intn(demoCreditSpan) + demoCreditMin)
		} else {
			amount = float64(g.rng.Intn(demoDebitSpan) + demoDebitMin)
		}

		category := categories[g.rng.Intn(len(categories))]

		transactions = append(transactions, models.Transaction{
			BusinessID:  businessID,
			Date:        date,
			Description: fmt.Sprintf("%s transaction", category),
			Amount:      amount,
			Direction:   direction,
			Category:    category,
		})
	}

	return transactions
}
