package analytics

import (
	"database/sql"
	"time"

	"finpulse/database"
	"finpulse/database/models"
)

// Repository runs the hand-written SQL aggregate queries behind the
// dashboard endpoints. It works on the raw connection rather than GORM
// because these are GROUP BY scans with no model mapping worth keeping.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new analytics repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ExpenseBreakdown returns debit totals per category with each
// category's share of total expenses, largest first.
func (r *Repository) ExpenseBreakdown(businessID string) ([]models.ExpenseCategory, error) {
	rows, err := r.db.Query(`
		SELECT category,
		       SUM(amount) AS total,
		       CASE WHEN SUM(SUM(amount)) OVER () > 0
		            THEN SUM(amount) / SUM(SUM(amount)) OVER () * 100
		            ELSE 0 END AS share_pct
		FROM transactions
		WHERE business_id = $1 AND direction = 'debit'
		GROUP BY category
		ORDER BY total DESC
	`, businessID)
	if err != nil {
		return nil, database.WrapDBError("ExpenseBreakdown", err)
	}
	defer rows.Close()

	var breakdown []models.ExpenseCategory
	for rows.Next() {
		var c models.ExpenseCategory
		if err := rows.Scan(&c.Category, &c.Total, &c.SharePct); err != nil {
			return nil, database.WrapDBError("ExpenseBreakdown scan", err)
		}
		breakdown = append(breakdown, c)
	}
	return breakdown, rows.Err()
}

// MonthlyCashflow returns inflow/outflow totals per calendar month over
// the business's current batch, oldest first.
func (r *Repository) MonthlyCashflow(businessID string, months int) ([]models.CashflowPoint, error) {
	if months <= 0 {
		months = 12
	}
	since := time.Now().AddDate(0, -months, 0)

	rows, err := r.db.Query(`
		SELECT date_trunc('month', date) AS month,
		       COALESCE(SUM(amount) FILTER (WHERE direction = 'credit'), 0) AS inflow,
		       COALESCE(SUM(amount) FILTER (WHERE direction = 'debit'), 0) AS outflow
		FROM transactions
		WHERE business_id = $1 AND date >= $2
		GROUP BY month
		ORDER BY month ASC
	`, businessID, since)
	if err != nil {
		return nil, database.WrapDBError("MonthlyCashflow", err)
	}
	defer rows.Close()

	var series []models.CashflowPoint
	for rows.Next() {
		var p models.CashflowPoint
		if err := rows.Scan(&p.Month, &p.Inflow, &p.Outflow); err != nil {
			return nil, database.WrapDBError("MonthlyCashflow scan", err)
		}
		series = append(series, p)
	}
	return series, rows.Err()
}
