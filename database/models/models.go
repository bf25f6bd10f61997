package models

import "time"

// Transaction directions. A credit is money flowing into the business,
// a debit is money flowing out. Unrelated to double-entry conventions.
const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)

// Transaction represents a single normalized bank/sales/purchase record.
// Transactions are produced by the engine package from loosely-typed
// upload rows (or the demo generator) and fully replace the prior batch
// for a business on every ingestion.
//
// Key Fields:
//   - BusinessID: Owner of the batch (indexed, one batch per business)
//   - Date: Calendar date of the transaction (indexed)
//   - Direction: credit (inflow) or debit (outflow)
//   - Amount: Non-negative magnitude in currency units; the sign is
//     never encoded in Amount, only in Direction
//   - Category: Closed-vocabulary label assigned by the categorizer
type Transaction struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessID  string    `gorm:"size:64;index;not null" json:"business_id"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	Description string    `gorm:"not null" json:"description"`
	Amount      float64   `gorm:"type:decimal(20,2);not null" json:"amount"`
	Direction   string    `gorm:"size:10;not null" json:"direction"` // credit, debit
	Category    string    `gorm:"size:40;not null" json:"category"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// FinancialMetrics holds the aggregate financial picture for one
// business. Exactly one row exists per business; each ingestion
// recomputes the whole record and upserts it (no history kept).
//
// Key Fields:
//   - TotalRevenue/TotalExpenses: Sums of credit/debit amounts
//   - CashInflow/CashOutflow: Duplicates of revenue/expenses, kept as
//     distinct columns because external consumers address them by name
//   - Receivables/Payables/LoanObligations: Fixed-ratio estimates
//     (12% / 8% / 15% with floor), not independently sourced balances
//   - ProfitMargin: Percent, 2 decimals, 0 when revenue is 0
//   - HealthScore/CreditScore: Composite 0-100 indicators
type FinancialMetrics struct {
	BusinessID       string    `gorm:"primaryKey;size:64" json:"business_id"`
	TotalRevenue     float64   `gorm:"type:decimal(20,2);not null" json:"total_revenue"`
	TotalExpenses    float64   `gorm:"type:decimal(20,2);not null" json:"total_expenses"`
	CashInflow       float64   `gorm:"type:decimal(20,2);not null" json:"cash_inflow"`
	CashOutflow      float64   `gorm:"type:decimal(20,2);not null" json:"cash_outflow"`
	Receivables      float64   `gorm:"type:decimal(20,2);not null" json:"receivables"`
	Payables         float64   `gorm:"type:decimal(20,2);not null" json:"payables"`
	LoanObligations  float64   `gorm:"type:decimal(20,2);not null" json:"loan_obligations"`
	NetProfit        float64   `gorm:"type:decimal(20,2);not null" json:"net_profit"`
	ProfitMargin     float64   `gorm:"type:decimal(10,2);not null" json:"profit_margin"`
	HealthScore      int       `gorm:"not null" json:"health_score"`
	CreditScore      int       `gorm:"not null" json:"credit_score"`
	DataPeriodStart  time.Time `gorm:"not null" json:"data_period_start"`
	DataPeriodEnd    time.Time `gorm:"not null" json:"data_period_end"`
	TransactionCount int       `gorm:"not null" json:"transaction_count"`
	ComputedAt       time.Time `gorm:"autoUpdateTime" json:"computed_at"`
}

// TableName specifies the table name for FinancialMetrics
func (FinancialMetrics) TableName() string {
	return "financial_metrics"
}

// Insight severities, ordered from informational to urgent.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Insight types.
const (
	InsightCashFlow    = "cash_flow"
	InsightExpense     = "expense"
	InsightCredit      = "credit"
	InsightReceivables = "receivables"
)

// Insight is one qualitative statement about a business's finances.
// The deterministic rule engine always produces them; the LLM service
// may replace them with richer text when it is reachable.
type Insight struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessID  string    `gorm:"size:64;index;not null" json:"business_id"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	InsightType string    `gorm:"size:20;not null" json:"insight_type"` // cash_flow, expense, credit, receivables
	Severity    string    `gorm:"size:10;not null" json:"severity"`     // low, medium, high, critical
	LLMModel    string    `gorm:"size:60" json:"llm_model,omitempty"`   // empty for rule-based insights
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Insight
func (Insight) TableName() string {
	return "ai_insights"
}

// Upload processing statuses.
const (
	UploadProcessing = "processing"
	UploadCompleted  = "completed"
	UploadFailed     = "failed"
)

// Upload is the audit record for one ingestion event.
type Upload struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	BusinessID       string     `gorm:"size:64;index;not null" json:"business_id"`
	FileType         string     `gorm:"size:20" json:"file_type"` // csv, json, demo
	OriginalFilename string     `gorm:"size:255" json:"original_filename"`
	RowCount         int        `json:"row_count"`
	ProcessingStatus string     `gorm:"size:20;not null" json:"processing_status"` // processing, completed, failed
	ErrorMessage     string     `json:"error_message,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
}

// TableName specifies the table name for Upload
func (Upload) TableName() string {
	return "financial_uploads"
}

// IngestResult summarizes one completed ingestion for the API response
// (not a table).
type IngestResult struct {
	UploadID         string           `json:"upload_id"`
	TransactionCount int              `json:"transaction_count"`
	Metrics          FinancialMetrics `json:"metrics"`
}

// ExpenseCategory is one slice of the expense breakdown returned by the
// analytics queries (not a table).
type ExpenseCategory struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	SharePct float64 `json:"share_pct"`
}

// CashflowPoint is one month of the cashflow series returned by the
// analytics queries (not a table).
type CashflowPoint struct {
	Month   time.Time `json:"month"`
	Inflow  float64   `json:"inflow"`
	Outflow float64   `json:"outflow"`
}
