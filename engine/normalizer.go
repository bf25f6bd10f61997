// Package engine implements the deterministic financial pipeline:
// normalization of loosely-typed upload rows into canonical
// transactions, keyword categorization, single-pass aggregation into
// financial metrics, and the health/credit scorecards.
package engine

import (
	"log"
	"strconv"
	"strings"
	"time"

	"finpulse/database/models"
)

// Field name aliases recognized in upload rows, checked in order.
// Upstream exports disagree on casing, so each canonical field carries
// an explicit candidate list instead of duck-typed key access.
var (
	amountAliases      = []string{"amount", "Amount", "value"}
	descriptionAliases = []string{"description", "Description", "narration", "Narration"}
	dateAliases        = []string{"date", "Date", "transaction_date"}
	typeAliases        = []string{"type", "Type"}
)

// Keywords that mark a positive-amount row as revenue when no explicit
// type field is present.
var creditKeywords = []string{"revenue", "income", "sales"}

// dateFormats accepted for the date field, tried in order.
var dateFormats = []string{"2006-01-02", time.RFC3339, "02/01/2006", "01/02/2006"}

const defaultDescription = "Transaction"

// Normalize converts raw upload rows into canonical transactions for a
// business. Malformed values are coerced with defaults and the row is
// kept; only rows that are not records at all are skipped. The batch
// never aborts.
func Normalize(rows []map[string]interface{}, businessID string, now time.Time) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(rows))

	skipped := 0
	for _, row := range rows {
		if row == nil {
			skipped++
			continue
		}

		amount := extractAmount(row)
		description := extractString(row, descriptionAliases, defaultDescription)
		date := extractDate(row, now)
		direction := resolveDirection(row, amount, description)

		if amount < 0 {
			amount = -amount
		}

		transactions = append(transactions, models.Transaction{
			BusinessID:  businessID,
			Date:        date,
			Description: description,
			Amount:      amount,
			Direction:   direction,
			Category:    Categorize(description, direction),
		})
	}

	if skipped > 0 {
		log.Printf("⚠️  Normalize: skipped %d unusable rows out of %d", skipped, len(rows))
	}

	return transactions
}

// extractAmount returns the first parseable amount alias value, signed.
// Unparseable amounts coerce to 0 so the row survives aggregation.
func extractAmount(row map[string]interface{}) float64 {
	for _, key := range amountAliases {
		raw, ok := row[key]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed
			}
			return 0
		}
	}
	return 0
}

func extractString(row map[string]interface{}, aliases []string, fallback string) string {
	for _, key := range aliases {
		if v, ok := row[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

func extractDate(row map[string]interface{}, now time.Time) time.Time {
	for _, key := range dateAliases {
		v, ok := row[key].(string)
		if !ok || v == "" {
			continue
		}
		for _, layout := range dateFormats {
			if parsed, err := time.Parse(layout, v); err == nil {
				return truncateToDay(parsed)
			}
		}
	}
	return truncateToDay(now)
}

// resolveDirection decides credit vs debit. An explicit type field set
// to "credit" wins; otherwise a positive amount with a revenue keyword
// in the description marks a credit; everything else is a debit.
func resolveDirection(row map[string]interface{}, amount float64, description string) string {
	for _, key := range typeAliases {
		if v, ok := row[key].(string); ok && strings.EqualFold(v, models.DirectionCredit) {
			return models.DirectionCredit
		}
	}

	if amount > 0 {
		desc := strings.ToLower(description)
		for _, keyword := range creditKeywords {
			if strings.Contains(desc, keyword) {
				return models.DirectionCredit
			}
		}
	}

	return models.DirectionDebit
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
