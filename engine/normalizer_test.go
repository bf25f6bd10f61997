package engine

import (
	"testing"
	"time"

	"finpulse/database/models"
)

var testNow = time.Date(2026, 6, 15, 11, 45, 0, 0, time.UTC)

func TestNormalizeFieldAliases(t *testing.T) {
	rows := []map[string]interface{}{
		{"amount": 1500.0, "description": "Vendor payment", "date": "2026-01-10"},
		{"Amount": 2500.0, "Description": "Office rent", "Date": "2026-01-11"},
		{"value": 3500.0, "narration": "Electricity bill", "transaction_date": "2026-01-12"},
		{"value": "4500", "Narration": "Supplier invoice", "date": "2026-01-13"},
	}

	txns := Normalize(rows, "biz-1", testNow)
	if len(txns) != 4 {
		t.Fatalf("Expected 4 transactions, got %d", len(txns))
	}

	wantAmounts := []float64{1500, 2500, 3500, 4500}
	wantDescs := []string{"Vendor payment", "Office rent", "Electricity bill", "Supplier invoice"}
	for i, txn := range txns {
		if txn.Amount != wantAmounts[i] {
			t.Errorf("Row %d: expected amount %v, got %v", i, wantAmounts[i], txn.Amount)
		}
		if txn.Description != wantDescs[i] {
			t.Errorf("Row %d: expected description %q, got %q", i, wantDescs[i], txn.Description)
		}
		if txn.BusinessID != "biz-1" {
			t.Errorf("Row %d: expected business ID biz-1, got %q", i, txn.BusinessID)
		}
	}

	if !txns[0].Date.Equal(day(2026, 1, 10)) {
		t.Errorf("Unexpected date for row 0: %v", txns[0].Date)
	}
	if !txns[2].Date.Equal(day(2026, 1, 12)) {
		t.Errorf("transaction_date alias not honored: %v", txns[2].Date)
	}
}

func TestNormalizeDirectionResolution(t *testing.T) {
	cases := []struct {
		name string
		row  map[string]interface{}
		want string
	}{
		{
			"explicit credit type wins",
			map[string]interface{}{"amount": -100.0, "description": "Refund", "type": "credit"},
			models.DirectionCredit,
		},
		{
			"explicit type is case-insensitive",
			map[string]interface{}{"amount": 100.0, "description": "Payment", "Type": "CREDIT"},
			models.DirectionCredit,
		},
		{
			"positive amount with revenue keyword",
			map[string]interface{}{"amount": 100.0, "description": "Monthly revenue share"},
			models.DirectionCredit,
		},
		{
			"positive amount with income keyword",
			map[string]interface{}{"amount": 100.0, "description": "Interest income"},
			models.DirectionCredit,
		},
		{
			"positive amount with sales keyword",
			map[string]interface{}{"amount": 100.0, "description": "Online sales payout"},
			models.DirectionCredit,
		},
		{
			"negative amount ignores keywords",
			map[string]interface{}{"amount": -100.0, "description": "Sales commission paid"},
			models.DirectionDebit,
		},
		{
			"no keyword defaults to debit",
			map[string]interface{}{"amount": 100.0, "description": "Office supplies"},
			models.DirectionDebit,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			txns := Normalize([]map[string]interface{}{c.row}, "biz-1", testNow)
			if len(txns) != 1 {
				t.Fatalf("Expected 1 transaction, got %d", len(txns))
			}
			if txns[0].Direction != c.want {
				t.Errorf("Expected direction %q, got %q", c.want, txns[0].Direction)
			}
		})
	}
}

func TestNormalizeAbsoluteAmount(t *testing.T) {
	rows := []map[string]interface{}{
		{"amount": -1234.56, "description": "Card payment"},
	}
	txns := Normalize(rows, "biz-1", testNow)
	if txns[0].Amount != 1234.56 {
		t.Errorf("Expected absolute amount 1234.56, got %v", txns[0].Amount)
	}
	if txns[0].Direction != models.DirectionDebit {
		t.Errorf("Expected debit, got %q", txns[0].Direction)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	rows := []map[string]interface{}{
		{"amount": "not-a-number"},
		{},
	}
	txns := Normalize(rows, "biz-1", testNow)
	if len(txns) != 2 {
		t.Fatalf("Expected malformed rows to survive, got %d transactions", len(txns))
	}

	for i, txn := range txns {
		if txn.Amount != 0 {
			t.Errorf("Row %d: expected amount 0, got %v", i, txn.Amount)
		}
		if txn.Description != "Transaction" {
			t.Errorf("Row %d: expected default description, got %q", i, txn.Description)
		}
		if !txn.Date.Equal(day(2026, 6, 15)) {
			t.Errorf("Row %d: expected date to default to today, got %v", i, txn.Date)
		}
		if txn.Direction != models.DirectionDebit {
			t.Errorf("Row %d: expected debit default, got %q", i, txn.Direction)
		}
	}
}

func TestNormalizeSkipsNilRows(t *testing.T) {
	rows := []map[string]interface{}{
		nil,
		{"amount": 100.0, "description": "Rent"},
		nil,
	}
	txns := Normalize(rows, "biz-1", testNow)
	if len(txns) != 1 {
		t.Errorf("Expected 1 transaction, got %d", len(txns))
	}
}

func TestNormalizeDateFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2026-02-03", day(2026, 2, 3)},
		{"2026-02-03T09:30:00Z", day(2026, 2, 3)},
		{"03/02/2026", day(2026, 2, 3)}, // day-first tried before month-first
	}
	for _, c := range cases {
		rows := []map[string]interface{}{{"amount": 1.0, "date": c.raw}}
		txns := Normalize(rows, "biz-1", testNow)
		if !txns[0].Date.Equal(c.want) {
			t.Errorf("Date %q: expected %v, got %v", c.raw, c.want, txns[0].Date)
		}
	}

	// Unparseable dates fall back to today.
	rows := []map[string]interface{}{{"amount": 1.0, "date": "yesterday"}}
	txns := Normalize(rows, "biz-1", testNow)
	if !txns[0].Date.Equal(day(2026, 6, 15)) {
		t.Errorf("Expected fallback to today, got %v", txns[0].Date)
	}
}

func TestNormalizeAssignsCategories(t *testing.T) {
	rows := []map[string]interface{}{
		{"amount": 100.0, "description": "Quarterly sales revenue", "type": "credit"},
		{"amount": 200.0, "description": "Staff salary March"},
	}
	txns := Normalize(rows, "biz-1", testNow)
	if txns[0].Category != "Sales Revenue" {
		t.Errorf("Expected Sales Revenue, got %q", txns[0].Category)
	}
	if txns[1].Category != "Salary" {
		t.Errorf("Expected Salary, got %q", txns[1].Category)
	}
}
