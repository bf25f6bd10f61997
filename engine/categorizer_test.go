package engine

import (
	"testing"

	"finpulse/database/models"
)

func TestCategorizeCredits(t *testing.T) {
	cases := []struct {
		description string
		want        string
	}{
		{"Online sales payout", "Sales Revenue"},
		{"Monthly REVENUE share", "Sales Revenue"},
		{"Consulting service fee", "Service Income"},
		{"Investment maturity", "Investment Returns"},
		{"Fixed deposit interest", "Investment Returns"},
		{"Working capital loan disbursal", "Loan Received"},
		{"Credit line drawdown", "Loan Received"},
		{"Gift from founder", "Other Income"},
	}
	for _, c := range cases {
		if got := Categorize(c.description, models.DirectionCredit); got != c.want {
			t.Errorf("Categorize(%q, credit) = %q, want %q", c.description, got, c.want)
		}
	}
}

func TestCategorizeDebits(t *testing.T) {
	cases := []struct {
		description string
		want        string
	}{
		{"Staff salary for March", "Salary"},
		{"Daily wage workers", "Salary"},
		{"Shop rent April", "Rent"},
		{"Equipment lease installment", "Rent"}, // lease outranks equipment
		{"Utility bill", "Utilities"},
		{"Electricity charges", "Utilities"},
		{"Water supply", "Utilities"},
		{"Marketing campaign", "Marketing"},
		{"Advertising spend", "Marketing"},
		{"Vendor settlement", "Vendor Payment"},
		{"Supplier dues", "Vendor Payment"},
		{"Raw material purchase", "Raw Materials"},
		{"Inventory restock", "Raw Materials"},
		{"Equipment purchase", "Equipment"},
		{"New machinery", "Equipment"},
		{"Miscellaneous charges", "Other"},
	}
	for _, c := range cases {
		if got := Categorize(c.description, models.DirectionDebit); got != c.want {
			t.Errorf("Categorize(%q, debit) = %q, want %q", c.description, got, c.want)
		}
	}
}

func TestCategorizeDirectionMatters(t *testing.T) {
	// The same word lands in different tables per direction.
	if got := Categorize("loan repayment", models.DirectionCredit); got != "Loan Received" {
		t.Errorf("Expected Loan Received for credit, got %q", got)
	}
	if got := Categorize("loan repayment", models.DirectionDebit); got != "Other" {
		t.Errorf("Expected Other for debit, got %q", got)
	}
}

func TestCategorizeNeverEmpty(t *testing.T) {
	for _, dir := range []string{models.DirectionCredit, models.DirectionDebit, "garbage"} {
		if got := Categorize("", dir); got == "" {
			t.Errorf("Empty category for direction %q", dir)
		}
	}
}
