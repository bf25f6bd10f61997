package engine

import (
	"strings"

	"finpulse/database/models"
)

// Categorize assigns a category label from the transaction description
// and direction. Matching is a case-insensitive substring search, first
// match wins. The fallback branches guarantee every input gets a label.
func Categorize(description, direction string) string {
	desc := strings.ToLower(description)

	if direction == models.DirectionCredit {
		switch {
		case strings.Contains(desc, "sales"), strings.Contains(desc, "revenue"):
			return "Sales Revenue"
		case strings.Contains(desc, "service"):
			return "Service Income"
		case strings.Contains(desc, "investment"), strings.Contains(desc, "interest"):
			return "Investment Returns"
		case strings.Contains(desc, "loan"), strings.Contains(desc, "credit"):
			return "Loan Received"
		default:
			return "Other Income"
		}
	}

	switch {
	case strings.Contains(desc, "salary"), strings.Contains(desc, "wage"):
		return "Salary"
	case strings.Contains(desc, "rent"), strings.Contains(desc, "lease"):
		return "Rent"
	case strings.Contains(desc, "utility"), strings.Contains(desc, "electricity"), strings.Contains(desc, "water"):
		return "Utilities"
	case strings.Contains(desc, "marketing"), strings.Contains(desc, "advertising"):
		return "Marketing"
	case strings.Contains(desc, "vendor"), strings.Contains(desc, "supplier"):
		return "Vendor Payment"
	case strings.Contains(desc, "raw material"), strings.Contains(desc, "inventory"):
		return "Raw Materials"
	case strings.Contains(desc, "equipment"), strings.Contains(desc, "machinery"):
		return "Equipment"
	default:
		return "Other"
	}
}
