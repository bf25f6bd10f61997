package helpers

import "testing"

func TestFormatRupee(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{40000, "₹40,000"},
		{1234567, "₹1,234,567"},
		{1234567.89, "₹1,234,567"}, // truncated to whole units
		{-40000, "₹-40,000"},
		{-999, "₹-999"},
	}
	for _, c := range cases {
		if got := FormatRupee(c.amount); got != c.want {
			t.Errorf("FormatRupee(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{0, "0.0%"},
		{5, "5.0%"},
		{66.666, "66.7%"},
		{-12.34, "-12.3%"},
	}
	for _, c := range cases {
		if got := FormatPercent(c.pct); got != c.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", c.pct, got, c.want)
		}
	}
}
