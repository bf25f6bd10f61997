package helpers

import "fmt"

// FormatRupee formats an amount as Indian Rupee currency, rounded to
// whole units with comma thousand separators.
func FormatRupee(amount float64) string {
	value := int64(amount)

	negative := value < 0
	if negative {
		value = -value
	}

	str := fmt.Sprintf("%d", value)
	length := len(str)

	if length <= 3 {
		if negative {
			return fmt.Sprintf("₹-%s", str)
		}
		return fmt.Sprintf("₹%s", str)
	}

	var result string
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result += ","
		}
		result += string(digit)
	}

	if negative {
		return fmt.Sprintf("₹-%s", result)
	}
	return fmt.Sprintf("₹%s", result)
}

// FormatPercent formats a ratio expressed in percent to one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
