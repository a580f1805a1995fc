package utils

import (
	"fmt"
)

// ConvertMinutesToDuration convert minutes to duration format string
// Example: 125 -> "2h 5m"
func ConvertMinutesToDuration(durationInMinutes int64) string {
	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatPrice formats a currency-tagged amount for display
// Example: 123.4, "EUR" -> "123.40 EUR"
func FormatPrice(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}
