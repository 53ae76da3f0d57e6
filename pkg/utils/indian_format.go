// Package utils provides display helpers shared by the CLI and API.
package utils

import (
	"fmt"
	"math"
	"strconv"
)

// FormatINR formats a number in Indian Rupee format (₹12,34,567.89).
// Uses the Indian numbering system: last 3 digits, then groups of 2.
func FormatINR(amount float64) string {
	return formatCurrency("₹", amount, formatIndianNumber)
}

// FormatUSD formats a number with Western grouping ($1,234,567.89).
func FormatUSD(amount float64) string {
	return formatCurrency("$", amount, formatWesternNumber)
}

// compactUnits are the Indian magnitude suffixes, largest first.
var compactUnits = []struct {
	scale  float64
	suffix string
}{
	{1e12, "L Cr"},
	{1e7, "Cr"},
	{1e5, "L"},
	{1e3, "K"},
}

// FormatINRCompact abbreviates an amount with Indian magnitude suffixes,
// e.g. -38903.82 → "-₹38.9 K", 1500000 → "₹15 L". Amounts under a
// thousand are printed in full.
func FormatINRCompact(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	abs := math.Abs(amount)
	sign := ""
	if amount < 0 && math.Round(abs*100) != 0 {
		sign = "-"
	}
	for _, u := range compactUnits {
		if abs >= u.scale {
			return fmt.Sprintf("%s₹%s %s", sign, trimDecimals(abs/u.scale), u.suffix)
		}
	}
	return fmt.Sprintf("%s₹%.2f", sign, abs)
}

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "n/a"
	}
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

func formatCurrency(symbol string, amount float64, group func(int64) string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	negative := amount < 0
	// Round to the minor unit first so 0.999 does not print as ".100".
	cents := int64(math.Round(math.Abs(amount) * 100))
	if cents == 0 {
		negative = false
	}

	formatted := fmt.Sprintf("%s.%02d", group(cents/100), cents%100)
	if negative {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// formatIndianNumber formats an integer with Indian grouping (last 3, then 2s).
func formatIndianNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	s := fmt.Sprintf("%d", n)
	length := len(s)

	// Take the last 3 digits
	result := s[length-3:]
	remaining := s[:length-3]

	// Group remaining digits in pairs from right
	for len(remaining) > 0 {
		if len(remaining) > 2 {
			result = remaining[len(remaining)-2:] + "," + result
			remaining = remaining[:len(remaining)-2]
		} else {
			result = remaining + "," + result
			remaining = ""
		}
	}

	return result
}

func formatWesternNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// trimDecimals rounds n to two decimals and drops trailing zeros.
func trimDecimals(n float64) string {
	return strconv.FormatFloat(math.Round(n*100)/100, 'f', -1, 64)
}
