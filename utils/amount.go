package utils

import (
	"strconv"
	"strings"
)

// ParseAmount converts a catalog amount string to a float. The source table
// stores decimals as text and marks missing values with "" or "-"; both
// parse as zero so aggregate sums stay usable.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders an aggregated value back to the catalog's decimal
// text convention, trimming trailing zeros ("12.50" → "12.5", "3.00" → "3").
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-0" {
		return "0"
	}
	return s
}
