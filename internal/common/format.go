// Package common provides shared utilities for the BAM portal.
package common

import (
	"fmt"
	"strings"
)

// FormatINR formats a rupee amount with Indian digit grouping
// (last three digits, then groups of two: 1000000 -> "₹10,00,000").
func FormatINR(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	whole := int64(v + 0.5)

	s := fmt.Sprintf("%d", whole)
	if len(s) > 3 {
		head := s[:len(s)-3]
		tail := s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append([]string{head}, parts...)
		parts = append(parts, tail)
		s = strings.Join(parts, ",")
	}

	if negative {
		return "-₹" + s
	}
	return "₹" + s
}

// FormatSignedPct formats a percentage with +/- prefix
func FormatSignedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatQuoteChange formats an absolute change and percent change the way
// the market panel displays them: "▲ 120.45 (+0.55%)" / "▼ 80.10 (-0.36%)".
func FormatQuoteChange(change, changePct float64) string {
	arrow := "▲"
	if change < 0 {
		arrow = "▼"
		change = -change
	}
	return fmt.Sprintf("%s %.2f (%s)", arrow, change, FormatSignedPct(changePct))
}
