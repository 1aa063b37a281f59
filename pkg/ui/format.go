package ui

import "fmt"

// FormatSize returns a byte count as a human readable string
func FormatSize(n int) string {
	s := float64(n)
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", s/1024)
	default:
		return fmt.Sprintf("%.2f MB", s/(1024*1024))
	}
}

// FormatPercent renders a savings ratio (0.333 -> "33.3%"). Undefined
// ratios render as a dash.
func FormatPercent(ratio float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", ratio*100)
}
