package show

import (
	"fmt"
	"strings"
	"time"
)

const (
	nameField = 14
	timeField = 5

	// TimestampLayout is how reply timestamps are printed on the forum.
	TimestampLayout = "02/01/2006 15:04"
)

// TopSeparator is the line opening a reply: a right aligned tab carrying the
// author name and the elapsed time label.
func TopSeparator(name, elapsed string, width int) string {
	sepWidth := sat(width - 2)
	padding := strings.Repeat(" ", sat(width-sepWidth)/2)

	tab := "╭" + fill(name, nameField, "─") + fill(elapsed, timeField, "─") + "╮"
	middle := strings.Repeat(" ", sat(sepWidth-displayWidth(tab)))
	return truncate(padding+middle+tab+padding, width)
}

// BottomSeparator closes a reply.
func BottomSeparator(width int) string {
	sepWidth := sat(width - 2)
	padding := strings.Repeat(" ", sat(width-sepWidth)/2)
	return truncate(padding+strings.Repeat("─", sat(sepWidth-1))+"╯"+padding, width)
}

// ElapsedLabel formats the time since published in the coarsest unit that
// applies. Timestamps that do not parse count as now.
func ElapsedLabel(published string, now time.Time) string {
	at, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(published), now.Location())
	if err != nil {
		at = now
	}
	elapsed := now.Sub(at)

	weeks := int(elapsed / (7 * 24 * time.Hour))
	days := int(elapsed / (24 * time.Hour))
	hours := int(elapsed / time.Hour)
	minutes := int(elapsed / time.Minute)
	switch {
	case weeks > 0:
		return fmt.Sprintf("%dw", weeks)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 1:
		return fmt.Sprintf("%dm", minutes)
	default:
		return "1m"
	}
}
