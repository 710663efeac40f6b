package show

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// columns measures text independently of the locale, so ambiguous glyphs
// such as box drawing stay one column wide.
var columns = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// displayWidth counts terminal columns; wide glyphs count as two.
func displayWidth(s string) int {
	return columns.StringWidth(s)
}

// truncate cuts s to at most width columns without splitting a wide glyph.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	return columns.Truncate(s, width, "")
}

// center pads s with spaces on the left so it sits in the middle of width
// columns.
func center(s string, width int) string {
	s = truncate(s, width)
	return strings.Repeat(" ", sat(width-displayWidth(s))/2) + s
}

// fill places s in a field of width columns padded with pad on both sides.
// The odd column goes to the left.
func fill(s string, width int, pad string) string {
	spare := sat(width - displayWidth(s))
	right := spare / 2
	left := spare - right
	return strings.Repeat(pad, left) + s + strings.Repeat(pad, right)
}

// sat clamps a width to zero.
func sat(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
