package view

import (
	"strings"

	"github.com/glabrego/hkg-cli/internal/render/show"
	tuitheme "github.com/glabrego/hkg-cli/internal/tui/theme"
)

// RenderThread draws a composed frame, replacing its status row with status
// when one is given.
func RenderThread(frame show.Frame, status string, th tuitheme.Theme) string {
	rows := frame.Rows()
	if len(rows) > 0 && rows[0] != "" {
		rows[0] = th.Title.Render(rows[0])
	}
	if len(rows) > 1 && rows[1] != "" {
		rows[1] = th.Rule.Render(rows[1])
	}
	for _, line := range frame.Body {
		if idx := 2 + line.Row; idx < len(rows) {
			rows[idx] = th.StyleLine(line)
		}
	}
	if len(rows) >= 3 && status != "" {
		rows[len(rows)-1] = status
	}
	return strings.Join(rows, "\n")
}
