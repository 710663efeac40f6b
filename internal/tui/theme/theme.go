package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/hkg-cli/internal/render/show"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	Rule       lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	TopicTitle lipgloss.Style
	ReplyCount lipgloss.Style
	Separator  lipgloss.Style
	Body       lipgloss.Style
	// Quotes cycles by depth, starting at depth 1.
	Quotes []lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:   lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		Rule:       lipgloss.NewStyle().Foreground(cpOverlay1),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		TopicTitle: lipgloss.NewStyle().Foreground(cpText),
		ReplyCount: lipgloss.NewStyle().Foreground(cpYellow).Bold(true),
		Separator:  lipgloss.NewStyle().Foreground(cpLavender),
		Body:       lipgloss.NewStyle().Foreground(cpText),
		Quotes: []lipgloss.Style{
			lipgloss.NewStyle().Foreground(cpSubtext0),
			lipgloss.NewStyle().Italic(true).Foreground(cpRosewater),
			lipgloss.NewStyle().Foreground(cpTeal),
		},
	}
}

// StyleLine colours one rendered thread row by its kind and quote depth.
func (t Theme) StyleLine(line show.Line) string {
	if line.Text == "" {
		return line.Text
	}
	switch line.Kind {
	case show.LineTopSeparator, show.LineBottomSeparator:
		return t.Separator.Render(line.Text)
	}
	if line.Depth > 0 && len(t.Quotes) > 0 {
		return t.Quotes[(line.Depth-1)%len(t.Quotes)].Render(line.Text)
	}
	return t.Body.Render(line.Text)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
