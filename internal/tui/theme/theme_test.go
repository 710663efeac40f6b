package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/glabrego/hkg-cli/internal/render/show"
)

func TestStyleLine_ByKindAndDepth(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	lines := []show.Line{
		{Text: " ╭──a──╮ ", Kind: show.LineTopSeparator},
		{Text: " ───╯ ", Kind: show.LineBottomSeparator},
		{Text: " body", Kind: show.LineBody},
		{Text: " ├─quoted", Kind: show.LineBody, Depth: 1},
		{Text: " ├─├─├─├─deep", Kind: show.LineBody, Depth: 4},
	}
	for _, line := range lines {
		got := th.StyleLine(line)
		if !strings.Contains(got, "\x1b[") {
			t.Fatalf("expected styled line for %+v, got %q", line, got)
		}
		if !strings.Contains(got, strings.TrimSpace(line.Text)) {
			t.Fatalf("styled line lost its text: %q", got)
		}
	}

	if got := th.StyleLine(show.Line{Kind: show.LineBody}); got != "" {
		t.Fatalf("expected empty row to stay empty, got %q", got)
	}
}

func TestRenderActiveLine(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()
	if got := th.RenderActiveLine(false, "row"); got != "row" {
		t.Fatalf("expected inactive row untouched, got %q", got)
	}
	if got := th.RenderActiveLine(true, "row"); !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected active row styled, got %q", got)
	}
}
