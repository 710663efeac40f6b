package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/hkg-cli/internal/tui/theme"
)

func Toolbar(help, inThread bool) string {
	if help {
		if inThread {
			return "j/k/arrows: scroll | pgup/pgdown/space: page scroll | h/l/left/right: prev/next page | g: top | r: reload | o: open URL | y: copy URL | esc: cancel load | backspace: back | ?: help | q: quit"
		}
		return "j/k/arrows: move | g/G: top/bottom | pgup/pgdown: jump | enter: open thread | r: reload | esc: cancel load | ?: help | q: quit"
	}
	if inThread {
		return "j/k scroll | h/l page | r reload | o open | y copy | backspace back | ? help"
	}
	return "j/k move | enter open | r reload | ? help | q quit"
}

func ListFooter(channel string, shown int, fromCache bool, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("channel") + " " + th.MetaValue.Render(channel),
		th.MetaValue.Render(fmt.Sprintf("%d topics", shown)),
	}
	if fromCache {
		parts = append(parts, th.MetaLabel.Render("cached"))
	}
	return strings.Join(parts, " • ")
}

func ThreadFooter(threadID string, page, maxPage int, replyCount string, fromCache bool, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("thread") + " " + th.MetaValue.Render(threadID),
		th.MetaLabel.Render("page") + " " + th.MetaValue.Render(fmt.Sprintf("%d/%d", page, maxPage)),
	}
	if replyCount != "" {
		parts = append(parts, th.MetaValue.Render(replyCount+" replies"))
	}
	if fromCache {
		parts = append(parts, th.MetaLabel.Render("cached"))
	}
	return strings.Join(parts, " • ")
}

func CompactMessage(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
