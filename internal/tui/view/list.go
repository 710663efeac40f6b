package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/glabrego/hkg-cli/internal/forum"
	"github.com/glabrego/hkg-cli/internal/render/show"
	tuitheme "github.com/glabrego/hkg-cli/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// columns matches the thread renderer so both screens agree on glyph widths.
var columns = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

type TopicLineParams struct {
	Topic       forum.Topic
	Now         time.Time
	ShowNumbers bool
	VisiblePos  int
	Active      bool
	Width       int
}

func RenderTopicLine(p TopicLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}

	prefix := fmt.Sprintf("  %s ", cursorMarker)
	if p.ShowNumbers {
		prefix = fmt.Sprintf("  %s%2d. ", cursorMarker, p.VisiblePos+1)
	}
	right := TopicMetaLabel(p.Topic, p.Now)
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(right)
	if available < 1 {
		available = 1
	}

	label := strings.TrimSpace(p.Topic.Title)
	if label == "" {
		label = "(untitled)"
	}
	label = truncateWidth(label, available)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+th.TopicTitle.Render(label)+strings.Repeat(" ", gap)+th.MetaValue.Render(right))
}

// TopicMetaLabel is the right hand column of a topic row: reply count,
// author and time since the last reply.
func TopicMetaLabel(topic forum.Topic, now time.Time) string {
	count := topic.ReplyCount
	if count == "" {
		count = "0"
	}
	parts := []string{"[" + count + "]"}
	if author := strings.TrimSpace(topic.Author); author != "" {
		parts = append(parts, author)
	}
	if topic.LastReplied != "" {
		parts = append(parts, show.ElapsedLabel(topic.LastReplied, now))
	}
	return strings.Join(parts, " ")
}

// ListHeader is the title row of the topic list.
func ListHeader(forumTitle, channel string, th tuitheme.Theme) string {
	return th.Title.Render(forumTitle) + " " + th.ModePill.Render(channel)
}

func truncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if columns.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return columns.Truncate(s, maxWidth, "...")
}

func visibleLen(s string) int {
	return columns.StringWidth(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
