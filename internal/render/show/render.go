// Package show lays out a thread page for the terminal.
//
// Rendering walks every reply from the top on each call and only keeps the
// rows that land inside the viewport, so scrolling is a matter of changing
// the offset. Every width computation is in display columns.
package show

import (
	"strings"
	"time"

	"github.com/glabrego/hkg-cli/internal/content"
	"github.com/glabrego/hkg-cli/internal/forum"
)

type LineKind int

const (
	LineBody LineKind = iota
	LineTopSeparator
	LineBottomSeparator
)

// Line is one row to draw. Row is relative to the top of the viewport.
type Line struct {
	Row   int
	Text  string
	Kind  LineKind
	Depth int
}

// Result holds the visible lines in row order. NextRow is the number of
// content rows consumed, visible or not.
type Result struct {
	Lines   []Line
	NextRow int
}

const quoteIndent = "├─"

// Render lays out replies scrolled down by offset rows in a viewport of
// width by height cells.
func Render(replies []forum.Reply, offset, width, height int) Result {
	return RenderAt(replies, offset, width, height, time.Now())
}

// RenderAt is Render with a fixed clock for the elapsed time labels.
func RenderAt(replies []forum.Reply, offset, width, height int, now time.Time) Result {
	l := &layout{
		offset: sat(offset),
		width:  sat(width),
		height: sat(height),
	}
	row := 0
	for _, reply := range replies {
		row += l.reply(reply, row, now)
	}
	return Result{Lines: l.lines, NextRow: row}
}

type layout struct {
	offset int
	width  int
	height int
	lines  []Line
}

// emit records row if it falls inside the viewport.
func (l *layout) emit(row int, kind LineKind, depth int, text string) {
	if row < l.offset || row-l.offset >= l.height {
		return
	}
	l.lines = append(l.lines, Line{
		Row:   row - l.offset,
		Text:  truncate(text, l.width),
		Kind:  kind,
		Depth: depth,
	})
}

func (l *layout) reply(reply forum.Reply, row int, now time.Time) int {
	start := row
	l.emit(row, LineTopSeparator, 0, TopSeparator(reply.AuthorName, ElapsedLabel(reply.PublishedAt, now), l.width))
	row++
	row += l.body(reply.Body, row, 0)
	l.emit(row, LineBottomSeparator, 0, BottomSeparator(l.width))
	row++
	return row - start
}

// body lays out nodes starting at row and returns the rows it used. Quotes
// are laid out in full, one level deeper, before their following siblings.
func (l *layout) body(nodes []content.Node, row, depth int) int {
	prefix := " " + strings.Repeat(quoteIndent, depth)
	used := 0
	started := false
	var line strings.Builder

	flush := func() {
		l.emit(row+used, LineBody, depth, prefix+line.String())
		used++
		line.Reset()
	}

	for _, node := range nodes {
		switch node.Kind {
		case content.KindText:
			if node.Data == "" {
				continue
			}
			line.WriteString(node.Data)
			started = true
		case content.KindImage:
			if node.Data == "" {
				continue
			}
			line.WriteString("[img " + node.Data + "]")
			started = true
		case content.KindQuote:
			if line.Len() > 0 {
				flush()
			}
			used += l.body(node.Children, row+used, depth+1)
			started = true
		case content.KindBreak:
			if started {
				flush()
			}
		}
	}
	if line.Len() > 0 {
		flush()
	}
	return used
}
