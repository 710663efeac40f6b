package state

import "github.com/glabrego/hkg-cli/internal/forum"

// MaxScroll is the ceiling for the thread scroll offset.
const MaxScroll = 10000

// Scroll holds the vertical offset of the thread view. The zero value is at
// the top.
type Scroll struct {
	offset int
}

func (s Scroll) Offset() int {
	return s.offset
}

// ScrollUp moves up by n rows, stopping at the top. It reports whether the
// offset changed.
func (s *Scroll) ScrollUp(n int) bool {
	if n <= 0 || s.offset == 0 {
		return false
	}
	s.offset -= n
	if s.offset < 0 {
		s.offset = 0
	}
	return true
}

// ScrollDown moves down by n rows. It reports a change while the offset is
// below MaxScroll.
func (s *Scroll) ScrollDown(n int) bool {
	if n <= 0 || s.offset >= MaxScroll {
		return false
	}
	s.offset += n
	if s.offset > MaxScroll {
		s.offset = MaxScroll
	}
	return true
}

func (s *Scroll) Reset() {
	s.offset = 0
}

// PageTarget returns the page reached by moving delta pages from page, and
// whether that page exists.
func PageTarget(page forum.Page, delta int) (int, bool) {
	if delta == 0 || (delta > 0 && !page.HasNext()) || (delta < 0 && !page.HasPrev()) {
		return page.Page, false
	}
	target := page.Page + delta
	if target < 1 || target > page.MaxPage {
		return page.Page, false
	}
	return target, true
}

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// PageStep is how far page up and page down move in a list of height rows.
func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 2
	if hasStatus {
		headerLines++
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

func TopicIndexByID(topics []forum.Topic, id string) int {
	for i, topic := range topics {
		if topic.ID == id {
			return i
		}
	}
	return -1
}
