package show

import (
	"fmt"
	"strings"
	"time"

	"github.com/glabrego/hkg-cli/internal/forum"
)

// chromeRows is the header, its rule and the status line.
const chromeRows = 3

// Frame is one full screen of the thread view.
type Frame struct {
	Width      int
	Height     int
	Title      string
	Rule       string
	Body       []Line
	BodyHeight int
	Status     string
	// TotalRows is the height of the whole page layout, used to bound
	// scrolling.
	TotalRows int
}

// BodyHeight is the number of rows left for replies on a screen of height
// rows.
func BodyHeight(height int) int {
	return sat(height - chromeRows)
}

// HeaderTitle is the centered title of a thread page.
func HeaderTitle(page forum.Page, forumTitle string) string {
	return fmt.Sprintf("%s - %s [%d/%d]", page.Title, forumTitle, page.Page, page.MaxPage)
}

// Compose lays out page under the header for a width by height screen.
func Compose(page forum.Page, forumTitle, status string, offset, width, height int, now time.Time) Frame {
	bodyHeight := BodyHeight(height)
	body := RenderAt(page.Replies, offset, width, bodyHeight, now)
	return Frame{
		Width:      sat(width),
		Height:     sat(height),
		Title:      center(HeaderTitle(page, forumTitle), sat(width)),
		Rule:       strings.Repeat("─", sat(width)),
		Body:       body.Lines,
		BodyHeight: bodyHeight,
		Status:     truncate(status, sat(width)),
		TotalRows:  body.NextRow,
	}
}

// Rows returns the frame as plain text, exactly Height rows.
func (f Frame) Rows() []string {
	rows := make([]string, f.Height)
	if f.Height > 0 {
		rows[0] = f.Title
	}
	if f.Height > 1 {
		rows[1] = f.Rule
	}
	for _, line := range f.Body {
		if idx := 2 + line.Row; idx < f.Height {
			rows[idx] = line.Text
		}
	}
	if f.Height >= chromeRows {
		rows[f.Height-1] = f.Status
	}
	return rows
}

// String joins Rows with newlines.
func (f Frame) String() string {
	return strings.Join(f.Rows(), "\n")
}
