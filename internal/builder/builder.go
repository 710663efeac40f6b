// Package builder turns raw forum pages into thread and topic records.
package builder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/glabrego/hkg-cli/internal/content"
	"github.com/glabrego/hkg-cli/internal/forum"
)

// ErrParse means the document does not look like a forum page.
var ErrParse = errors.New("builder: failed to parse page")

const (
	titleSelector      = "#thread_title"
	pageSelector       = "select[name=page]"
	replyCountSelector = "#reply_count"
	replySelector      = "table.repliers[userid][username]"
	contentSelector    = ".ContentGrid"
	publishedSelector  = ".published_at"
)

// ParseShow builds the page record for one thread page. sourceURL is the
// address the document was fetched from; its thread id is kept so further
// pages of the same thread can be requested.
func ParseShow(raw, sourceURL string) (forum.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return forum.Page{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	title := strings.TrimSpace(doc.Find(titleSelector).First().Text())
	pager := doc.Find(pageSelector).First()
	rows := doc.Find(replySelector)
	// Error pages still carry a <title>, so it does not count as evidence.
	if title == "" && pager.Length() == 0 && rows.Length() == 0 {
		return forum.Page{}, ErrParse
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	page := forum.Page{
		Title:      title,
		ReplyCount: strings.TrimSpace(doc.Find(replyCountSelector).First().Text()),
		Replies:    make([]forum.Reply, 0, rows.Length()),
	}
	if id, err := forum.ThreadID(sourceURL); err == nil {
		page.SourceQuery = id
	}

	rows.Each(func(_ int, row *goquery.Selection) {
		if reply, ok := parseReply(row); ok {
			page.Replies = append(page.Replies, reply)
		}
	})

	page.Page, page.MaxPage = pagination(pager, len(page.Replies))
	return page, nil
}

func parseReply(row *goquery.Selection) (forum.Reply, bool) {
	authorID, ok := row.Attr("userid")
	if !ok || strings.TrimSpace(authorID) == "" {
		return forum.Reply{}, false
	}
	authorName, ok := row.Attr("username")
	if !ok || strings.TrimSpace(authorName) == "" {
		return forum.Reply{}, false
	}

	reply := forum.Reply{
		AuthorID:    strings.TrimSpace(authorID),
		AuthorName:  strings.TrimSpace(authorName),
		PublishedAt: strings.TrimSpace(row.Find(publishedSelector).First().Text()),
	}
	grid := row.Find(contentSelector).First()
	if grid.Length() > 0 {
		reply.Body = content.Clean(convertChildren(grid.Nodes[0]))
	}
	return reply, true
}

// pagination reads the page picker. Without one, a page that has replies is
// a single page.
func pagination(pager *goquery.Selection, replies int) (int, int) {
	options := pager.Find("option")
	maxPage := options.Length()
	if maxPage == 0 {
		if replies > 0 {
			return 1, 1
		}
		return 0, 0
	}

	current := 1
	if selected := options.Filter("[selected]").First(); selected.Length() > 0 {
		value, _ := selected.Attr("value")
		if value == "" {
			value = selected.Text()
		}
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			current = n
		}
	}
	if current < 1 {
		current = 1
	}
	if current > maxPage {
		current = maxPage
	}
	return current, maxPage
}
