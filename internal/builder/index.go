package builder

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/glabrego/hkg-cli/internal/forum"
)

// ParseIndex lists the topics of a channel index page.
func ParseIndex(raw string) ([]forum.Topic, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, ErrParse
	}

	var topics []forum.Topic
	doc.Find("tr.topic_row").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a.topic_title[href]").First()
		href, _ := link.Attr("href")
		id, err := forum.ThreadID(href)
		if err != nil {
			return
		}
		topics = append(topics, forum.Topic{
			ID:          id,
			Title:       cellText(link),
			Author:      cellText(row.Find(".topic_author")),
			LastReplied: cellText(row.Find(".topic_last_replied")),
			ReplyCount:  cellText(row.Find(".topic_reply_count")),
			Rating:      cellText(row.Find(".topic_rating")),
		})
	})
	if len(topics) == 0 {
		return nil, ErrParse
	}
	return topics, nil
}

func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.First().Text()), " ")
}
