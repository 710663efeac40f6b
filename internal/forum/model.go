package forum

import "github.com/glabrego/hkg-cli/internal/content"

// Topic is one row of the channel index.
type Topic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	LastReplied string `json:"last_replied"`
	ReplyCount  string `json:"reply_count"`
	Rating      string `json:"rating"`
}

// Reply is a single post of a thread page. PublishedAt keeps the raw
// timestamp exactly as the page printed it.
type Reply struct {
	AuthorID    string
	AuthorName  string
	PublishedAt string
	Body        []content.Node
}

// Page is one fetched page of a thread. The zero value means nothing is
// loaded yet.
type Page struct {
	Title       string
	Page        int
	MaxPage     int
	ReplyCount  string
	SourceQuery string
	Replies     []Reply
}

func (p Page) IsZero() bool {
	return p.MaxPage == 0 && p.SourceQuery == "" && len(p.Replies) == 0
}

func (p Page) HasNext() bool {
	return p.MaxPage > 0 && p.Page < p.MaxPage
}

func (p Page) HasPrev() bool {
	return p.Page > 1
}
