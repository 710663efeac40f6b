package forum

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ThreadParam is the query parameter carrying the thread id in page links.
const ThreadParam = "message"

// Site builds page URLs for one channel of the forum.
type Site struct {
	BaseURL string
	Channel string
}

func NewSite(baseURL, channel string) Site {
	return Site{BaseURL: strings.TrimRight(baseURL, "/"), Channel: channel}
}

func (s Site) IndexURL() string {
	q := make(url.Values)
	q.Set("type", s.Channel)
	return s.BaseURL + "/topics.aspx?" + q.Encode()
}

func (s Site) ShowURL(threadID string, page int) string {
	if page < 1 {
		page = 1
	}
	q := make(url.Values)
	q.Set("type", s.Channel)
	q.Set(ThreadParam, threadID)
	q.Set("page", strconv.Itoa(page))
	return s.BaseURL + "/view.aspx?" + q.Encode()
}

// ThreadID extracts the thread id from a page link. Relative links and bare
// query strings are accepted.
func ThreadID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty thread link")
	}
	if !strings.Contains(raw, "?") && strings.Contains(raw, "=") {
		raw = "?" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse thread link: %w", err)
	}
	id := strings.TrimSpace(parsed.Query().Get(ThreadParam))
	if id == "" {
		return "", fmt.Errorf("thread link has no %s parameter: %s", ThreadParam, raw)
	}
	return id, nil
}
