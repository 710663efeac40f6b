package app

import (
	"context"
	"fmt"
	"time"

	"github.com/glabrego/hkg-cli/internal/builder"
	"github.com/glabrego/hkg-cli/internal/cache"
	"github.com/glabrego/hkg-cli/internal/fetch"
	"github.com/glabrego/hkg-cli/internal/forum"
)

type PageFetcher interface {
	Get(ctx context.Context, req fetch.Request) (fetch.Result, error)
}

type Service struct {
	fetcher PageFetcher
	site    forum.Site
	now     func() time.Time
}

// Index is a parsed channel index.
type Index struct {
	Topics    []forum.Topic
	FromCache bool
}

// Thread is one parsed page of a thread and the address it came from.
type Thread struct {
	Page      forum.Page
	URL       string
	FromCache bool
}

func NewService(fetcher PageFetcher, site forum.Site) *Service {
	return &Service{fetcher: fetcher, site: site, now: time.Now}
}

func (s *Service) Site() forum.Site {
	return s.site
}

// LoadIndex returns the topics of the channel. Index pages are cached per
// minute, so force is only needed to refresh within the same minute.
func (s *Service) LoadIndex(ctx context.Context, force bool) (Index, error) {
	res, err := s.fetcher.Get(ctx, fetch.Request{
		URL:   s.site.IndexURL(),
		Key:   cache.IndexKey(s.now()),
		Force: force,
	})
	if err != nil {
		return Index{}, err
	}

	topics, err := builder.ParseIndex(res.Body)
	if err != nil {
		if res.Err != nil {
			return Index{}, fmt.Errorf("load topics: %w", res.Err)
		}
		return Index{}, fmt.Errorf("load topics: %w", err)
	}
	return Index{Topics: topics, FromCache: res.FromCache}, nil
}

// LoadThread returns one page of a thread.
func (s *Service) LoadThread(ctx context.Context, threadID string, page int, force bool) (Thread, error) {
	if page < 1 {
		page = 1
	}
	url := s.site.ShowURL(threadID, page)
	res, err := s.fetcher.Get(ctx, fetch.Request{
		URL:   url,
		Key:   cache.ShowKey(threadID, page),
		Force: force,
	})
	if err != nil {
		return Thread{}, err
	}

	parsed, err := builder.ParseShow(res.Body, url)
	if err != nil {
		if res.Err != nil {
			return Thread{}, fmt.Errorf("load thread %s page %d: %w", threadID, page, res.Err)
		}
		return Thread{}, fmt.Errorf("load thread %s page %d: %w", threadID, page, err)
	}
	if parsed.SourceQuery == "" {
		parsed.SourceQuery = threadID
	}
	return Thread{Page: parsed, URL: url, FromCache: res.FromCache}, nil
}

// StartIndex runs LoadIndex in the background.
func (s *Service) StartIndex(ctx context.Context, force bool) *fetch.Task[Index] {
	return fetch.Go(ctx, 0, func(ctx context.Context) (Index, error) {
		return s.LoadIndex(ctx, force)
	})
}

// StartThread runs LoadThread in the background.
func (s *Service) StartThread(ctx context.Context, threadID string, page int, force bool) *fetch.Task[Thread] {
	return fetch.Go(ctx, 0, func(ctx context.Context) (Thread, error) {
		return s.LoadThread(ctx, threadID, page, force)
	})
}
