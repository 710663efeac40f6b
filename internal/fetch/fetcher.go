// Package fetch retrieves raw pages through the cache.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/glabrego/hkg-cli/internal/cache"
)

const (
	defaultTimeout  = 10 * time.Second
	memoExpiration  = 10 * time.Minute
	memoCleanup     = 20 * time.Minute
	writeTimeout    = 5 * time.Second
	diagnosticLabel = "fetch failed: "
)

// Getter performs the network retrieval of one page.
type Getter interface {
	Get(ctx context.Context, url string) (string, error)
}

type Request struct {
	URL string
	Key cache.Key
	// Force skips cached copies. The result is still written through.
	Force bool
}

// Result is what a fetch produced. When the network failed, Body holds a
// diagnostic text and Err keeps the cause; callers render Body either way.
type Result struct {
	Body      string
	FromCache bool
	Shared    bool
	Err       error

	abandoned bool
}

type Fetcher struct {
	client  Getter
	store   cache.Store
	memo    *gocache.Cache
	group   singleflight.Group
	timeout time.Duration
	log     logrus.FieldLogger

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the detached context of one shared download. It is canceled once
// every caller waiting on it has gone away.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

type Option func(*Fetcher)

// WithTimeout bounds every network retrieval.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// WithoutMemo disables the in-memory layer in front of the store.
func WithoutMemo() Option {
	return func(f *Fetcher) {
		f.memo = nil
	}
}

func New(client Getter, store cache.Store, opts ...Option) *Fetcher {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	f := &Fetcher{
		client:  client,
		store:   store,
		memo:    gocache.New(memoExpiration, memoCleanup),
		timeout: defaultTimeout,
		log:     quiet,
		flights: map[string]*flight{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get returns the page for req, reading the cache first. On a miss the page
// is downloaded and written through before it is returned. The only errors
// returned are ctx errors; network failures are reported in Result.Err.
func (f *Fetcher) Get(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	key := req.Key.String()
	log := f.log.WithFields(logrus.Fields{"bucket": req.Key.Bucket, "name": req.Key.Name})

	if !req.Force {
		if body, ok := f.memoGet(key); ok {
			log.Debug("memo hit")
			return Result{Body: body, FromCache: true}, nil
		}
		body, err := f.store.Read(ctx, req.Key.Bucket, req.Key.Name)
		switch {
		case err == nil:
			log.Debug("cache hit")
			f.memoSet(key, body)
			return Result{Body: body, FromCache: true}, nil
		case errors.Is(err, cache.ErrMiss):
			log.Debug("cache miss")
		case ctx.Err() != nil:
			return Result{}, ctx.Err()
		default:
			log.WithError(err).Warn("cache read failed, fetching")
		}
	}

	for {
		res, err := f.download(ctx, key, req)
		if err != nil {
			return Result{}, err
		}
		// Joined a download that its own callers had already abandoned.
		if res.abandoned {
			continue
		}
		return res, nil
	}
}

func (f *Fetcher) download(ctx context.Context, key string, req Request) (Result, error) {
	fl := f.join(key)
	ch := f.group.DoChan(key, func() (any, error) {
		return f.retrieve(fl.ctx, req), nil
	})
	select {
	case <-ctx.Done():
		f.leave(key, fl)
		return Result{}, ctx.Err()
	case r := <-ch:
		f.leave(key, fl)
		res := r.Val.(Result)
		res.Shared = r.Shared
		return res, nil
	}
}

func (f *Fetcher) join(key string) *flight {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl, ok := f.flights[key]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		fl = &flight{ctx: ctx, cancel: cancel}
		f.flights[key] = fl
	}
	fl.waiters++
	return fl
}

func (f *Fetcher) leave(key string, fl *flight) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl.waiters--
	if fl.waiters > 0 {
		return
	}
	if f.flights[key] == fl {
		delete(f.flights, key)
	}
	fl.cancel()
}

// Start runs Get on its own goroutine. The returned task can be waited on or
// canceled from the UI loop.
func (f *Fetcher) Start(ctx context.Context, req Request) *Task[Result] {
	return Go(ctx, 0, func(ctx context.Context) (Result, error) {
		return f.Get(ctx, req)
	})
}

// retrieve runs detached from any single caller so that callers sharing the
// download can come and go. The fetch timeout bounds it. When every caller
// has left, nothing is written.
func (f *Fetcher) retrieve(parent context.Context, req Request) Result {
	log := f.log.WithFields(logrus.Fields{"url": req.URL, "bucket": req.Key.Bucket, "name": req.Key.Name})

	ctx, cancel := context.WithTimeout(parent, f.timeout)
	defer cancel()

	start := time.Now()
	body, err := f.client.Get(ctx, req.URL)
	res := Result{Body: body}
	if err != nil && parent.Err() != nil {
		log.Debug("download abandoned")
		return Result{abandoned: true, Err: parent.Err()}
	}
	if err != nil {
		log.WithError(err).Warn("fetch failed")
		res.Body = Diagnostic(err)
		res.Err = fmt.Errorf("fetch %s: %w", req.URL, err)
	} else {
		log.WithField("duration", time.Since(start)).Info("fetched page")
		f.memoSet(req.Key.String(), body)
	}

	writeCtx, writeCancel := context.WithTimeout(context.Background(), writeTimeout)
	defer writeCancel()
	if err := f.store.Write(writeCtx, req.Key.Bucket, req.Key.Name, res.Body); err != nil {
		log.WithError(err).Warn("cache write failed")
	}
	return res
}

// Diagnostic renders a fetch failure as page text.
func Diagnostic(err error) string {
	return diagnosticLabel + err.Error()
}

func (f *Fetcher) memoGet(key string) (string, bool) {
	if f.memo == nil {
		return "", false
	}
	v, ok := f.memo.Get(key)
	if !ok {
		return "", false
	}
	body, ok := v.(string)
	return body, ok
}

func (f *Fetcher) memoSet(key, body string) {
	if f.memo == nil {
		return
	}
	f.memo.SetDefault(key, body)
}
