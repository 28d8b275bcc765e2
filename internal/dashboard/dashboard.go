// Package dashboard coordinates the provider fetches behind one feed.
//
// This package enables the dashboard to:
// - Fetch news, movies and posts concurrently
// - Publish the merged feed after every completed fetch
// - Keep going when a provider fails, with zero items from that provider
package dashboard

import (
	"context"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rastogi30/Personalized-Dashboard/internal/aggregator"
	"github.com/rastogi30/Personalized-Dashboard/internal/logging"
	"github.com/rastogi30/Personalized-Dashboard/internal/metrics"
	"github.com/rastogi30/Personalized-Dashboard/internal/newsapi"
	"github.com/rastogi30/Personalized-Dashboard/internal/social"
	"github.com/rastogi30/Personalized-Dashboard/internal/tmdb"
)

// Provider names used in snapshots and logs.
const (
	ProviderNews   = "news"
	ProviderMovies = "movies"
	ProviderSocial = "social"
)

// NewsSource fetches headlines. *newsapi.Client satisfies it.
type NewsSource interface {
	FetchHeadlines(ctx context.Context, q newsapi.Query) ([]newsapi.Article, error)
}

// MovieSource fetches trending movies, or search results when query is set.
// *tmdb.Client satisfies it.
type MovieSource interface {
	Fetch(ctx context.Context, query string) ([]tmdb.Movie, error)
}

// PostSource fetches social posts. *social.Client satisfies it.
type PostSource interface {
	FetchPosts(ctx context.Context, query string) ([]social.Post, error)
}

// Request selects what a refresh fetches.
type Request struct {
	Category string
	Query    string
}

// Snapshot is the merged feed at one point in time.
type Snapshot struct {
	// Generation identifies the refresh that produced the snapshot.
	Generation uint64
	Items      []aggregator.Item
	// Pending lists providers of this generation that have not completed.
	Pending []string
	// Errors holds the failures of this generation by provider.
	Errors map[string]error
}

// Loading reports whether fetches are still pending.
func (s Snapshot) Loading() bool {
	return len(s.Pending) > 0
}

// Failed reports whether any fetch failed.
func (s Snapshot) Failed() bool {
	return len(s.Errors) > 0
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithListener registers fn to receive every snapshot. fn is called with the
// dashboard locked and must not call back into it.
func WithListener(fn func(Snapshot)) Option {
	return func(d *Dashboard) { d.onUpdate = fn }
}

// WithLogger replaces the dashboard's logger.
func WithLogger(logger *log.Entry) Option {
	return func(d *Dashboard) { d.logger = logger }
}

// Dashboard owns the aggregator and refreshes it from the providers.
// It is safe for concurrent use.
type Dashboard struct {
	news   NewsSource
	movies MovieSource
	posts  PostSource

	mu         sync.Mutex
	agg        *aggregator.Aggregator
	generation uint64
	pending    map[string]bool
	errs       map[string]error

	onUpdate func(Snapshot)
	logger   *log.Entry
}

// New creates a dashboard over the three providers.
func New(news NewsSource, movies MovieSource, posts PostSource, opts ...Option) *Dashboard {
	d := &Dashboard{
		news:    news,
		movies:  movies,
		posts:   posts,
		agg:     aggregator.New(),
		pending: make(map[string]bool),
		errs:    make(map[string]error),
		logger:  logging.For("dashboard"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Refresh fetches all providers concurrently and returns the snapshot after
// the last one completes.
//
// Every completion is merged immediately, including completions that belong
// to an older refresh which arrive after a newer one started. Snapshot
// generations make that ordering visible to listeners.
func (d *Dashboard) Refresh(ctx context.Context, req Request) Snapshot {
	d.mu.Lock()
	d.generation++
	gen := d.generation
	d.pending = map[string]bool{ProviderNews: true, ProviderMovies: true, ProviderSocial: true}
	d.errs = make(map[string]error)
	d.emit()
	d.mu.Unlock()

	logger := d.logger.WithFields(log.Fields{
		"generation": gen,
		"category":   req.Category,
		"query":      req.Query,
	})
	logger.Debug("Refreshing feed")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		articles, err := d.news.FetchHeadlines(gctx, newsapi.Query{Category: req.Category, Q: req.Query})
		d.complete(gen, ProviderNews, err, logger, func(a *aggregator.Aggregator) { a.SetNews(articles) })
		return nil
	})
	g.Go(func() error {
		movies, err := d.movies.Fetch(gctx, req.Query)
		d.complete(gen, ProviderMovies, err, logger, func(a *aggregator.Aggregator) { a.SetMovies(movies) })
		return nil
	})
	g.Go(func() error {
		posts, err := d.posts.FetchPosts(gctx, req.Query)
		d.complete(gen, ProviderSocial, err, logger, func(a *aggregator.Aggregator) { a.SetPosts(posts) })
		return nil
	})
	_ = g.Wait()

	return d.Snapshot()
}

// complete merges one provider result. A failed provider contributes no items.
func (d *Dashboard) complete(gen uint64, provider string, err error, logger *log.Entry, apply func(*aggregator.Aggregator)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		logger.WithError(err).WithField("provider", provider).Warn("Provider fetch failed")
		apply = func(a *aggregator.Aggregator) { clearProvider(a, provider) }
	}
	apply(d.agg)

	if gen == d.generation {
		delete(d.pending, provider)
		if err != nil {
			d.errs[provider] = err
		}
	}

	for kind, n := range d.agg.Counts() {
		metrics.MergedItems.WithLabelValues(string(kind)).Set(float64(n))
	}
	d.emit()
}

func clearProvider(a *aggregator.Aggregator, provider string) {
	switch provider {
	case ProviderNews:
		a.SetNews(nil)
	case ProviderMovies:
		a.SetMovies(nil)
	case ProviderSocial:
		a.SetPosts(nil)
	}
}

// Snapshot returns the current merged feed.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot()
}

func (d *Dashboard) snapshot() Snapshot {
	pending := make([]string, 0, len(d.pending))
	for p := range d.pending {
		pending = append(pending, p)
	}
	sort.Strings(pending)

	errs := make(map[string]error, len(d.errs))
	for p, err := range d.errs {
		errs[p] = err
	}

	return Snapshot{
		Generation: d.generation,
		Items:      d.agg.Feed(),
		Pending:    pending,
		Errors:     errs,
	}
}

func (d *Dashboard) emit() {
	if d.onUpdate != nil {
		d.onUpdate(d.snapshot())
	}
}
