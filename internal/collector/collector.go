package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"PriceBoard/internal/model"
	"PriceBoard/internal/recorder"
	"PriceBoard/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// ErrNoData means neither upstream, cache nor store has samples.
var ErrNoData = model.ErrNoData

type cacheEntry struct {
	samples   []model.PriceSample
	fetchedAt time.Time
}

// Collector serves resource history from a TTL cache in front of the
// upstream fetchers. When an upstream fails it falls back to the stale cache
// entry, then to the recorder's copy.
type Collector struct {
	Fetchers  map[model.SourceKind]Fetcher
	Recorder  recorder.Recorder
	Resources []model.Resource
	TTL       time.Duration
	Now       func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
	group singleflight.Group
}

// NewCollector creates a Collector over the given catalog.
func NewCollector(fetchers map[model.SourceKind]Fetcher, rec recorder.Recorder, resources []model.Resource, ttl time.Duration) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{
		Fetchers:  fetchers,
		Recorder:  rec,
		Resources: resources,
		TTL:       ttl,
		Now:       time.Now,
		cache:     make(map[string]cacheEntry),
	}
}

// Lookup finds a resource in the collector's catalog.
func (c *Collector) Lookup(key string) (model.Resource, bool) {
	for _, r := range c.Resources {
		if r.Key == key {
			return r, true
		}
	}
	return model.Resource{}, false
}

// Latest returns the most recent sample of a resource as a quote.
func (c *Collector) Latest(ctx context.Context, key string) (model.Quote, error) {
	res, ok := c.Lookup(key)
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: %s", model.ErrUnknownResource, key)
	}
	samples := c.samples(ctx, res, false)
	if len(samples) == 0 {
		return model.Quote{}, fmt.Errorf("%s: %w", key, ErrNoData)
	}
	last := samples[len(samples)-1]
	return model.Quote{
		Resource: res.Key,
		Name:     res.Name,
		Unit:     res.Unit,
		Price:    model.NumericPrice(last.Price),
		Date:     last.Date,
	}, nil
}

// History returns the samples of a resource no older than the period's
// window. An empty, non-nil slice means no data.
func (c *Collector) History(ctx context.Context, key string, period model.Period) ([]model.PriceSample, error) {
	res, ok := c.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownResource, key)
	}
	samples := c.samples(ctx, res, false)
	days := period.Days()
	if days == 0 {
		return append([]model.PriceSample{}, samples...), nil
	}
	cutoff := c.Now().AddDate(0, 0, -days).Format(time.DateOnly)
	out := make([]model.PriceSample, 0, len(samples))
	for _, s := range samples {
		if s.Date >= cutoff {
			out = append(out, s)
		}
	}
	return out, nil
}

// RefreshAll refetches every resource regardless of cache age.
func (c *Collector) RefreshAll(ctx context.Context) error {
	var errs []error
	for _, res := range c.Resources {
		if _, err := c.refresh(ctx, res); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Key, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Collector) samples(ctx context.Context, res model.Resource, force bool) []model.PriceSample {
	c.mu.Lock()
	entry, cached := c.cache[res.Key]
	c.mu.Unlock()

	if cached && !force && c.Now().Sub(entry.fetchedAt) < c.TTL {
		logger.CacheLookups.WithLabelValues("hit").Inc()
		return entry.samples
	}
	logger.CacheLookups.WithLabelValues("miss").Inc()

	samples, err := c.refresh(ctx, res)
	if err == nil {
		return samples
	}
	logger.Warn("refresh failed, using fallback", logger.String("resource", res.Key), logger.ErrorField(err))

	if cached {
		logger.CacheLookups.WithLabelValues("stale").Inc()
		return entry.samples
	}
	stored, err := c.Recorder.LoadHistory(ctx, res.Key)
	if err != nil {
		logger.Error("load stored history", logger.String("resource", res.Key), logger.ErrorField(err))
		return nil
	}
	if len(stored) > 0 {
		logger.CacheLookups.WithLabelValues("stored").Inc()
	}
	return stored
}

// refresh fetches from upstream, deduplicating concurrent calls per resource,
// and updates the cache and recorder on success.
func (c *Collector) refresh(ctx context.Context, res model.Resource) ([]model.PriceSample, error) {
	v, err, _ := c.group.Do(res.Key, func() (any, error) {
		fetcher, ok := c.Fetchers[res.Source]
		if !ok {
			return nil, fmt.Errorf("no fetcher for source %q", res.Source)
		}
		symbol := res.Symbol
		if symbol == "" {
			symbol = res.Key
		}

		start := time.Now()
		samples, err := fetcher.FetchHistory(ctx, symbol)
		if err != nil {
			logger.UpstreamFetches.WithLabelValues(fetcher.Name(), "error").Inc()
			return nil, err
		}
		logger.UpstreamFetches.WithLabelValues(fetcher.Name(), "ok").Inc()
		logger.Info("history fetched",
			logger.String("resource", res.Key),
			logger.String("fetcher", fetcher.Name()),
			logger.Int("samples", len(samples)),
			logger.Duration("took", time.Since(start)),
		)

		c.mu.Lock()
		c.cache[res.Key] = cacheEntry{samples: samples, fetchedAt: c.Now()}
		c.mu.Unlock()

		if len(samples) > 0 {
			if err := c.Recorder.SaveHistory(ctx, res.Key, samples); err != nil {
				logger.Error("save history", logger.String("resource", res.Key), logger.ErrorField(err))
			}
		}
		return samples, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.PriceSample), nil
}
