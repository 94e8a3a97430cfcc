package analyzer

import (
	"context"
	"errors"
	"sync"

	"PriceBoard/internal/model"
	"PriceBoard/pkg/logger"
)

// DataSource fetches quotes and history for a resource.
type DataSource interface {
	FetchPrice(ctx context.Context, resource string) (model.Quote, error)
	FetchHistory(ctx context.Context, resource string, period model.Period) (model.HistorySeries, error)
}

// Display receives everything the analyzer shows.
type Display interface {
	ShowPrice(text string)
	ShowChange(text string, trend model.Trend)
	RenderTrend(labels []string, values []float64, name string)
}

// State is the loading state of an Analyzer.
type State int

const (
	Idle State = iota
	Loading
)

func (s State) String() string {
	if s == Loading {
		return "loading"
	}
	return "idle"
}

// Result is the outcome of one RefreshForPeriod call.
type Result struct {
	Seq       uint64
	Period    model.Period
	Series    model.HistorySeries
	Change    Change
	HasChange bool
	Stats     Stats
	// Stale is set when a newer refresh was issued before this one
	// completed; stale results never reach the display.
	Stale bool
}

// Analyzer turns fetched history into display updates. Refreshes may overlap;
// only the most recently issued one is allowed to update the display.
type Analyzer struct {
	source     DataSource
	display    Display
	seriesName string

	mu       sync.Mutex
	latest   uint64
	inflight int
}

// New creates an Analyzer. seriesName labels the rendered trend.
func New(source DataSource, display Display, seriesName string) *Analyzer {
	return &Analyzer{source: source, display: display, seriesName: seriesName}
}

// State reports Loading while any fetch is outstanding.
func (a *Analyzer) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inflight > 0 {
		return Loading
	}
	return Idle
}

// Load performs the initial load: current price, then the full history.
func (a *Analyzer) Load(ctx context.Context, resource string) Result {
	a.LoadPrice(ctx, resource)
	return a.RefreshForPeriod(ctx, resource, model.DefaultPeriod)
}

// LoadPrice fetches and shows the current price. A failed fetch shows
// ErrorToken instead. A zero or empty price, or a source answering that it
// has no data, leaves the display as is.
func (a *Analyzer) LoadPrice(ctx context.Context, resource string) (model.Quote, bool) {
	a.mu.Lock()
	a.inflight++
	a.mu.Unlock()
	defer a.done()

	q, err := a.source.FetchPrice(ctx, resource)
	if errors.Is(err, model.ErrNoData) {
		logger.Info("no price data", logger.String("resource", resource), logger.ErrorField(err))
		return model.Quote{}, false
	}
	if err != nil {
		logger.Warn("fetch price failed", logger.String("resource", resource), logger.ErrorField(err))
		a.display.ShowPrice(ErrorToken)
		return model.Quote{}, false
	}
	if !q.Price.IsZero() {
		a.display.ShowPrice(FormatPrice(q.Price))
	}
	return q, true
}

// RefreshForPeriod fetches history for the period, computes the change and
// renders it. A failed or empty fetch is treated as an empty series and
// leaves the chart and change untouched.
func (a *Analyzer) RefreshForPeriod(ctx context.Context, resource string, period model.Period) Result {
	a.mu.Lock()
	a.latest++
	seq := a.latest
	a.inflight++
	a.mu.Unlock()
	defer a.done()

	series, err := a.source.FetchHistory(ctx, resource, period)
	if err != nil {
		logger.Warn("fetch history failed",
			logger.String("resource", resource),
			logger.String("period", string(period)),
			logger.ErrorField(err),
		)
		series = nil
	}

	res := Result{Seq: seq, Period: period, Series: series}
	res.Change, res.HasChange = ComputeChange(series)
	res.Stats = Summarize(series)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.latest {
		res.Stale = true
		logger.Debug("discarding stale history",
			logger.String("period", string(period)),
			logger.Uint64("seq", seq),
			logger.Uint64("latest", a.latest),
		)
		return res
	}
	if len(series) == 0 {
		return res
	}
	a.display.RenderTrend(series.Labels(), series.Values(), a.seriesName)
	if res.HasChange {
		a.display.ShowChange(res.Change.String(), res.Change.Trend())
	}
	return res
}

func (a *Analyzer) done() {
	a.mu.Lock()
	a.inflight--
	a.mu.Unlock()
}
