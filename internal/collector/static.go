package collector

import (
	"context"
	"time"

	"PriceBoard/internal/model"

	"github.com/shopspring/decimal"
)

// StaticFetcher returns a single sample dated today at a fixed price.
// It serves resources that have no live upstream.
type StaticFetcher struct {
	Prices map[string]decimal.Decimal
	Now    func() time.Time
}

// NewStaticFetcher builds a StaticFetcher from the static catalog entries.
func NewStaticFetcher(resources []model.Resource) *StaticFetcher {
	prices := make(map[string]decimal.Decimal)
	for _, r := range resources {
		if r.Source == model.SourceStatic {
			prices[r.Key] = r.StaticPrice
		}
	}
	return &StaticFetcher{Prices: prices, Now: time.Now}
}

func (f *StaticFetcher) Name() string { return "static" }

// FetchHistory looks the symbol up by resource key.
func (f *StaticFetcher) FetchHistory(_ context.Context, symbol string) ([]model.PriceSample, error) {
	p, ok := f.Prices[symbol]
	if !ok {
		return nil, ErrNoData
	}
	return []model.PriceSample{{Date: f.Now().Format(time.DateOnly), Price: p}}, nil
}

// MockFetcher returns canned samples for development and tests.
type MockFetcher struct {
	Samples []model.PriceSample
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, _ string) ([]model.PriceSample, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Samples, nil
}
