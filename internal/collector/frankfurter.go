package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"PriceBoard/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// FrankfurterFetcher reads daily USD exchange rates from the Frankfurter API.
// The symbol is the quote currency, e.g. "RUB".
type FrankfurterFetcher struct {
	Client  *resty.Client
	BaseURL string
	// Since is the first date of the requested range; the range is open-ended.
	Since string
}

// NewFrankfurterFetcher creates a fetcher starting at 2015-01-01.
func NewFrankfurterFetcher(baseURL, proxyURL string, timeout time.Duration) *FrankfurterFetcher {
	rc := resty.New().SetTimeout(timeout)
	if proxyURL != "" {
		rc.SetProxy(proxyURL)
	}
	return &FrankfurterFetcher{Client: rc, BaseURL: baseURL, Since: "2015-01-01"}
}

func (f *FrankfurterFetcher) Name() string { return "frankfurter" }

type frankfurterSeries struct {
	Base  string                                `json:"base"`
	Rates map[string]map[string]decimal.Decimal `json:"rates"`
}

func (f *FrankfurterFetcher) FetchHistory(ctx context.Context, symbol string) ([]model.PriceSample, error) {
	u := fmt.Sprintf("%s/v1/%s..", f.BaseURL, f.Since)
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"base": "USD", "symbols": symbol}).
		Get(u)
	if err != nil {
		return nil, fmt.Errorf("frankfurter fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("frankfurter: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	var series frankfurterSeries
	if err := json.Unmarshal(resp.Body(), &series); err != nil {
		return nil, fmt.Errorf("frankfurter decode: %w", err)
	}
	if series.Rates == nil {
		return nil, fmt.Errorf("frankfurter: no rates in response")
	}

	samples := make([]model.PriceSample, 0, len(series.Rates))
	for date, rates := range series.Rates {
		rate, ok := rates[symbol]
		if !ok {
			continue
		}
		samples = append(samples, model.PriceSample{Date: date, Price: rate})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Date < samples[j].Date })
	return samples, nil
}
