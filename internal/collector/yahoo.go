package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"PriceBoard/internal/model"
	"PriceBoard/pkg/logger"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// DefaultYahooHosts are tried in order until one returns a usable chart.
var DefaultYahooHosts = []string{
	"https://query2.finance.yahoo.com",
	"https://query5.finance.yahoo.com",
	"https://query1.finance.yahoo.com",
}

// YahooFetcher reads weekly closes from the Yahoo Finance chart API.
type YahooFetcher struct {
	Client   *resty.Client
	Hosts    []string
	Range    string
	Interval string
	// Location is used to turn bar timestamps into calendar dates.
	Location *time.Location
}

// NewYahooFetcher creates a fetcher for the last five years of weekly bars.
func NewYahooFetcher(proxyURL string, timeout time.Duration) *YahooFetcher {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		rc.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		Client:   rc,
		Hosts:    DefaultYahooHosts,
		Range:    "5y",
		Interval: "1wk",
		Location: time.Local,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory tries each host in turn and returns the first chart that
// decodes with a result.
func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol string) ([]model.PriceSample, error) {
	var errs []error
	for _, host := range f.Hosts {
		samples, err := f.fetchChart(ctx, host, symbol)
		if err != nil {
			logger.Warn("yahoo host failed",
				logger.String("host", host),
				logger.String("symbol", symbol),
				logger.ErrorField(err),
			)
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return samples, nil
	}
	return nil, fmt.Errorf("yahoo %s: all hosts failed: %w", symbol, errors.Join(errs...))
}

func (f *YahooFetcher) fetchChart(ctx context.Context, host, symbol string) ([]model.PriceSample, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", host, url.PathEscape(symbol))
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"range": f.Range, "interval": f.Interval}).
		Get(u)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode())
	}

	var chart yahooChart
	if err := json.Unmarshal(resp.Body(), &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no result")
	}

	result := chart.Chart.Result[0]
	var closes []*float64
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}

	samples := make([]model.PriceSample, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // holidays and the open bar come back as null
		}
		samples = append(samples, model.PriceSample{
			Date:  time.Unix(ts, 0).In(loc).Format(time.DateOnly),
			Price: decimal.NewFromFloat(*closes[i]),
		})
	}
	return samples, nil
}
