package collector

import (
	"context"

	"PriceBoard/internal/model"
)

// Fetcher loads the full upstream history for one symbol.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string) ([]model.PriceSample, error)
	Name() string
}
