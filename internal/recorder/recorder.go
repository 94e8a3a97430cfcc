package recorder

import (
	"context"

	"PriceBoard/internal/model"
)

// Recorder persists the last fetched history of each resource so that a
// restarted server can answer while upstreams are down.
type Recorder interface {
	// SaveHistory replaces the stored samples of a resource.
	SaveHistory(ctx context.Context, resource string, samples []model.PriceSample) error
	// LoadHistory returns the stored samples in date order.
	LoadHistory(ctx context.Context, resource string) ([]model.PriceSample, error)
	Close() error
}
