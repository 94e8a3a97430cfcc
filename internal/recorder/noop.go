package recorder

import (
	"context"

	"PriceBoard/internal/model"
)

// NoopRecorder is used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) SaveHistory(_ context.Context, _ string, _ []model.PriceSample) error {
	return nil
}

func (n *NoopRecorder) LoadHistory(_ context.Context, _ string) ([]model.PriceSample, error) {
	return nil, nil
}

func (n *NoopRecorder) Close() error { return nil }
