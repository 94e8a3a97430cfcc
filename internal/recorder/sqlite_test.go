package recorder

import (
	"context"
	"path/filepath"
	"testing"

	"PriceBoard/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "priceboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_SaveReplacesHistory(t *testing.T) {
	ctx := context.Background()
	r := openTemp(t)

	first := []model.PriceSample{
		{Date: "2024-01-12", Price: decimal.RequireFromString("72.68")},
		{Date: "2024-01-05", Price: decimal.RequireFromString("73.81")},
	}
	require.NoError(t, r.SaveHistory(ctx, "oil", first))

	got, err := r.LoadHistory(ctx, "oil")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-05", got[0].Date, "loaded in date order")
	assert.True(t, got[1].Price.Equal(decimal.RequireFromString("72.68")))

	second := []model.PriceSample{{Date: "2024-02-02", Price: decimal.NewFromInt(75)}}
	require.NoError(t, r.SaveHistory(ctx, "oil", second))

	got, err = r.LoadHistory(ctx, "oil")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-02-02", got[0].Date)
}

func TestSQLiteRecorder_ResourcesAreIsolated(t *testing.T) {
	ctx := context.Background()
	r := openTemp(t)

	require.NoError(t, r.SaveHistory(ctx, "gold", []model.PriceSample{{Date: "2024-01-05", Price: decimal.NewFromInt(2040)}}))

	got, err := r.LoadHistory(ctx, "silver")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	require.NoError(t, r.SaveHistory(context.Background(), "oil", nil))
	got, err := r.LoadHistory(context.Background(), "oil")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, r.Close())
}
