package analyzer

import (
	"testing"

	"PriceBoard/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(prices ...string) model.HistorySeries {
	out := make(model.HistorySeries, len(prices))
	for i, p := range prices {
		out[i] = model.PriceSample{Date: "d" + decimal.NewFromInt(int64(i+1)).String(), Price: decimal.RequireFromString(p)}
	}
	return out
}

func TestComputeChange_Examples(t *testing.T) {
	tests := []struct {
		name  string
		in    model.HistorySeries
		text  string
		trend model.Trend
	}{
		{name: "rise", in: series("100", "110"), text: "+10.00%", trend: model.TrendPositive},
		{name: "fall", in: series("100", "90"), text: "-10.00%", trend: model.TrendNegative},
		{name: "flat is positive", in: series("100", "100"), text: "+0.00%", trend: model.TrendPositive},
		{name: "middle samples ignored", in: series("50", "500", "1", "55"), text: "+10.00%", trend: model.TrendPositive},
		{name: "tiny fall keeps sign", in: series("100000", "99999.999"), text: "-0.00%", trend: model.TrendNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ComputeChange(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.text, c.String())
			assert.Equal(t, tt.trend, c.Trend())
		})
	}
}

func TestComputeChange_Absent(t *testing.T) {
	_, ok := ComputeChange(nil)
	assert.False(t, ok)
	_, ok = ComputeChange(model.HistorySeries{})
	assert.False(t, ok)
	_, ok = ComputeChange(series("100"))
	assert.False(t, ok)
	_, ok = ComputeChange(series("0", "10"))
	assert.False(t, ok, "zero first price has no percentage")
}

func TestComputeChange_SignMatchesDifference(t *testing.T) {
	pairs := [][2]string{
		{"1", "2"}, {"2", "1"}, {"71.33", "71.33"}, {"0.0001", "0.0002"},
		{"2500", "2499.99"}, {"56.31", "92.4"}, {"1900.5", "1899"},
	}
	for _, p := range pairs {
		c, ok := ComputeChange(series(p[0], p[1]))
		require.True(t, ok)
		diff := decimal.RequireFromString(p[1]).Sub(decimal.RequireFromString(p[0]))
		assert.Equal(t, diff.Sign(), c.Percent.Sign(), "%s -> %s", p[0], p[1])
	}
}

func TestComputeChange_NotSorted(t *testing.T) {
	in := model.HistorySeries{
		{Date: "2024-03-01", Price: decimal.NewFromInt(90)},
		{Date: "2024-01-01", Price: decimal.NewFromInt(100)},
	}
	c, ok := ComputeChange(in)
	require.True(t, ok)
	assert.Equal(t, "+11.11%", c.String())
}

func TestSummarize(t *testing.T) {
	st := Summarize(series("10", "14", "7", "12"))
	assert.Equal(t, 4, st.Count)
	assert.Equal(t, "d1", st.First.Date)
	assert.Equal(t, "d4", st.Last.Date)
	assert.True(t, st.High.Equal(decimal.NewFromInt(14)))
	assert.True(t, st.Low.Equal(decimal.NewFromInt(7)))

	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "110,50", FormatPrice(model.NumericPrice(decimal.RequireFromString("110.5"))))
	assert.Equal(t, "n/a", FormatPrice(model.QuotePrice{Text: "n/a"}))
	assert.Equal(t, "2500", FormatPrice(model.QuotePrice{Text: "2500"}))
}
