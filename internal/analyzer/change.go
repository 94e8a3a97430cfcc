package analyzer

import (
	"strings"

	"PriceBoard/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Change is the percentage move from the first to the last sample of a series.
type Change struct {
	Percent decimal.Decimal
}

// ComputeChange returns (last-first)/first*100 over the series as given.
// It reports false for series shorter than two samples and for a zero first
// price, where the percentage is undefined.
func ComputeChange(series model.HistorySeries) (Change, bool) {
	if len(series) < 2 {
		return Change{}, false
	}
	first := series[0].Price
	last := series[len(series)-1].Price
	if first.IsZero() {
		return Change{}, false
	}
	return Change{Percent: last.Sub(first).Div(first).Mul(hundred)}, true
}

// Trend classifies the change; zero counts as positive.
func (c Change) Trend() model.Trend {
	if c.Percent.Sign() < 0 {
		return model.TrendNegative
	}
	return model.TrendPositive
}

// String renders the change as "+10.00%" / "-10.00%".
func (c Change) String() string {
	s := c.Percent.StringFixed(2)
	switch {
	case c.Percent.Sign() >= 0:
		s = "+" + s
	case !strings.HasPrefix(s, "-"):
		// rounds to zero but is still negative
		s = "-" + s
	}
	return s + "%"
}
