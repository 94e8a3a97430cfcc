package analyzer

import (
	"PriceBoard/internal/model"

	"github.com/shopspring/decimal"
)

// Stats summarizes a series for the viewer's table.
type Stats struct {
	Count int
	First model.PriceSample
	Last  model.PriceSample
	High  decimal.Decimal
	Low   decimal.Decimal
}

// Summarize scans the whole series for its high and low. An empty series
// yields zero Stats.
func Summarize(series model.HistorySeries) Stats {
	if len(series) == 0 {
		return Stats{}
	}
	st := Stats{
		Count: len(series),
		First: series[0],
		Last:  series[len(series)-1],
		High:  series[0].Price,
		Low:   series[0].Price,
	}
	for _, s := range series[1:] {
		if s.Price.GreaterThan(st.High) {
			st.High = s.Price
		}
		if s.Price.LessThan(st.Low) {
			st.Low = s.Price
		}
	}
	return st
}
