package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceSample is a single dated price as served by /api/history.
type PriceSample struct {
	Date  string          `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// MarshalJSON writes the price as a bare JSON number.
func (s PriceSample) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string      `json:"date"`
		Price json.Number `json:"price"`
	}{s.Date, json.Number(s.Price.String())})
}

// HistorySeries is the ordered sample list for one (resource, period) pair.
// Order is whatever the data source delivered; nothing here sorts it.
type HistorySeries []PriceSample

// Labels returns the sample dates in series order.
func (h HistorySeries) Labels() []string {
	out := make([]string, len(h))
	for i, s := range h {
		out[i] = s.Date
	}
	return out
}

// Values returns the sample prices in series order.
func (h HistorySeries) Values() []float64 {
	out := make([]float64, len(h))
	for i, s := range h {
		out[i] = s.Price.InexactFloat64()
	}
	return out
}

// QuotePrice is the current price field, which upstream may send as a JSON
// number or as a string. Strings are kept verbatim in Text, even when they
// look numeric; only JSON numbers are formatted.
type QuotePrice struct {
	Value   decimal.Decimal
	Text    string
	Numeric bool
}

// NumericPrice wraps a decimal as a numeric QuotePrice.
func NumericPrice(d decimal.Decimal) QuotePrice {
	return QuotePrice{Value: d, Numeric: true}
}

// IsZero reports whether the price is missing, zero or an empty string.
func (p QuotePrice) IsZero() bool {
	if p.Numeric {
		return p.Value.IsZero()
	}
	return p.Text == ""
}

func (p QuotePrice) MarshalJSON() ([]byte, error) {
	switch {
	case p.Numeric:
		return []byte(p.Value.String()), nil
	case p.Text != "":
		return json.Marshal(p.Text)
	default:
		return []byte("null"), nil
	}
}

func (p *QuotePrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*p = QuotePrice{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode price string: %w", err)
		}
		p.Text = s
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("decode price number %q: %w", data, err)
	}
	*p = NumericPrice(d)
	return nil
}

// Quote is the /api/price response.
type Quote struct {
	Resource string     `json:"resource"`
	Name     string     `json:"name"`
	Unit     string     `json:"unit"`
	Price    QuotePrice `json:"price"`
	Date     string     `json:"date"`
}

// Trend is the binary classification of a price change used for styling.
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
)
