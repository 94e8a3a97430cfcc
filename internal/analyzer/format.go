package analyzer

import (
	"PriceBoard/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrorToken replaces the price when the current-price fetch fails.
const ErrorToken = "Ошибка"

// FormatPrice renders numeric prices in ru-RU style with two decimals.
// Text prices are returned verbatim.
func FormatPrice(p model.QuotePrice) string {
	if !p.Numeric {
		return p.Text
	}
	return message.NewPrinter(language.Russian).Sprintf("%.2f", p.Value.InexactFloat64())
}
