package form

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var displayLocales = language.NewMatcher([]language.Tag{
	language.Indonesian,
	language.English,
})

// FormatMinorUnits renders an integer minor-unit amount for a currency
// widget's display value, using locale-aware grouping and decimal
// separators. Display only: pricing arithmetic stays integer throughout
// (see sales/pricing); this function never feeds back into stored amounts.
func FormatMinorUnits(amount int64, locale string) string {
	tag, _ := language.MatchStrings(displayLocales, locale)
	p := message.NewPrinter(tag)
	major := float64(amount) / 100
	return p.Sprint(number.Decimal(major,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}
