package renderer

import (
	"sort"

	"github.com/marwank/zakah"
)

// RateRow is one exchange rate.
type RateRow struct {
	ID   string
	From string
	Rate string
}

// Rates is the pre-formatted view of the shared rate table and price
// settings.
type Rates struct {
	BaseCurrency string
	GoldPrice    string
	SilverPrice  string
	// PurityPrices lists per-karat overrides as "purity -> price".
	PurityPrices []string
	Rows         []RateRow
}

// BuildRates formats the shared settings for rendering.
func BuildRates(settings zakah.PriceSettings, rates []zakah.ExchangeRate) *Rates {
	cur := settings.BaseCurrency
	v := &Rates{
		BaseCurrency: cur,
		GoldPrice:    money(settings.GoldPricePerGram, cur),
		SilverPrice:  money(settings.SilverPricePerGram, cur),
	}
	for purity, price := range settings.GoldPurityPrices {
		v.PurityPrices = append(v.PurityPrices, purity+"k -> "+money(price, cur))
	}
	sort.Strings(v.PurityPrices)
	for _, r := range rates {
		v.Rows = append(v.Rows, RateRow{
			ID:   r.ID,
			From: "1 " + r.FromCurrency,
			Rate: money(r.Rate, cur),
		})
	}
	return v
}

// RenderRates renders the Rates view to a markdown string.
func RenderRates(r *Rates) string {
	return renderTemplate("rates", "rates.md", nil, r)
}
