package renderer

import (
	"github.com/marwank/zakah"
	"github.com/shopspring/decimal"
)

// CashRow is one currency holding, with its base-currency value
// already converted.
type CashRow struct {
	ID        string
	Label     string
	Amount    string
	BaseValue string
	// NoRate marks a holding whose currency has no exchange rate: it
	// silently counts as zero in every aggregate, so the report flags
	// it rather than hiding the gap.
	NoRate bool
}

// MetalRow is one metal holding with its valuation details.
type MetalRow struct {
	ID       string
	Label    string
	Metal    string
	Weight   string
	Purity   string
	PureGold string // 24k-equivalent weight, gold only
	Value    string
}

// Assets is the pre-formatted view of a person's holdings.
type Assets struct {
	PersonName   string
	BaseCurrency string
	Cash         []CashRow
	Metals       []MetalRow
	CashTotal    string
	MetalsTotal  string
}

// BuildAssets formats all holdings of the state for rendering.
func BuildAssets(personName string, state zakah.State) *Assets {
	settings := state.PriceSettings
	cur := settings.BaseCurrency

	a := &Assets{PersonName: personName, BaseCurrency: cur}

	var cashTotal decimal.Decimal
	for _, h := range state.CurrencyHoldings {
		converted := zakah.ConvertToBase(h.Amount, h.Currency, cur, state.ExchangeRates)
		cashTotal = cashTotal.Add(converted)
		noRate := h.Currency != cur && !hasRate(state.ExchangeRates, h.Currency)
		a.Cash = append(a.Cash, CashRow{
			ID:        h.ID,
			Label:     h.Label,
			Amount:    money(h.Amount, h.Currency),
			BaseValue: money(converted, cur),
			NoRate:    noRate,
		})
	}
	a.CashTotal = money(cashTotal, cur)

	var metalsTotal decimal.Decimal
	for _, h := range state.MetalHoldings {
		row := MetalRow{
			ID:     h.ID,
			Label:  h.Label,
			Metal:  string(h.Type),
			Weight: FormatWeight(h.WeightGrams),
			Purity: FormatPurity(h.Purity, h.PurityUnit),
		}
		var value decimal.Decimal
		switch h.Type {
		case zakah.Gold:
			var custom *decimal.Decimal
			if p, ok := settings.GoldPurityPrice(h.Purity); ok {
				custom = &p
			}
			value = zakah.GoldValue(h, settings.GoldPricePerGram, custom)
			row.PureGold = FormatWeight(h.Equivalent24kWeight())
		case zakah.Silver:
			value = zakah.SilverValue(h, settings.SilverPricePerGram)
		}
		row.Value = money(value, cur)
		metalsTotal = metalsTotal.Add(value)
		a.Metals = append(a.Metals, row)
	}
	a.MetalsTotal = money(metalsTotal, cur)

	return a
}

func hasRate(rates []zakah.ExchangeRate, currency string) bool {
	for _, r := range rates {
		if r.FromCurrency == currency {
			return true
		}
	}
	return false
}

// RenderAssets renders the Assets view to a markdown string.
func RenderAssets(a *Assets) string {
	return renderTemplate("assets", "assets.md", nil, a)
}
