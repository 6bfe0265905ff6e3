package renderer

import (
	"github.com/marwank/zakah"
	"github.com/shopspring/decimal"
)

// Summary is the pre-formatted view of a calculation result.
type Summary struct {
	PersonName   string
	BaseCurrency string

	TotalWealth string
	NisabValue  string
	AboveNisab  bool

	ZakahDue  string
	TotalPaid string
	Remaining string

	CurrenciesTotal string
	GoldTotal       string
	SilverTotal     string

	// PureGoldGrams is the 24k-equivalent weight of all gold holdings,
	// empty when no gold is held.
	PureGoldGrams string
}

// BuildSummary formats a calculation result for rendering.
func BuildSummary(personName string, state zakah.State, res zakah.CalculationResult) *Summary {
	cur := state.PriceSettings.BaseCurrency

	var pureGold decimal.Decimal
	hasGold := false
	for _, h := range state.MetalHoldings {
		if h.Type == zakah.Gold {
			hasGold = true
			pureGold = pureGold.Add(h.Equivalent24kWeight())
		}
	}

	s := &Summary{
		PersonName:      personName,
		BaseCurrency:    cur,
		TotalWealth:     money(res.TotalWealthBaseCurrency, cur),
		NisabValue:      money(res.NisabValueBaseCurrency, cur),
		AboveNisab:      res.IsAboveNisab,
		ZakahDue:        money(res.ZakahDueBaseCurrency, cur),
		TotalPaid:       money(res.TotalPaidBaseCurrency, cur),
		Remaining:       money(res.RemainingBaseCurrency, cur),
		CurrenciesTotal: money(res.Breakdown.CurrenciesTotal, cur),
		GoldTotal:       money(res.Breakdown.GoldTotal, cur),
		SilverTotal:     money(res.Breakdown.SilverTotal, cur),
	}
	if hasGold {
		s.PureGoldGrams = FormatWeight(pureGold)
	}
	return s
}

// RenderSummary renders the Summary view to a markdown string.
func RenderSummary(s *Summary) string {
	partials := map[string]string{
		"summary_breakdown": "summary_breakdown.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}
