package zakah

import "github.com/shopspring/decimal"

// Nisab is the value of 85 grams of 24-karat gold, priced at the 24k
// base rate. Zakah is 2.5% of total wealth once wealth reaches Nisab.
var (
	NisabGoldGrams = decimal.NewFromInt(85)
	ZakahRate      = decimal.RequireFromString("0.025")
)

// ConvertToBase converts an amount in `currency` into the base
// currency using the user-maintained rate table.
//
// Same-currency amounts convert as identity without a lookup. An
// amount in a currency with no rate contributes zero: a silent
// fallback chosen so one unconvertible holding can never poison an
// aggregate with a NaN-like failure. If several rates exist for the
// same currency the first one wins.
func ConvertToBase(amount decimal.Decimal, currency, baseCurrency string, rates []ExchangeRate) decimal.Decimal {
	if currency == baseCurrency {
		return amount
	}
	for _, r := range rates {
		if r.FromCurrency == currency {
			return amount.Mul(r.Rate)
		}
	}
	return decimal.Zero
}

// GoldValue prices a gold holding in base currency.
//
// When a custom per-gram price is supplied (looked up by the caller
// from PriceSettings.GoldPurityPrices) the value is weight*custom:
// purity is not reapplied, a custom price is already the price of one
// gram at that specific purity. Otherwise the 24k base price is scaled
// by the holding's purity fraction.
func GoldValue(h MetalHolding, goldPricePerGram decimal.Decimal, customPrice *decimal.Decimal) decimal.Decimal {
	if customPrice != nil {
		return h.WeightGrams.Mul(*customPrice)
	}
	return h.WeightGrams.Mul(h.PurityFraction()).Mul(goldPricePerGram)
}

// SilverValue prices a silver holding in base currency. Silver purity
// is always read as a percentage, whatever the holding's PurityUnit
// says: silver holdings are conventionally percentage-pure (e.g.
// sterling 92.5), there is no karat market for silver.
func SilverValue(h MetalHolding, silverPricePerGram decimal.Decimal) decimal.Decimal {
	return h.WeightGrams.Mul(h.Purity.Div(percentScale)).Mul(silverPricePerGram)
}

// Calculate derives the full Zakah position from a flat State. It is
// pure and total: it never fails, and an empty portfolio yields a
// fully-populated zero result below Nisab.
func Calculate(s State) CalculationResult {
	settings := s.PriceSettings

	var currenciesTotal decimal.Decimal
	for _, h := range s.CurrencyHoldings {
		currenciesTotal = currenciesTotal.Add(ConvertToBase(h.Amount, h.Currency, settings.BaseCurrency, s.ExchangeRates))
	}

	var goldTotal, silverTotal decimal.Decimal
	for _, h := range s.MetalHoldings {
		switch h.Type {
		case Gold:
			var custom *decimal.Decimal
			if p, ok := settings.GoldPurityPrice(h.Purity); ok {
				custom = &p
			}
			goldTotal = goldTotal.Add(GoldValue(h, settings.GoldPricePerGram, custom))
		case Silver:
			silverTotal = silverTotal.Add(SilverValue(h, settings.SilverPricePerGram))
		}
	}

	totalWealth := currenciesTotal.Add(goldTotal).Add(silverTotal)

	// Nisab is always priced at the 24k base rate, per-purity overrides
	// do not apply to the threshold.
	nisab := NisabGoldGrams.Mul(settings.GoldPricePerGram)

	// The boundary is inclusive: wealth exactly at Nisab is liable.
	aboveNisab := totalWealth.GreaterThanOrEqual(nisab)

	var due decimal.Decimal
	if aboveNisab {
		due = totalWealth.Mul(ZakahRate)
	}

	var paid decimal.Decimal
	for _, p := range s.Payments {
		paid = paid.Add(p.AmountBaseCurrency)
	}

	// Floored at zero: over-payment is neither reported negative nor
	// carried forward.
	remaining := due.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return CalculationResult{
		TotalWealthBaseCurrency: totalWealth,
		NisabValueBaseCurrency:  nisab,
		IsAboveNisab:            aboveNisab,
		ZakahDueBaseCurrency:    due,
		TotalPaidBaseCurrency:   paid,
		RemainingBaseCurrency:   remaining,
		Breakdown: Breakdown{
			CurrenciesTotal: currenciesTotal,
			GoldTotal:       goldTotal,
			SilverTotal:     silverTotal,
		},
	}
}
