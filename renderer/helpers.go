package renderer

import (
	"time"

	"github.com/marwank/zakah"
	"github.com/shopspring/decimal"
)

// FormatWeight renders a gram weight, e.g. "43.75g".
func FormatWeight(grams decimal.Decimal) string {
	return grams.StringFixed(2) + "g"
}

// FormatPurity renders a purity in its unit, e.g. "21k" or "92.5%".
func FormatPurity(purity decimal.Decimal, unit zakah.PurityUnit) string {
	if unit == zakah.Karats {
		return purity.String() + "k"
	}
	return purity.String() + "%"
}

// FormatDate renders a payment timestamp as a short date, e.g.
// "Mar 1, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// money is a shorthand for base-currency figures in the views.
func money(amount decimal.Decimal, currency string) string {
	return zakah.FormatMoney(amount, currency)
}
