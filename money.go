package zakah

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with its currency's conventional
// symbol, separators and fraction digits. Unknown currency codes fall
// back to "CODE 123.45".
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		return fmt.Sprintf("%s %s", currencyCode, amount.StringFixed(2))
	}
	shifted := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(shifted.IntPart())
}
