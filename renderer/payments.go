package renderer

import "github.com/marwank/zakah"

// PaymentRow is one logged payment.
type PaymentRow struct {
	ID        string
	Date      string
	Amount    string // in the payment's display currency
	BaseValue string // the frozen base-currency snapshot
	Note      string
	Status    string
}

// Payments is the pre-formatted view of a person's payment log.
type Payments struct {
	PersonName   string
	BaseCurrency string
	Rows         []PaymentRow
	Total        string
}

// BuildPayments formats the payment log for rendering.
func BuildPayments(personName string, state zakah.State, res zakah.CalculationResult) *Payments {
	cur := state.PriceSettings.BaseCurrency
	v := &Payments{
		PersonName:   personName,
		BaseCurrency: cur,
		Total:        money(res.TotalPaidBaseCurrency, cur),
	}
	for _, p := range state.Payments {
		v.Rows = append(v.Rows, PaymentRow{
			ID:        p.ID,
			Date:      FormatDate(p.PaidAt),
			Amount:    money(p.AmountDisplayCurrency, p.Currency),
			BaseValue: money(p.AmountBaseCurrency, cur),
			Note:      p.Note,
			Status:    string(p.Status),
		})
	}
	return v
}

// RenderPayments renders the Payments view to a markdown string.
func RenderPayments(p *Payments) string {
	return renderTemplate("payments", "payments.md", nil, p)
}
