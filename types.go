package zakah

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyHolding is a named cash balance in one currency, owned by a
// single person. The amount is free to be negative (a debt entered as
// a holding), the engine does not enforce a sign.
type CurrencyHolding struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// MetalHolding is a gold or silver holding, weighed in grams. Purity
// is interpreted through PurityUnit: karats out of 24 for gold, or a
// percentage for either metal.
type MetalHolding struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Type        MetalType       `json:"type"`
	WeightGrams decimal.Decimal `json:"weightGrams"`
	Purity      decimal.Decimal `json:"purity"`
	PurityUnit  PurityUnit      `json:"purityUnit"`
}

// PriceSettings holds the per-gram metal prices and the base currency.
// They are shared by all people in the store.
//
// GoldPurityPrices optionally overrides the price derived from the 24k
// base price for a specific purity; the key is the purity value as a
// string (e.g. "21"). Absence of a key means "derive from the base
// price".
type PriceSettings struct {
	GoldPricePerGram   decimal.Decimal            `json:"goldPricePerGram"`
	SilverPricePerGram decimal.Decimal            `json:"silverPricePerGram"`
	BaseCurrency       string                     `json:"baseCurrency"`
	GoldPurityPrices   map[string]decimal.Decimal `json:"goldPurityPrices"`
}

// GoldPurityPrice returns the per-gram price override for the given
// purity, if one is configured.
func (s PriceSettings) GoldPurityPrice(purity decimal.Decimal) (decimal.Decimal, bool) {
	p, ok := s.GoldPurityPrices[purity.String()]
	return p, ok
}

// ExchangeRate states that 1 unit of FromCurrency was worth Rate units
// of the base currency when the rate was entered. No rate exists for
// the base currency itself, it converts as identity.
type ExchangeRate struct {
	ID           string          `json:"id"`
	FromCurrency string          `json:"fromCurrency"`
	Rate         decimal.Decimal `json:"rate"`
}

// PaymentStatus is the optional lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Payment is a logged Zakah payment.
//
// AmountBaseCurrency is computed once, when the payment is logged,
// using the exchange rate in effect at that moment. It is a deliberate
// snapshot and is never recomputed when rates change.
type Payment struct {
	ID                    string          `json:"id"`
	AmountBaseCurrency    decimal.Decimal `json:"amountBaseCurrency"`
	Currency              string          `json:"currency"`
	AmountDisplayCurrency decimal.Decimal `json:"amountDisplayCurrency"`
	Note                  string          `json:"note"`
	PaidAt                time.Time       `json:"paidAt"`
	Status                PaymentStatus   `json:"status,omitempty"`
}

// PersonalData is the private portfolio of one person.
type PersonalData struct {
	CurrencyHoldings []CurrencyHolding `json:"currencyHoldings"`
	MetalHoldings    []MetalHolding    `json:"metalHoldings"`
	Payments         []Payment         `json:"payments"`
}

// Person owns a private PersonalData; prices and exchange rates are
// shared across all people.
type Person struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Data PersonalData `json:"data"`
}

// SharedData is the part of the document common to all people.
type SharedData struct {
	PriceSettings PriceSettings  `json:"priceSettings"`
	ExchangeRates []ExchangeRate `json:"exchangeRates"`
}

// CurrentVersion is the schema version of StoredAppData.
const CurrentVersion = 2

// StoredAppData is the persisted document. Invariants: ActivePerson
// always references an existing person, and People is never empty.
type StoredAppData struct {
	Version      int        `json:"version"`
	ActivePerson string     `json:"activePerson"`
	People       []Person   `json:"people"`
	Shared       SharedData `json:"shared"`
}

// ActiveIndex returns the index of the active person, falling back to
// the first person if the reference is dangling.
func (d StoredAppData) ActiveIndex() int {
	for i, p := range d.People {
		if p.ID == d.ActivePerson {
			return i
		}
	}
	return 0
}

// Active returns the active person.
func (d StoredAppData) Active() Person { return d.People[d.ActiveIndex()] }

// State is the flat, derived view the calculator consumes: the active
// person's data merged with the shared settings. It is also the legacy
// (v1) persisted shape, which is why it marshals to the flat form.
type State struct {
	PersonalData
	PriceSettings PriceSettings  `json:"priceSettings"`
	ExchangeRates []ExchangeRate `json:"exchangeRates"`
}

// MarshalJSON flattens the embedded PersonalData so that the output
// matches the legacy document shape exactly.
func (s State) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(s.PersonalData)
	w.Append("priceSettings", s.PriceSettings)
	w.Append("exchangeRates", s.ExchangeRates)
	return w.MarshalJSON()
}

// StateOf derives the flat State for the document's active person.
func StateOf(d StoredAppData) State {
	return State{
		PersonalData:  d.Active().Data,
		PriceSettings: d.Shared.PriceSettings,
		ExchangeRates: d.Shared.ExchangeRates,
	}
}

// Breakdown splits total wealth by asset class, all in base currency.
type Breakdown struct {
	CurrenciesTotal decimal.Decimal `json:"currenciesTotal"`
	GoldTotal       decimal.Decimal `json:"goldTotal"`
	SilverTotal     decimal.Decimal `json:"silverTotal"`
}

// CalculationResult is the pure output of Calculate. It is recomputed
// from State after every mutation and never stored.
type CalculationResult struct {
	TotalWealthBaseCurrency decimal.Decimal `json:"totalWealthBaseCurrency"`
	NisabValueBaseCurrency  decimal.Decimal `json:"nisabValueBaseCurrency"`
	IsAboveNisab            bool            `json:"isAboveNisab"`
	ZakahDueBaseCurrency    decimal.Decimal `json:"zakahDueBaseCurrency"`
	TotalPaidBaseCurrency   decimal.Decimal `json:"totalPaidBaseCurrency"`
	RemainingBaseCurrency   decimal.Decimal `json:"remainingBaseCurrency"`
	Breakdown               Breakdown       `json:"breakdown"`
}
