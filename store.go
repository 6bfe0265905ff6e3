package zakah

import (
	"bytes"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrLastPerson rejects deleting the only remaining person.
	ErrLastPerson = errors.New("cannot delete the last person")
	// ErrUnknownPerson rejects operations referencing a person id that
	// is not in the document.
	ErrUnknownPerson = errors.New("unknown person")
)

// WriteResult reports the outcome of one durable write-back. Write
// failures do not roll back the in-memory document; they are surfaced
// here so they are at least observable.
type WriteResult struct {
	Path string
	Err  error
}

// Store is the single authority over the persisted document. It owns
// the document exclusively, applies every mutation as a pure
// (old document -> new document) transformation, eagerly recomputes
// the derived State and CalculationResult, and writes the document
// back after each mutation.
//
// A Store is not safe for concurrent use: mutations are single-file
// by design, each call resolves to exactly one state transition.
type Store struct {
	dir string // empty for an in-memory store
	doc StoredAppData

	// cache-through derived views, rebuilt after every mutation
	state State
	calc  CalculationResult

	// OnWrite, when set, receives the result of every durable
	// write-back. Failed writes are additionally logged. The session
	// continues on the in-memory document either way.
	OnWrite func(WriteResult)
}

// DefaultAppData builds the built-in starter document: one person
// named "Me" with empty holdings, USD base currency and placeholder
// metal prices.
func DefaultAppData() StoredAppData {
	personID := NewID()
	return StoredAppData{
		Version:      CurrentVersion,
		ActivePerson: personID,
		People: []Person{{
			ID:   personID,
			Name: "Me",
			Data: PersonalData{
				CurrencyHoldings: []CurrencyHolding{},
				MetalHoldings:    []MetalHolding{},
				Payments:         []Payment{},
			},
		}},
		Shared: SharedData{
			PriceSettings: PriceSettings{
				GoldPricePerGram:   decimal.NewFromInt(95),
				SilverPricePerGram: decimal.NewFromInt(1),
				BaseCurrency:       "USD",
				GoldPurityPrices:   map[string]decimal.Decimal{},
			},
			ExchangeRates: []ExchangeRate{},
		},
	}
}

// Open loads the document from dir, migrating a legacy file if that is
// all there is, and falls back to the default document when nothing
// usable is saved. The load happens before Open returns, so a mutation
// can never race against it.
func Open(dir string) (*Store, error) {
	s := &Store{dir: dir}
	doc, err := LoadAppData(dir)
	switch {
	case err == nil:
		s.doc = *doc
	case errors.Is(err, ErrNoSavedData):
		s.doc = DefaultAppData()
	default:
		return nil, err
	}
	s.refresh()
	return s, nil
}

// NewStore creates an in-memory store around an existing document.
// Mutations are applied normally but nothing is written to disk.
func NewStore(doc StoredAppData) *Store {
	s := &Store{doc: doc}
	s.refresh()
	return s
}

// Document returns the current document. Treat it as read-only: all
// writes go through the Store's operations.
func (s *Store) Document() StoredAppData { return s.doc }

// State returns the flat view of the active person merged with the
// shared settings.
func (s *Store) State() State { return s.state }

// Calculation returns the Zakah position derived from State.
func (s *Store) Calculation() CalculationResult { return s.calc }

// People returns all people in the document.
func (s *Store) People() []Person { return s.doc.People }

// ActivePerson returns the currently active person.
func (s *Store) ActivePerson() Person { return s.doc.Active() }

func (s *Store) refresh() {
	s.state = StateOf(s.doc)
	s.calc = Calculate(s.state)
}

// apply replaces the document with update(document), refreshes the
// derived views, and writes the new document back.
func (s *Store) apply(update func(StoredAppData) StoredAppData) {
	s.doc = update(s.doc)
	s.refresh()
	s.persist()
}

func (s *Store) persist() {
	if s.dir == "" {
		return
	}
	err := SaveAppData(s.dir, s.doc)
	if err != nil {
		log.Printf("warning: could not save data: %v", err)
	}
	if s.OnWrite != nil {
		s.OnWrite(WriteResult{Path: s.dir, Err: err})
	}
}

// mutateActive rewrites the active person's private data.
func (s *Store) mutateActive(update func(PersonalData) PersonalData) {
	s.apply(func(doc StoredAppData) StoredAppData {
		people := make([]Person, len(doc.People))
		copy(people, doc.People)
		i := doc.ActiveIndex()
		people[i].Data = update(people[i].Data)
		doc.People = people
		return doc
	})
}

// mutateShared rewrites the settings shared by all people.
func (s *Store) mutateShared(update func(SharedData) SharedData) {
	s.apply(func(doc StoredAppData) StoredAppData {
		doc.Shared = update(doc.Shared)
		return doc
	})
}

// Currency holdings

// AddCurrencyHolding inserts a cash balance for the active person,
// assigning it a fresh id, and returns the stored record.
func (s *Store) AddCurrencyHolding(h CurrencyHolding) CurrencyHolding {
	h.ID = NewID()
	s.mutateActive(func(d PersonalData) PersonalData {
		d.CurrencyHoldings = append(append([]CurrencyHolding{}, d.CurrencyHoldings...), h)
		return d
	})
	return h
}

// UpdateCurrencyHolding replaces the holding with the given id.
func (s *Store) UpdateCurrencyHolding(id string, h CurrencyHolding) {
	h.ID = id
	s.mutateActive(func(d PersonalData) PersonalData {
		d.CurrencyHoldings = replaceByID(d.CurrencyHoldings, id, h, func(c CurrencyHolding) string { return c.ID })
		return d
	})
}

// DeleteCurrencyHolding removes the holding with the given id.
func (s *Store) DeleteCurrencyHolding(id string) {
	s.mutateActive(func(d PersonalData) PersonalData {
		d.CurrencyHoldings = deleteByID(d.CurrencyHoldings, id, func(c CurrencyHolding) string { return c.ID })
		return d
	})
}

// Metal holdings

// AddMetalHolding inserts a metal holding for the active person,
// assigning it a fresh id, and returns the stored record.
func (s *Store) AddMetalHolding(h MetalHolding) MetalHolding {
	h.ID = NewID()
	s.mutateActive(func(d PersonalData) PersonalData {
		d.MetalHoldings = append(append([]MetalHolding{}, d.MetalHoldings...), h)
		return d
	})
	return h
}

// UpdateMetalHolding replaces the holding with the given id.
func (s *Store) UpdateMetalHolding(id string, h MetalHolding) {
	h.ID = id
	s.mutateActive(func(d PersonalData) PersonalData {
		d.MetalHoldings = replaceByID(d.MetalHoldings, id, h, func(m MetalHolding) string { return m.ID })
		return d
	})
}

// DeleteMetalHolding removes the holding with the given id.
func (s *Store) DeleteMetalHolding(id string) {
	s.mutateActive(func(d PersonalData) PersonalData {
		d.MetalHoldings = deleteByID(d.MetalHoldings, id, func(m MetalHolding) string { return m.ID })
		return d
	})
}

// Price settings

// PriceSettingsPatch is a partial update of PriceSettings: nil fields
// are left untouched.
type PriceSettingsPatch struct {
	GoldPricePerGram   *decimal.Decimal
	SilverPricePerGram *decimal.Decimal
	BaseCurrency       *string
	GoldPurityPrices   map[string]decimal.Decimal
}

// UpdatePriceSettings applies a partial update to the shared price
// settings.
func (s *Store) UpdatePriceSettings(patch PriceSettingsPatch) {
	s.mutateShared(func(sh SharedData) SharedData {
		if patch.GoldPricePerGram != nil {
			sh.PriceSettings.GoldPricePerGram = *patch.GoldPricePerGram
		}
		if patch.SilverPricePerGram != nil {
			sh.PriceSettings.SilverPricePerGram = *patch.SilverPricePerGram
		}
		if patch.BaseCurrency != nil {
			sh.PriceSettings.BaseCurrency = *patch.BaseCurrency
		}
		if patch.GoldPurityPrices != nil {
			sh.PriceSettings.GoldPurityPrices = patch.GoldPurityPrices
		}
		return sh
	})
}

// SetGoldPurityPrice sets (or, with a nil price, removes) the per-gram
// override for one specific purity.
func (s *Store) SetGoldPurityPrice(purity decimal.Decimal, price *decimal.Decimal) {
	s.mutateShared(func(sh SharedData) SharedData {
		prices := make(map[string]decimal.Decimal, len(sh.PriceSettings.GoldPurityPrices)+1)
		for k, v := range sh.PriceSettings.GoldPurityPrices {
			prices[k] = v
		}
		if price == nil {
			delete(prices, purity.String())
		} else {
			prices[purity.String()] = *price
		}
		sh.PriceSettings.GoldPurityPrices = prices
		return sh
	})
}

// Exchange rates

// AddExchangeRate inserts a rate, assigning it a fresh id, and returns
// the stored record. Uniqueness per currency is not enforced; the
// conversion uses the first match.
func (s *Store) AddExchangeRate(r ExchangeRate) ExchangeRate {
	r.ID = NewID()
	s.mutateShared(func(sh SharedData) SharedData {
		sh.ExchangeRates = append(append([]ExchangeRate{}, sh.ExchangeRates...), r)
		return sh
	})
	return r
}

// UpdateExchangeRate replaces the rate with the given id.
func (s *Store) UpdateExchangeRate(id string, r ExchangeRate) {
	r.ID = id
	s.mutateShared(func(sh SharedData) SharedData {
		sh.ExchangeRates = replaceByID(sh.ExchangeRates, id, r, func(e ExchangeRate) string { return e.ID })
		return sh
	})
}

// DeleteExchangeRate removes the rate with the given id.
func (s *Store) DeleteExchangeRate(id string) {
	s.mutateShared(func(sh SharedData) SharedData {
		sh.ExchangeRates = deleteByID(sh.ExchangeRates, id, func(e ExchangeRate) string { return e.ID })
		return sh
	})
}

// Payments

// LogPayment records a payment of `amount` in `currency` for the
// active person. The base-currency amount is converted once, with the
// rates in effect right now, and frozen: later rate changes never
// rewrite a logged payment. Payments are kept newest first.
func (s *Store) LogPayment(amount decimal.Decimal, currency, note string, paidAt time.Time, status PaymentStatus) Payment {
	p := Payment{
		ID:                    NewID(),
		AmountBaseCurrency:    ConvertToBase(amount, currency, s.state.PriceSettings.BaseCurrency, s.state.ExchangeRates),
		Currency:              currency,
		AmountDisplayCurrency: amount,
		Note:                  note,
		PaidAt:                paidAt,
		Status:                status,
	}
	s.mutateActive(func(d PersonalData) PersonalData {
		d.Payments = append([]Payment{p}, d.Payments...)
		return d
	})
	return p
}

// UpdatePayment replaces the payment with the given id as-is; the
// base-currency snapshot is whatever the caller passes, it is not
// re-converted.
func (s *Store) UpdatePayment(id string, p Payment) {
	p.ID = id
	s.mutateActive(func(d PersonalData) PersonalData {
		d.Payments = replaceByID(d.Payments, id, p, func(q Payment) string { return q.ID })
		return d
	})
}

// DeletePayment removes the payment with the given id.
func (s *Store) DeletePayment(id string) {
	s.mutateActive(func(d PersonalData) PersonalData {
		d.Payments = deleteByID(d.Payments, id, func(q Payment) string { return q.ID })
		return d
	})
}

// People

// SwitchPerson makes the person with the given id active.
func (s *Store) SwitchPerson(id string) error {
	if !s.hasPerson(id) {
		return ErrUnknownPerson
	}
	s.apply(func(doc StoredAppData) StoredAppData {
		doc.ActivePerson = id
		return doc
	})
	return nil
}

// AddPerson creates a new person with empty data, makes it active, and
// returns it.
func (s *Store) AddPerson(name string) Person {
	p := Person{
		ID:   NewID(),
		Name: name,
		Data: PersonalData{
			CurrencyHoldings: []CurrencyHolding{},
			MetalHoldings:    []MetalHolding{},
			Payments:         []Payment{},
		},
	}
	s.apply(func(doc StoredAppData) StoredAppData {
		doc.People = append(append([]Person{}, doc.People...), p)
		doc.ActivePerson = p.ID
		return doc
	})
	return p
}

// RenamePerson changes a person's display name.
func (s *Store) RenamePerson(id, name string) error {
	if !s.hasPerson(id) {
		return ErrUnknownPerson
	}
	s.apply(func(doc StoredAppData) StoredAppData {
		people := make([]Person, len(doc.People))
		copy(people, doc.People)
		for i := range people {
			if people[i].ID == id {
				people[i].Name = name
			}
		}
		doc.People = people
		return doc
	})
	return nil
}

// DeletePerson removes a person. The last remaining person cannot be
// deleted. If the active person is deleted, activation falls to the
// first remaining person.
func (s *Store) DeletePerson(id string) error {
	if !s.hasPerson(id) {
		return ErrUnknownPerson
	}
	if len(s.doc.People) <= 1 {
		return ErrLastPerson
	}
	s.apply(func(doc StoredAppData) StoredAppData {
		remaining := deleteByID(doc.People, id, func(p Person) string { return p.ID })
		doc.People = remaining
		if doc.ActivePerson == id {
			doc.ActivePerson = remaining[0].ID
		}
		return doc
	})
	return nil
}

func (s *Store) hasPerson(id string) bool {
	for _, p := range s.doc.People {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Import

// ImportAppData replaces the whole document.
func (s *Store) ImportAppData(doc StoredAppData) {
	s.apply(func(StoredAppData) StoredAppData { return doc })
}

// ImportState replaces the active person's holdings and payments plus
// the shared settings with a legacy flat state, preserving all other
// people.
func (s *Store) ImportState(state State) {
	s.apply(func(doc StoredAppData) StoredAppData {
		people := make([]Person, len(doc.People))
		copy(people, doc.People)
		i := doc.ActiveIndex()
		people[i].Data = state.PersonalData
		doc.People = people
		doc.Shared = SharedData{
			PriceSettings: state.PriceSettings,
			ExchangeRates: state.ExchangeRates,
		}
		return doc
	})
}

// ImportBackup detects the shape of raw backup JSON and applies the
// matching replacement strategy: a v2 document replaces everything, a
// legacy document replaces only the active person's data and the
// shared settings. Anything else is rejected with ErrUnknownFormat and
// no mutation occurs.
func (s *Store) ImportBackup(data []byte) error {
	switch DetectShape(data) {
	case ShapeV2:
		doc, err := DecodeAppData(bytes.NewReader(data))
		if err != nil {
			return err
		}
		s.ImportAppData(*doc)
		return nil
	case ShapeLegacy:
		state, err := DecodeState(bytes.NewReader(data))
		if err != nil {
			return err
		}
		s.ImportState(*state)
		return nil
	default:
		return ErrUnknownFormat
	}
}

// replaceByID returns a copy of records with the record whose id
// matches replaced by r. Unknown ids leave the slice unchanged.
func replaceByID[T any](records []T, id string, r T, idOf func(T) string) []T {
	out := make([]T, len(records))
	copy(out, records)
	for i := range out {
		if idOf(out[i]) == id {
			out[i] = r
		}
	}
	return out
}

// deleteByID returns a copy of records without the record whose id
// matches.
func deleteByID[T any](records []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if idOf(rec) != id {
			out = append(out, rec)
		}
	}
	return out
}
