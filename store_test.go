package zakah

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// openTestStore opens a Store on a fresh temp dir.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return s
}

func TestOpen_FallsBackToDefault(t *testing.T) {
	s := openTestStore(t)

	if len(s.People()) != 1 {
		t.Fatalf("default store has %d people, want 1", len(s.People()))
	}
	if s.ActivePerson().Name != "Me" {
		t.Errorf("default person named %q, want \"Me\"", s.ActivePerson().Name)
	}
	if got := s.State().PriceSettings.BaseCurrency; got != "USD" {
		t.Errorf("default base currency %q, want USD", got)
	}
}

func TestStore_CurrencyHoldingLifecycle(t *testing.T) {
	s := openTestStore(t)

	h := s.AddCurrencyHolding(CurrencyHolding{Label: "savings", Currency: "USD", Amount: d("20000")})
	if h.ID == "" {
		t.Fatal("AddCurrencyHolding did not assign an id")
	}
	equalDecimal(t, "wealth after add", s.Calculation().TotalWealthBaseCurrency, d("20000"))

	s.UpdateCurrencyHolding(h.ID, CurrencyHolding{Label: "savings", Currency: "USD", Amount: d("5000")})
	equalDecimal(t, "wealth after update", s.Calculation().TotalWealthBaseCurrency, d("5000"))
	if got := s.State().CurrencyHoldings[0].ID; got != h.ID {
		t.Errorf("update changed the id: %q -> %q", h.ID, got)
	}

	s.DeleteCurrencyHolding(h.ID)
	if len(s.State().CurrencyHoldings) != 0 {
		t.Error("holding not deleted")
	}
	equalDecimal(t, "wealth after delete", s.Calculation().TotalWealthBaseCurrency, d("0"))
}

func TestStore_MetalHoldingLifecycle(t *testing.T) {
	s := openTestStore(t)
	s.UpdatePriceSettings(PriceSettingsPatch{GoldPricePerGram: ptr(d("100"))})

	h := s.AddMetalHolding(MetalHolding{Label: "ring", Type: Gold, WeightGrams: d("50"), Purity: d("21"), PurityUnit: Karats})
	equalDecimal(t, "gold total", s.Calculation().Breakdown.GoldTotal, d("4375"))

	s.UpdateMetalHolding(h.ID, MetalHolding{Label: "ring", Type: Gold, WeightGrams: d("10"), Purity: d("18"), PurityUnit: Karats})
	equalDecimal(t, "gold total after update", s.Calculation().Breakdown.GoldTotal, d("750"))

	s.DeleteMetalHolding(h.ID)
	if len(s.State().MetalHoldings) != 0 {
		t.Error("holding not deleted")
	}
}

func TestStore_PriceSettingsPartialUpdate(t *testing.T) {
	s := openTestStore(t)

	s.UpdatePriceSettings(PriceSettingsPatch{GoldPricePerGram: ptr(d("120"))})
	got := s.State().PriceSettings
	equalDecimal(t, "gold price", got.GoldPricePerGram, d("120"))
	// untouched fields keep their values
	equalDecimal(t, "silver price", got.SilverPricePerGram, d("1"))
	if got.BaseCurrency != "USD" {
		t.Errorf("base currency %q, want USD", got.BaseCurrency)
	}

	s.SetGoldPurityPrice(d("21"), ptr(d("95")))
	price, ok := s.State().PriceSettings.GoldPurityPrice(d("21"))
	if !ok {
		t.Fatal("purity price not set")
	}
	equalDecimal(t, "purity price", price, d("95"))

	s.SetGoldPurityPrice(d("21"), nil)
	if _, ok := s.State().PriceSettings.GoldPurityPrice(d("21")); ok {
		t.Error("purity price not removed")
	}
}

func TestStore_PaymentSnapshotIsFrozen(t *testing.T) {
	s := openTestStore(t)
	s.AddExchangeRate(ExchangeRate{FromCurrency: "EUR", Rate: d("1.1")})

	p := s.LogPayment(d("100"), "EUR", "first installment", time.Now(), PaymentCompleted)
	equalDecimal(t, "snapshot", p.AmountBaseCurrency, d("110"))

	// A later rate change must not rewrite the logged payment.
	rateID := s.State().ExchangeRates[0].ID
	s.UpdateExchangeRate(rateID, ExchangeRate{FromCurrency: "EUR", Rate: d("2")})
	equalDecimal(t, "total paid", s.Calculation().TotalPaidBaseCurrency, d("110"))
}

func TestStore_PaymentsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	first := s.LogPayment(d("10"), "USD", "", time.Now(), "")
	second := s.LogPayment(d("20"), "USD", "", time.Now(), "")

	payments := s.State().Payments
	if len(payments) != 2 {
		t.Fatalf("got %d payments, want 2", len(payments))
	}
	if payments[0].ID != second.ID || payments[1].ID != first.ID {
		t.Error("payments are not newest first")
	}
}

func TestStore_PersonLifecycle(t *testing.T) {
	s := openTestStore(t)
	me := s.ActivePerson()

	spouse := s.AddPerson("Spouse")
	if s.ActivePerson().ID != spouse.ID {
		t.Error("AddPerson must switch activation to the new person")
	}

	// Holdings are private to each person.
	s.AddCurrencyHolding(CurrencyHolding{Label: "cash", Currency: "USD", Amount: d("100")})
	if err := s.SwitchPerson(me.ID); err != nil {
		t.Fatalf("SwitchPerson() failed: %v", err)
	}
	if len(s.State().CurrencyHoldings) != 0 {
		t.Error("holdings leaked across people")
	}

	if err := s.RenamePerson(spouse.ID, "Partner"); err != nil {
		t.Fatalf("RenamePerson() failed: %v", err)
	}
	for _, p := range s.People() {
		if p.ID == spouse.ID && p.Name != "Partner" {
			t.Errorf("rename not applied: %q", p.Name)
		}
	}

	if err := s.SwitchPerson("nope"); !errors.Is(err, ErrUnknownPerson) {
		t.Errorf("SwitchPerson(unknown) = %v, want ErrUnknownPerson", err)
	}
}

func TestStore_DeletePersonInvariants(t *testing.T) {
	s := openTestStore(t)
	me := s.ActivePerson()

	// The last person can never be deleted.
	if err := s.DeletePerson(me.ID); !errors.Is(err, ErrLastPerson) {
		t.Fatalf("DeletePerson(last) = %v, want ErrLastPerson", err)
	}

	spouse := s.AddPerson("Spouse") // also becomes active

	// Deleting the active person reassigns activation to a remaining one.
	if err := s.DeletePerson(spouse.ID); err != nil {
		t.Fatalf("DeletePerson() failed: %v", err)
	}
	if len(s.People()) != 1 {
		t.Fatalf("got %d people, want 1", len(s.People()))
	}
	if s.Document().ActivePerson != me.ID {
		t.Errorf("activePerson = %q, want %q", s.Document().ActivePerson, me.ID)
	}

	if err := s.DeletePerson("nope"); !errors.Is(err, ErrUnknownPerson) {
		t.Errorf("DeletePerson(unknown) = %v, want ErrUnknownPerson", err)
	}
}

func TestStore_MutationsPersist(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	s.AddCurrencyHolding(CurrencyHolding{Label: "cash", Currency: "USD", Amount: d("42")})

	// A second store sees the mutation: every mutation writes back.
	reopened, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(reopened.State().CurrencyHoldings) != 1 {
		t.Fatal("mutation was not persisted")
	}
	equalDecimal(t, "amount", reopened.State().CurrencyHoldings[0].Amount, d("42"))
}

func TestStore_WriteFailureIsSwallowedButObservable(t *testing.T) {
	// Point the store's data dir at a regular file: MkdirAll will fail.
	parent := t.TempDir()
	blocked := filepath.Join(parent, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(filepath.Join(blocked, "data"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	var results []WriteResult
	s.OnWrite = func(r WriteResult) { results = append(results, r) }

	s.AddCurrencyHolding(CurrencyHolding{Label: "cash", Currency: "USD", Amount: d("42")})

	// The in-memory document keeps the mutation.
	if len(s.State().CurrencyHoldings) != 1 {
		t.Error("mutation rolled back on write failure")
	}
	// The failure is delivered to the hook.
	if len(results) != 1 || results[0].Err == nil {
		t.Errorf("OnWrite results = %+v, want one failed write", results)
	}
}

func TestStore_ImportBackup(t *testing.T) {
	t.Run("legacy replaces active person and shared only", func(t *testing.T) {
		s := openTestStore(t)
		other := s.AddPerson("Other")
		s.AddCurrencyHolding(CurrencyHolding{Label: "keep", Currency: "USD", Amount: d("1")})
		if err := s.SwitchPerson(s.People()[0].ID); err != nil {
			t.Fatal(err)
		}

		if err := s.ImportBackup([]byte(legacyDoc)); err != nil {
			t.Fatalf("ImportBackup(legacy) failed: %v", err)
		}

		// Active person got the imported holdings.
		if len(s.State().CurrencyHoldings) != 1 || s.State().CurrencyHoldings[0].Label != "savings" {
			t.Errorf("active person data not replaced: %+v", s.State().CurrencyHoldings)
		}
		// Shared settings were replaced.
		equalDecimal(t, "gold price", s.State().PriceSettings.GoldPricePerGram, d("100"))
		// The other person is preserved.
		if err := s.SwitchPerson(other.ID); err != nil {
			t.Fatal(err)
		}
		if len(s.State().CurrencyHoldings) != 1 || s.State().CurrencyHoldings[0].Label != "keep" {
			t.Errorf("other person's data was clobbered: %+v", s.State().CurrencyHoldings)
		}
	})

	t.Run("v2 replaces wholesale", func(t *testing.T) {
		s := openTestStore(t)
		s.AddPerson("Doomed")

		replacement := DefaultAppData()
		replacement.People[0].Name = "Imported"
		data := marshalDoc(t, replacement)

		if err := s.ImportBackup(data); err != nil {
			t.Fatalf("ImportBackup(v2) failed: %v", err)
		}
		if len(s.People()) != 1 || s.People()[0].Name != "Imported" {
			t.Errorf("document not replaced wholesale: %+v", s.People())
		}
	})

	t.Run("unknown shape is rejected without mutation", func(t *testing.T) {
		s := openTestStore(t)
		before := len(s.People())

		err := s.ImportBackup([]byte(`{"hello": "world"}`))
		if !errors.Is(err, ErrUnknownFormat) {
			t.Fatalf("ImportBackup(garbage) = %v, want ErrUnknownFormat", err)
		}
		if len(s.People()) != before {
			t.Error("rejected import still mutated the store")
		}
	})
}

func ptr[T any](v T) *T { return &v }
