package zakah

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
)

// d is a helper for tests to build a decimal from a literal.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// gold is a helper to build a gold holding from consts.
func gold(weight, purity string, unit PurityUnit) MetalHolding {
	return MetalHolding{ID: NewID(), Label: "gold", Type: Gold, WeightGrams: d(weight), Purity: d(purity), PurityUnit: unit}
}

// silver is a helper to build a silver holding from consts.
func silver(weight, purity string, unit PurityUnit) MetalHolding {
	return MetalHolding{ID: NewID(), Label: "silver", Type: Silver, WeightGrams: d(weight), Purity: d(purity), PurityUnit: unit}
}

// marshalDoc encodes a document the way the store persists it.
func marshalDoc(t *testing.T, doc StoredAppData) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeAppData(&buf, doc); err != nil {
		t.Fatalf("could not encode document: %v", err)
	}
	return buf.Bytes()
}

// equalDecimal fails the test when got and want differ in value.
func equalDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
