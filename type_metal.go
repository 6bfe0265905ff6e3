package zakah

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MetalType identifies the metal of a holding.
type MetalType string

const (
	Gold   MetalType = "gold"
	Silver MetalType = "silver"
)

// ParseMetalType parses a string into a MetalType.
func ParseMetalType(s string) (MetalType, error) {
	switch MetalType(s) {
	case Gold, Silver:
		return MetalType(s), nil
	default:
		return "", fmt.Errorf("unknown metal type: %q", s)
	}
}

// PurityUnit defines how a holding's purity number is to be read.
type PurityUnit string

const (
	Karats     PurityUnit = "karats"     // purity out of 24
	Percentage PurityUnit = "percentage" // purity out of 100
)

// ParsePurityUnit parses a string into a PurityUnit.
func ParsePurityUnit(s string) (PurityUnit, error) {
	switch PurityUnit(s) {
	case Karats, Percentage:
		return PurityUnit(s), nil
	default:
		return "", fmt.Errorf("unknown purity unit: %q", s)
	}
}

var (
	karatScale   = decimal.NewFromInt(24)
	percentScale = decimal.NewFromInt(100)
)

// PurityFraction returns the proportion of pure metal in the holding:
// karats/24 in karat mode, percent/100 otherwise.
func (h MetalHolding) PurityFraction() decimal.Decimal {
	if h.PurityUnit == Karats {
		return h.Purity.Div(karatScale)
	}
	return h.Purity.Div(percentScale)
}

// Equivalent24kWeight is the holding's weight rescaled by its purity
// fraction, i.e. the weight of pure metal it contains. Used for
// weight-based reporting independent of prices.
func (h MetalHolding) Equivalent24kWeight() decimal.Decimal {
	return h.WeightGrams.Mul(h.PurityFraction())
}
