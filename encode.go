package zakah

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrUnknownFormat is returned when a document matches neither the
// current nor the legacy shape.
var ErrUnknownFormat = errors.New("unrecognized document format")

// Shape discriminates the two persisted document schemas.
type Shape int

const (
	// ShapeUnknown is anything that is neither v2 nor legacy.
	ShapeUnknown Shape = iota
	// ShapeLegacy is the v1 single-person flat document, recognizable
	// by structure only: it carries no version field.
	ShapeLegacy
	// ShapeV2 is the current multi-person document, carrying an
	// explicit `version: 2` discriminator.
	ShapeV2
)

func (s Shape) String() string {
	switch s {
	case ShapeLegacy:
		return "legacy"
	case ShapeV2:
		return "v2"
	default:
		return "unknown"
	}
}

// DetectShape classifies raw JSON into one of the two document shapes.
//
// The explicit version discriminator is checked first; the structural
// legacy check only runs when the discriminator is absent, so a future
// v3 document can never be mistaken for a v1 one.
func DetectShape(data []byte) Shape {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ShapeUnknown
	}

	if version, ok := fields["version"]; ok {
		if string(bytes.TrimSpace(version)) != "2" {
			return ShapeUnknown
		}
		if isJSONArray(fields["people"]) && isJSONString(fields["activePerson"]) {
			return ShapeV2
		}
		return ShapeUnknown
	}

	if isJSONArray(fields["currencyHoldings"]) &&
		isJSONArray(fields["metalHoldings"]) &&
		isJSONArray(fields["payments"]) &&
		isJSONObject(fields["priceSettings"]) {
		return ShapeLegacy
	}
	return ShapeUnknown
}

func isJSONArray(raw json.RawMessage) bool  { return firstByte(raw) == '[' }
func isJSONObject(raw json.RawMessage) bool { return firstByte(raw) == '{' }
func isJSONString(raw json.RawMessage) bool { return firstByte(raw) == '"' }

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// DecodeAppData decodes a v2 document from r.
func DecodeAppData(r io.Reader) (*StoredAppData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read document: %w", err)
	}
	if DetectShape(data) != ShapeV2 {
		return nil, ErrUnknownFormat
	}
	var doc StoredAppData
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse document: %w", err)
	}
	if len(doc.People) == 0 {
		return nil, fmt.Errorf("%w: no people in document", ErrUnknownFormat)
	}
	return &doc, nil
}

// DecodeState decodes a legacy flat document from r.
func DecodeState(r io.Reader) (*State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read document: %w", err)
	}
	if DetectShape(data) != ShapeLegacy {
		return nil, ErrUnknownFormat
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("could not parse legacy document: %w", err)
	}
	return &state, nil
}

// EncodeAppData writes the document to w, pretty-printed. The same
// encoding is used for durable storage and for backups, so a stored
// file is always directly importable.
func EncodeAppData(w io.Writer, doc StoredAppData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// EncodeState writes the flat legacy shape to w, pretty-printed.
func EncodeState(w io.Writer, state State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
