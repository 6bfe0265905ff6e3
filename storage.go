package zakah

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Durable storage is a single JSON document in a data directory. The
// two schema versions live in distinct files, mirroring the distinct
// storage keys of earlier releases.
const (
	v2Filename     = "zakah_calculator_v2.json"
	legacyFilename = "zakah_calculator_v1.json"
)

// ErrNoSavedData reports that the data directory holds no usable
// document in either format. It is the only error LoadAppData
// returns: unreadable or corrupt files degrade to it so that callers
// always have the option of starting from the default document.
var ErrNoSavedData = errors.New("no saved data")

// LoadAppData loads the document from dir, preferring the current v2
// file and falling back to migrating a legacy v1 file.
//
// Migration is one-way and automatic: the legacy content is wrapped
// into a single synthesized person, the migrated document is durably
// written, and only then is the legacy file deleted. The
// write-then-delete ordering means a crash mid-migration loses
// nothing, at worst the migration runs again.
func LoadAppData(dir string) (*StoredAppData, error) {
	if data, err := os.ReadFile(filepath.Join(dir, v2Filename)); err == nil {
		doc, err := DecodeAppData(bytes.NewReader(data))
		if err == nil {
			return doc, nil
		}
		log.Printf("warning: ignoring unreadable %s: %v", v2Filename, err)
	}

	legacyPath := filepath.Join(dir, legacyFilename)
	if data, err := os.ReadFile(legacyPath); err == nil {
		state, err := DecodeState(bytes.NewReader(data))
		if err != nil {
			log.Printf("warning: ignoring unreadable %s: %v", legacyFilename, err)
			return nil, ErrNoSavedData
		}
		doc := MigrateState(*state)
		if err := SaveAppData(dir, *doc); err != nil {
			// Keep the legacy file; migration will be retried next load.
			log.Printf("warning: could not persist migrated document: %v", err)
			return doc, nil
		}
		if err := os.Remove(legacyPath); err != nil {
			log.Printf("warning: could not remove legacy file: %v", err)
		}
		return doc, nil
	}

	return nil, ErrNoSavedData
}

// MigrateState wraps a legacy flat state into the current multi-person
// document: one synthesized person named "Me" with a fresh id, holding
// the legacy holdings and payments, with prices and rates moved into
// the shared section.
func MigrateState(state State) *StoredAppData {
	personID := NewID()
	return &StoredAppData{
		Version:      CurrentVersion,
		ActivePerson: personID,
		People: []Person{{
			ID:   personID,
			Name: "Me",
			Data: state.PersonalData,
		}},
		Shared: SharedData{
			PriceSettings: state.PriceSettings,
			ExchangeRates: state.ExchangeRates,
		},
	}
}

// SaveAppData atomically writes the whole document to dir: the
// document is encoded into a temporary file in the same directory and
// renamed over the destination, so readers never observe a partial
// write.
func SaveAppData(dir string, doc StoredAppData) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create data directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, v2Filename+".tmp-")
	if err != nil {
		return fmt.Errorf("could not create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if err := EncodeAppData(tmp, doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not encode document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not close temporary file: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, v2Filename)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not replace document: %w", err)
	}
	return nil
}
