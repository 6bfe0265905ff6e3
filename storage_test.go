package zakah

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeLegacyFile seeds dir with a v1 document.
func writeLegacyFile(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, legacyFilename), []byte(legacyDoc), 0o644); err != nil {
		t.Fatalf("could not seed legacy file: %v", err)
	}
}

func TestLoadAppData_EmptyDir(t *testing.T) {
	_, err := LoadAppData(t.TempDir())
	if !errors.Is(err, ErrNoSavedData) {
		t.Fatalf("LoadAppData() = %v, want ErrNoSavedData", err)
	}
}

func TestLoadAppData_CorruptFilesDegradeToNoSavedData(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, v2Filename), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadAppData(dir)
	if !errors.Is(err, ErrNoSavedData) {
		t.Fatalf("LoadAppData() = %v, want ErrNoSavedData", err)
	}
}

func TestLoadAppData_PrefersV2OverLegacy(t *testing.T) {
	dir := t.TempDir()
	writeLegacyFile(t, dir)

	doc := DefaultAppData()
	doc.People[0].Name = "Current"
	if err := SaveAppData(dir, doc); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadAppData(dir)
	if err != nil {
		t.Fatalf("LoadAppData() failed: %v", err)
	}
	if loaded.People[0].Name != "Current" {
		t.Errorf("loaded person %q, want the v2 document", loaded.People[0].Name)
	}
	// The legacy file is untouched when a v2 document exists.
	if _, err := os.Stat(filepath.Join(dir, legacyFilename)); err != nil {
		t.Errorf("legacy file should still exist: %v", err)
	}
}

func TestLoadAppData_MigratesLegacy(t *testing.T) {
	dir := t.TempDir()
	writeLegacyFile(t, dir)

	doc, err := LoadAppData(dir)
	if err != nil {
		t.Fatalf("LoadAppData() failed: %v", err)
	}

	if len(doc.People) != 1 {
		t.Fatalf("migrated document has %d people, want 1", len(doc.People))
	}
	person := doc.People[0]
	if person.Name != "Me" {
		t.Errorf("synthesized person named %q, want \"Me\"", person.Name)
	}
	if doc.ActivePerson != person.ID {
		t.Errorf("activePerson = %q, want %q", doc.ActivePerson, person.ID)
	}
	if len(person.Data.CurrencyHoldings) != 1 || len(person.Data.Payments) != 1 {
		t.Errorf("legacy holdings were not carried over: %+v", person.Data)
	}
	equalDecimal(t, "shared gold price", doc.Shared.PriceSettings.GoldPricePerGram, d("100"))

	// Write-then-delete: the migrated v2 file exists, the legacy one is gone.
	if _, err := os.Stat(filepath.Join(dir, v2Filename)); err != nil {
		t.Errorf("migrated v2 file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, legacyFilename)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("legacy file should be deleted after migration, stat: %v", err)
	}
}

func TestLoadAppData_MigrationIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeLegacyFile(t, dir)

	first, err := LoadAppData(dir)
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	// Second load finds the migrated v2 document; nothing changes.
	second, err := LoadAppData(dir)
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if second.ActivePerson != first.ActivePerson {
		t.Errorf("activePerson changed across loads: %q then %q", first.ActivePerson, second.ActivePerson)
	}
	if len(second.People) != len(first.People) {
		t.Errorf("people changed across loads: %d then %d", len(first.People), len(second.People))
	}
}

func TestSaveAppData_Atomic(t *testing.T) {
	dir := t.TempDir()
	doc := DefaultAppData()
	if err := SaveAppData(dir, doc); err != nil {
		t.Fatalf("SaveAppData() failed: %v", err)
	}

	// No stray temporary files are left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}

	loaded, err := LoadAppData(dir)
	if err != nil {
		t.Fatalf("LoadAppData() after save failed: %v", err)
	}
	if loaded.ActivePerson != doc.ActivePerson {
		t.Errorf("activePerson = %q, want %q", loaded.ActivePerson, doc.ActivePerson)
	}
}

func TestSaveAppData_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if err := SaveAppData(dir, DefaultAppData()); err != nil {
		t.Fatalf("SaveAppData() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, v2Filename)); err != nil {
		t.Errorf("document missing: %v", err)
	}
}
