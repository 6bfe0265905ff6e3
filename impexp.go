package zakah

import (
	"fmt"
	"io"
	"time"
)

// this file contains functions to handle the backup import/export
// format. A backup is the persisted JSON shape itself, pretty-printed,
// so any stored file is a valid backup and vice versa.

// BackupFilename returns the conventional name for a backup created on
// the given day, e.g. "zakalculator-backup-2025-11-03.json".
func BackupFilename(on time.Time) string {
	return fmt.Sprintf("zakalculator-backup-%s.json", on.Format("2006-01-02"))
}

// Export writes the whole document to w in the current (v2) backup
// shape.
func Export(w io.Writer, doc StoredAppData) error {
	return EncodeAppData(w, doc)
}

// ExportState writes the flattened state of a single person to w in
// the legacy backup shape. Older releases exported this shape; it
// remains both exportable and importable.
func ExportState(w io.Writer, state State) error {
	return EncodeState(w, state)
}
