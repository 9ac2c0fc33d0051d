// Package deployments maintains the on-disk ledger of contract deployments,
// a JSON map keyed by "<contract>-<network>".
package deployments

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Ledger is the deployment bookkeeping file. Writes are read-merge-write:
// the whole file is decoded, one key is replaced, and the result is written
// through a temp file and an atomic rename so a crashed writer can never
// truncate previous entries. Concurrent writers are still unsupported.
type Ledger struct {
	path string
}

// NewLedger creates a ledger handle for the given file path. The file need
// not exist yet.
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the ledger file location.
func (l *Ledger) Path() string {
	return l.path
}

// Load decodes all recorded deployments. A missing file is an empty ledger.
func (l *Ledger) Load() (map[string]Record, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return map[string]Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read deployments file %s: %w", l.path, err)
	}

	records := map[string]Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse deployments file %s: %w", l.path, err)
	}
	return records, nil
}

// Record merges one deployment into the ledger under Key(contract, network),
// preserving every other entry, and persists the result atomically.
func (l *Ledger) Record(contract string, rec Record) error {
	records, err := l.Load()
	if err != nil {
		return err
	}

	records[Key(contract, rec.Network)] = rec

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deployments: %w", err)
	}
	data = append(data, '\n')

	// Temp file in the same directory so the rename stays on one filesystem.
	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".deployments-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp deployments file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write deployments: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp deployments file: %w", err)
	}

	// CreateTemp makes the file 0600; the ledger is shared CI state and
	// stays world-readable like a plainly written file would be.
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set deployments file mode: %w", err)
	}

	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace deployments file %s: %w", l.path, err)
	}
	return nil
}
