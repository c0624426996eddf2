// Package persist writes the latest market snapshot to disk.
//
// Every write fully replaces the destination: the snapshot is encoded to a
// temporary file next to it and renamed over it, so readers never observe a
// half-written file.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/henrriusdev/tippscrape/internal/market"
)

// Error reports a failed snapshot write or read.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Writer writes snapshots to Path.
type Writer struct {
	Path string
}

// NewWriter creates a Writer for path.
func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

// WriteSnapshot replaces the destination with snap.
func (w *Writer) WriteSnapshot(snap market.Snapshot) error {
	if err := w.write(snap); err != nil {
		return &Error{Path: w.Path, Err: err}
	}
	return nil
}

func (w *Writer) write(snap market.Snapshot) (err error) {
	dir := filepath.Dir(w.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.Path); err != nil {
		return fmt.Errorf("replace destination: %w", err)
	}
	return nil
}

// Persister stamps markets with the capture time and writes them.
type Persister struct {
	w   *Writer
	now func() time.Time
}

// New creates a Persister writing to path.
func New(path string) *Persister {
	return &Persister{w: NewWriter(path), now: time.Now}
}

// Path returns the destination file.
func (p *Persister) Path() string {
	return p.w.Path
}

// Persist wraps markets into a snapshot captured now and writes it.
func (p *Persister) Persist(markets []market.Market) error {
	return p.w.WriteSnapshot(market.NewSnapshot(p.now(), markets))
}

// WriteSnapshot writes an already stamped snapshot.
func (p *Persister) WriteSnapshot(snap market.Snapshot) error {
	return p.w.WriteSnapshot(snap)
}

// Read loads the snapshot stored at path.
func Read(path string) (market.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return market.Snapshot{}, &Error{Path: path, Err: err}
	}
	var snap market.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return market.Snapshot{}, &Error{Path: path, Err: fmt.Errorf("decode snapshot: %w", err)}
	}
	return snap, nil
}
