package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store persists batches of trajectory records.
type Store interface {
	// Write persists a batch of records
	Write(ctx context.Context, records []*Record) error
	// Read retrieves up to limit records from storage; limit <= 0 reads all
	Read(ctx context.Context, limit int) ([]*Record, error)
	// Close flushes and releases the store
	Close() error
}

// FileStore writes records as JSON lines, one file per batch, under a base
// directory.
type FileStore struct {
	mu      sync.Mutex
	baseDir string
	seq     int
	closed  bool
	logger  zerolog.Logger
}

// NewFileStore creates the base directory if needed and returns a store.
func NewFileStore(baseDir string, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &FileStore{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "replay_store").Logger(),
	}, nil
}

// Write implements Store.
func (s *FileStore) Write(ctx context.Context, records []*Record) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("replay store is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.seq++
	name := fmt.Sprintf("records-%s-%04d.jsonl", time.Now().UTC().Format("20060102T150405"), s.seq)
	path := filepath.Join(s.baseDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record %s: %w", rec.RecordID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	s.logger.Debug().
		Str("file", name).
		Int("records", len(records)).
		Msg("Persisted record batch")
	return nil
}

// Read implements Store. Files are read in name order, which is also write
// order. Raw observations come back as generic JSON, not their original
// game structs; readers that need the typed view should replay from seed
// instead.
func (s *FileStore) Read(ctx context.Context, limit int) ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := filepath.Glob(filepath.Join(s.baseDir, "records-*.jsonl"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var out []*Record
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		dec := json.NewDecoder(bufio.NewReader(f))
		for dec.More() {
			var raw rawRecord
			if err := dec.Decode(&raw); err != nil {
				f.Close()
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
			out = append(out, raw.record())
			if limit > 0 && len(out) >= limit {
				f.Close()
				return out, nil
			}
		}
		f.Close()
	}
	return out, nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
