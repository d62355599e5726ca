// Package store memoizes the load-from-file step. The cache key is the
// backing file's identity (size + modification time), so a wholesale
// replacement through Replace or any external rewrite is observed on the next
// read instead of serving stale records.
package store

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"ecocubano/internal/dataset"
	"ecocubano/internal/ingest"
	"ecocubano/internal/logger"
)

// Store caches the normalized dataset for one backing file.
type Store struct {
	mu   sync.Mutex
	path string
	opts ingest.Options

	cached  *dataset.Dataset
	size    int64
	modTime time.Time
	valid   bool
}

// New creates a store over the given export file. Nothing is loaded until
// the first Dataset call.
func New(path string, opts ingest.Options) *Store {
	return &Store{path: path, opts: opts}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Dataset returns the cached dataset, reloading when the backing file changed
// since the last load. Load failures return an empty dataset together with
// the error so callers can keep rendering.
func (s *Store) Dataset() (*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		s.valid = false
		return dataset.New(nil), fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	if s.valid && info.Size() == s.size && info.ModTime().Equal(s.modTime) {
		return s.cached, nil
	}

	ds, err := ingest.LoadFile(s.path, s.opts)
	if err != nil {
		s.valid = false
		return ds, err
	}

	logger.Debug("dataset reloaded", "path", s.path, "records", ds.Len())
	s.cached = ds
	s.size = info.Size()
	s.modTime = info.ModTime()
	s.valid = true
	return ds, nil
}

// Replace overwrites the backing file wholesale with the supplied document
// and invalidates the cache. The upload is validated before the file is
// touched: a broken document never clobbers a working one.
func (s *Store) Replace(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := ingest.Normalize(raw, s.opts); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	s.valid = false
	logger.Info("dataset file replaced", "path", s.path, "bytes", len(raw))
	return nil
}

// Invalidate drops the cached dataset, forcing a reload on the next read.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid = false
}
