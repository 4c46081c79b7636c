// Package content loads content snapshots from Airtable, a JSON file or the
// snapshot store.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/benknight/cocolist/internal/entity"
)

// Source loads every content record at once.
type Source interface {
	Load(ctx context.Context) (*entity.Snapshot, error)
}

// SnapshotReader returns the newest stored snapshot.
type SnapshotReader interface {
	Latest(ctx context.Context) (*entity.Snapshot, error)
}

// StoreSource reads from the snapshot store.
type StoreSource struct {
	store SnapshotReader
}

// NewStoreSource wraps store as a Source.
func NewStoreSource(store SnapshotReader) *StoreSource {
	return &StoreSource{store: store}
}

// Load implements Source.
func (s *StoreSource) Load(ctx context.Context) (*entity.Snapshot, error) {
	return s.store.Latest(ctx)
}

// FallbackSource loads from a primary source on every call and turns to a
// secondary source only when the primary error satisfies fallback.
type FallbackSource struct {
	primary   Source
	secondary Source
	fallback  func(error) bool
	logger    *zap.Logger
}

// NewFallbackSource returns a FallbackSource. A nil fallback never falls back.
func NewFallbackSource(primary, secondary Source, fallback func(error) bool, logger *zap.Logger) *FallbackSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackSource{primary: primary, secondary: secondary, fallback: fallback, logger: logger}
}

// Load implements Source.
func (s *FallbackSource) Load(ctx context.Context) (*entity.Snapshot, error) {
	snap, err := s.primary.Load(ctx)
	if err == nil {
		return snap, nil
	}
	if s.fallback == nil || !s.fallback(err) {
		return nil, err
	}

	s.logger.Warn("primary content source unavailable, using fallback", zap.Error(err))
	snap, fbErr := s.secondary.Load(ctx)
	if fbErr != nil {
		return nil, fmt.Errorf("fallback source (primary: %v): %w", err, fbErr)
	}
	return snap, nil
}

// FileSource reads and writes a JSON snapshot file.
type FileSource struct {
	Path string
}

// NewFileSource returns a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap entity.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.Path, err)
	}
	return &snap, nil
}

// Save writes snap to the file, replacing it atomically.
func (s *FileSource) Save(snap *entity.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot is nil")
	}
	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
