package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/motionkit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/motionkit/internal/ports"
	apperrors "github.com/alexisbeaulieu97/motionkit/pkg/errors"
)

const storeVersion = "1.0"

// storeFile is the on-disk layout of a FileStore.
type storeFile struct {
	Version string            `json:"version"`
	Entries map[string]string `json:"entries"`
}

// CorruptSuffix is appended to a store file that could not be parsed when it
// is moved aside.
const CorruptSuffix = ".corrupt"

// FileStore persists keys in a single JSON document on disk.
type FileStore struct {
	path    string
	logger  ports.Logger
	mu      sync.RWMutex
	entries map[string]string
}

// NewFileStore creates a FileStore and loads it from disk. A missing file
// yields an empty store. So does an unparseable one: it is moved to
// path+CorruptSuffix, a warning is logged, and the next write starts a fresh
// document.
func NewFileStore(ctx context.Context, path string, logger ports.Logger) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		logger:  logging.OrNoOp(logger).With("component", "kvstore"),
		entries: map[string]string{},
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	err := s.load()
	var parseErr *apperrors.ParseError
	switch {
	case err == nil, os.IsNotExist(err):
	case errors.As(err, &parseErr):
		s.quarantine(ctx, err)
	default:
		return nil, err
	}

	return s, nil
}

func (s *FileStore) quarantine(ctx context.Context, cause error) {
	aside := s.path + CorruptSuffix
	if err := os.Rename(s.path, aside); err != nil {
		s.logger.Warn(ctx, "ignoring corrupt store", "path", s.path, "error", cause, "rename_error", err)
		return
	}
	s.logger.Warn(ctx, "ignoring corrupt store", "path", s.path, "moved_to", aside, "error", cause)
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return apperrors.NewParseError(s.path, 0, fmt.Errorf("failed to parse store: %w", err))
	}
	if file.Entries == nil {
		file.Entries = map[string]string{}
	}
	s.entries = file.Entries
	return nil
}

// Get implements ports.KeyValueStore.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	return value, nil
}

// Set implements ports.KeyValueStore. The whole document is rewritten.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.entries[key]
	s.entries[key] = value
	if err := s.saveLocked(); err != nil {
		if existed {
			s.entries[key] = previous
		} else {
			delete(s.entries, key)
		}
		return apperrors.NewStoreError(key, "write", err)
	}
	return nil
}

// Delete implements ports.KeyValueStore.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.entries[key]
	if !existed {
		return nil
	}
	delete(s.entries, key)
	if err := s.saveLocked(); err != nil {
		s.entries[key] = previous
		return apperrors.NewStoreError(key, "delete", err)
	}
	return nil
}

// Keys returns every stored key in sorted order.
func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// saveLocked writes the store to disk atomically.
func (s *FileStore) saveLocked() error {
	data, err := json.MarshalIndent(storeFile{Version: storeVersion, Entries: s.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

var _ ports.KeyValueStore = (*FileStore)(nil)
