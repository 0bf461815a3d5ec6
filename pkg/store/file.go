package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dragswitch/dragswitch/pkg/errors"
)

// FileStore keeps one JSON file per board in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store rooted at baseDir, creating it if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := errors.ValidatePath(baseDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create store dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(board string) string {
	return filepath.Join(s.baseDir, board+".json")
}

func (s *FileStore) Get(ctx context.Context, board string) (*Arrangement, error) {
	if err := errors.ValidateID(board); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(board))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read arrangement %s", board)
	}

	var arr Arrangement
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parse arrangement %s", board)
	}
	return &arr, nil
}

func (s *FileStore) Set(ctx context.Context, arr *Arrangement) error {
	if err := validate(arr); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(arr, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal arrangement")
	}

	// Write then rename so readers never see a partial file.
	tmp := s.path(arr.Board) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write arrangement %s", arr.Board)
	}
	if err := os.Rename(tmp, s.path(arr.Board)); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStore, err, "write arrangement %s", arr.Board)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, board string) error {
	if err := errors.ValidateID(board); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(board)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStore, err, "remove arrangement %s", board)
	}
	return nil
}

// List returns the ids of every saved board, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read store dir")
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Clear removes every saved arrangement.
func (s *FileStore) Clear(ctx context.Context) error {
	ids, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
