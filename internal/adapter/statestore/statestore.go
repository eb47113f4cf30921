package statestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/peakgear/storefront/internal/core/port"
)

var _ port.StateStore = (*FileStore)(nil)

type stateFile struct {
	Token      string    `json:"token,omitempty"`
	LastImport time.Time `json:"last_import,omitempty"`
}

// FileStore keeps the admin bearer token and the last bulk-import
// timestamp in a JSON file. Writes rewrite the whole file,
// last-write-wins.
type FileStore struct {
	mu    sync.Mutex
	path  string
	state stateFile
}

func New(path string) (*FileStore, error) {
	const op = "statestore.New"

	s := &FileStore{path: path}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(b, &s.state); err != nil {
		slog.With("op", op).Warn(
			"state file is corrupted, starting empty", "err", err,
		)
	}
	return s, nil
}

func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *FileStore) SetToken(token string) error {
	const op = "FileStore.SetToken"

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	if err := s.flush(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileStore) ClearToken() error {
	const op = "FileStore.ClearToken"

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	if err := s.flush(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileStore) LastImport() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LastImport
}

func (s *FileStore) SetLastImport(t time.Time) error {
	const op = "FileStore.SetLastImport"

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastImport = t
	if err := s.flush(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}
