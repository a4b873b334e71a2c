package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/wtkit/wt/internal/storage"
)

// EnvConfigDir overrides the directory holding the global config file.
const EnvConfigDir = "WT_CONFIG_DIR"

// FileName is the name of both the global and the repo-local config file.
const FileName = ".wt.toml"

// Store holds one persisted configuration record.
// Load returns an error wrapping os.ErrNotExist when there is no record.
// SaveBackup keeps a copy of a record that is about to be replaced and
// returns where it went.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
	SaveBackup(data []byte) (string, error)
	Path() string
}

// FileStore is a Store backed by a file, written atomically.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// GlobalPath returns the global config location:
// $WT_CONFIG_DIR/.wt.toml when set, otherwise ~/.wt.toml.
func GlobalPath() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory (set %s instead): %w", EnvConfigDir, err)
	}
	return filepath.Join(home, FileName), nil
}

// GlobalStore returns the store for the global config file.
func GlobalStore() (*FileStore, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return NewFileStore(path), nil
}

// LocalStore returns the store for the repo-local config in the main
// worktree root.
func LocalStore(mainRoot string) *FileStore {
	return NewFileStore(filepath.Join(mainRoot, FileName))
}

func (s *FileStore) Load() ([]byte, error) {
	return os.ReadFile(s.path)
}

func (s *FileStore) Save(data []byte) error {
	return storage.WriteFile(s.path, data, 0o644)
}

func (s *FileStore) SaveBackup(data []byte) (string, error) {
	dst := s.path + ".bak"
	return dst, storage.WriteFile(dst, data, 0o644)
}

func (s *FileStore) Path() string {
	return s.path
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu      sync.Mutex
	data    []byte
	exists  bool
	backup  []byte
	SaveErr error // returned by Save when set
}

// NewMemoryStore returns a store holding data. A nil data means no record.
func NewMemoryStore(data []byte) *MemoryStore {
	return &MemoryStore{data: data, exists: data != nil}
}

func (s *MemoryStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.exists {
		return nil, &fs.PathError{Op: "open", Path: s.Path(), Err: fs.ErrNotExist}
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemoryStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.data = append([]byte(nil), data...)
	s.exists = true
	return nil
}

func (s *MemoryStore) SaveBackup(data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backup = append([]byte(nil), data...)
	return s.Path() + ".bak", nil
}

// Backup returns the last record passed to SaveBackup.
func (s *MemoryStore) Backup() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.backup...)
}

func (s *MemoryStore) Path() string {
	return "memory://" + FileName
}

// Bytes returns the stored record.
func (s *MemoryStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}
