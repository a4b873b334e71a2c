// Package history tracks the previously active worktree of a repository.
// This enables `wt switch -` to toggle between the last two worktrees.
package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/storage"
)

// FileName is the pointer file inside <git-common-dir>/wt/.
const FileName = "previous.json"

// Store holds the single previous-worktree value of one repository.
// Load returns ok=false when nothing was recorded.
type Store interface {
	Load() (name string, ok bool, err error)
	Save(name string) error
	Clear() error
}

// record is the persisted form
type record struct {
	Previous string `json:"previous"`
}

// FileStore keeps the pointer in a JSON file shared by all worktrees of a
// repository.
type FileStore struct {
	path string
}

// NewFileStore returns a store under commonDir, the repository's git common
// directory.
func NewFileStore(commonDir string) *FileStore {
	return &FileStore{path: filepath.Join(commonDir, "wt", FileName)}
}

// Path returns the pointer file location
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (string, bool, error) {
	var r record
	if err := storage.LoadJSON(s.path, &r); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return r.Previous, r.Previous != "", nil
}

func (s *FileStore) Save(name string) error {
	return storage.SaveJSON(s.path, record{Previous: name})
}

// Clear removes the pointer file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu   sync.Mutex
	name string
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name, s.name != "", nil
}

func (s *MemoryStore) Save(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = ""
	return nil
}

// Tracker records the worktree a switch leaves and reports it back.
type Tracker struct {
	store Store
}

// New creates a Tracker over store.
func New(store Store) *Tracker {
	return &Tracker{store: store}
}

// Record persists name as the previous worktree. An empty name is ignored.
func (t *Tracker) Record(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	if err := t.store.Save(name); err != nil {
		return err
	}
	log.FromContext(ctx).Debug("recorded previous worktree", "name", name)
	return nil
}

// Get returns the recorded name. A pointer that cannot be read is treated as
// unset so a corrupt file never blocks switching.
func (t *Tracker) Get(ctx context.Context) (string, bool) {
	name, ok, err := t.store.Load()
	if err != nil {
		log.FromContext(ctx).Debug("ignoring unreadable previous pointer", "error", err)
		return "", false
	}
	return name, ok
}

// Clear forgets the recorded worktree.
func (t *Tracker) Clear(ctx context.Context) error {
	if err := t.store.Clear(); err != nil {
		return err
	}
	log.FromContext(ctx).Debug("cleared previous worktree")
	return nil
}
