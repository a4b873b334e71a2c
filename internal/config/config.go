package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/wtkit/wt/internal/format"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/worktree"
)

// Configuration keys.
const (
	KeyPrefix          = "prefix"
	KeyPathPattern     = "path_pattern"
	KeyDefaultBase     = "default_base"
	KeyDefaultWorktree = "default_worktree"
	KeyPostCreate      = "post_create"
	KeyPreserve        = "preserve"
)

// Default values for absent fields.
const (
	DefaultPrefix      = "feature"
	DefaultPathPattern = format.DefaultPathPattern
	DefaultBase        = "origin/main"
)

// Config is the resolved configuration for one invocation.
// DefaultWorktree is empty when unset, which selects the main worktree.
type Config struct {
	Prefix          string `json:"prefix" yaml:"prefix"`
	PathPattern     string `json:"path_pattern" yaml:"path_pattern"`
	DefaultBase     string `json:"default_base" yaml:"default_base"`
	DefaultWorktree string `json:"default_worktree" yaml:"default_worktree"`
	// PostCreate is a shell command run inside every new worktree.
	PostCreate string `json:"post_create,omitempty" yaml:"post_create,omitempty"`
	// Preserve is a comma-separated list of file name patterns. Git-ignored
	// files matching one are copied from the main worktree into new ones.
	Preserve string `json:"preserve,omitempty" yaml:"preserve,omitempty"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Prefix:      DefaultPrefix,
		PathPattern: DefaultPathPattern,
		DefaultBase: DefaultBase,
	}
}

// Keys lists the valid configuration keys in display order.
func Keys() []string {
	return []string{KeyPrefix, KeyPathPattern, KeyDefaultBase, KeyDefaultWorktree, KeyPostCreate, KeyPreserve}
}

// IsKey reports whether key is a valid configuration key.
func IsKey(key string) bool {
	return slices.Contains(Keys(), key)
}

// Get returns the resolved value of key.
func Get(cfg Config, key string) (string, error) {
	switch key {
	case KeyPrefix:
		return cfg.Prefix, nil
	case KeyPathPattern:
		return cfg.PathPattern, nil
	case KeyDefaultBase:
		return cfg.DefaultBase, nil
	case KeyDefaultWorktree:
		return cfg.DefaultWorktree, nil
	case KeyPostCreate:
		return cfg.PostCreate, nil
	case KeyPreserve:
		return cfg.Preserve, nil
	}
	return "", unknownKey(key)
}

// record is the persisted form. Nil fields are absent from the file.
type record struct {
	Prefix          *string `toml:"prefix"`
	PathPattern     *string `toml:"path_pattern"`
	DefaultBase     *string `toml:"default_base"`
	DefaultWorktree *string `toml:"default_worktree"`
	PostCreate      *string `toml:"post_create"`
	Preserve        *string `toml:"preserve"`
}

// field returns the slot in r that holds key, or nil for an unknown key.
func (r *record) field(key string) **string {
	switch key {
	case KeyPrefix:
		return &r.Prefix
	case KeyPathPattern:
		return &r.PathPattern
	case KeyDefaultBase:
		return &r.DefaultBase
	case KeyDefaultWorktree:
		return &r.DefaultWorktree
	case KeyPostCreate:
		return &r.PostCreate
	case KeyPreserve:
		return &r.Preserve
	}
	return nil
}

// value returns the field stored for key, if present.
func (r record) value(key string) (string, bool) {
	f := r.field(key)
	if f == nil || *f == nil {
		return "", false
	}
	return **f, true
}

// decode parses a record. A syntax error rejects the whole record. A known
// key holding something other than a string is left out of r and reported
// in invalid, so the remaining keys still apply.
func decode(data []byte) (r record, invalid []error, err error) {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return record{}, nil, err
	}
	for _, key := range Keys() {
		v, ok := raw[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			invalid = append(invalid, &worktree.ConfigError{
				Key: key,
				Err: fmt.Errorf("expected a string, found %s", tomlType(v)),
			})
			continue
		}
		*r.field(key) = &s
	}
	return r, invalid, nil
}

func tomlType(v any) string {
	switch v.(type) {
	case int64:
		return "an integer"
	case float64:
		return "a float"
	case bool:
		return "a boolean"
	case []any, []map[string]any:
		return "an array"
	case map[string]any:
		return "a table"
	}
	return "a date"
}

// Resolve reads each store in order and layers the fields present in it over
// the defaults, so later stores override earlier ones. A missing store is
// skipped; an unreadable or corrupt one is skipped with a warning. Resolve
// never fails.
func Resolve(ctx context.Context, stores ...Store) Config {
	l := log.FromContext(ctx)
	cfg := Default()

	for _, s := range stores {
		if s == nil {
			continue
		}
		data, err := s.Load()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				l.Warnf("ignoring config %s: %v", s.Path(), err)
			}
			continue
		}
		r, invalid, err := decode(data)
		if err != nil {
			l.Warnf("ignoring corrupt config %s: %v (fix it or remove it; defaults apply)", s.Path(), err)
			continue
		}
		for _, bad := range invalid {
			l.Warnf("ignoring %v in %s (default applies)", bad, s.Path())
		}
		cfg = merge(ctx, cfg, r, s.Path())
	}

	l.Debug("config resolved", "prefix", cfg.Prefix, "path_pattern", cfg.PathPattern,
		"default_base", cfg.DefaultBase, "default_worktree", cfg.DefaultWorktree,
		"post_create", cfg.PostCreate, "preserve", cfg.Preserve)
	return cfg
}

func unknownKey(key string) error {
	return &worktree.ConfigError{
		Key: key,
		Err: fmt.Errorf("unknown key (valid: %s)", formatOptions(Keys())),
	}
}
