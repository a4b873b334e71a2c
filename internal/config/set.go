package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/worktree"
)

// Set persists key=value in store. Every other field of the record,
// including keys wt does not know about, is preserved, and the record is
// rewritten as a whole. A record that does not parse is backed up and
// replaced by one holding only key.
func Set(ctx context.Context, store Store, key, value string) error {
	if !IsKey(key) {
		return unknownKey(key)
	}
	if err := validateValue(key, value); err != nil {
		return &worktree.ConfigError{Key: key, Err: err}
	}
	return update(ctx, store, key, func(fields map[string]any) {
		fields[key] = value
	})
}

// Unset removes key from store so the default applies again.
func Unset(ctx context.Context, store Store, key string) error {
	if !IsKey(key) {
		return unknownKey(key)
	}
	return update(ctx, store, key, func(fields map[string]any) {
		delete(fields, key)
	})
}

// Write replaces the record in store with cfg. Optional keys are omitted
// when empty.
func Write(store Store, cfg Config) error {
	for _, key := range Keys() {
		v, _ := Get(cfg, key)
		if optional(key) && v == "" {
			continue
		}
		if err := validateValue(key, v); err != nil {
			return &worktree.ConfigError{Key: key, Path: store.Path(), Err: err}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if err := toml.NewEncoder(&buf).Encode(toRecord(cfg)); err != nil {
		return &worktree.ConfigError{Path: store.Path(), Err: err}
	}
	if err := store.Save(buf.Bytes()); err != nil {
		return &worktree.ConfigError{Path: store.Path(), Err: fmt.Errorf("write failed: %w", err)}
	}
	return nil
}

const header = "# wt configuration (edit with `wt config <key> <value>`)\n\n"

func toRecord(cfg Config) record {
	r := record{
		Prefix:      &cfg.Prefix,
		PathPattern: &cfg.PathPattern,
		DefaultBase: &cfg.DefaultBase,
	}
	if cfg.DefaultWorktree != "" {
		r.DefaultWorktree = &cfg.DefaultWorktree
	}
	if cfg.PostCreate != "" {
		r.PostCreate = &cfg.PostCreate
	}
	if cfg.Preserve != "" {
		r.Preserve = &cfg.Preserve
	}
	return r
}

// optional reports whether key has no default value.
func optional(key string) bool {
	return key == KeyDefaultWorktree || key == KeyPostCreate || key == KeyPreserve
}

func update(ctx context.Context, store Store, key string, mutate func(map[string]any)) error {
	fields := map[string]any{}

	data, err := store.Load()
	switch {
	case err == nil:
		if _, decodeErr := toml.Decode(string(data), &fields); decodeErr != nil {
			bak, err := store.SaveBackup(data)
			if err != nil {
				return &worktree.ConfigError{Key: key, Path: store.Path(), Err: fmt.Errorf("back up corrupt record: %w", err)}
			}
			log.FromContext(ctx).Warnf("%s is not valid TOML (%v); saved a copy to %s and starting from defaults", store.Path(), decodeErr, bak)
			fields = map[string]any{}
			data = nil
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return &worktree.ConfigError{Key: key, Path: store.Path(), Err: err}
	}

	mutate(fields)

	var buf bytes.Buffer
	if len(data) == 0 {
		buf.WriteString(header)
	}
	if err := toml.NewEncoder(&buf).Encode(fields); err != nil {
		return &worktree.ConfigError{Key: key, Path: store.Path(), Err: err}
	}
	if err := store.Save(buf.Bytes()); err != nil {
		return &worktree.ConfigError{Key: key, Path: store.Path(), Err: fmt.Errorf("write failed: %w", err)}
	}
	return nil
}
