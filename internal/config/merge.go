package config

import (
	"context"

	"github.com/wtkit/wt/internal/format"
	"github.com/wtkit/wt/internal/log"
)

// merge overlays the fields present in r onto base, returning a new Config.
// An empty prefix is honored (branches without prefix); an empty base or
// default worktree falls back to the default. Invalid patterns are dropped
// with a warning.
func merge(ctx context.Context, base Config, r record, source string) Config {
	merged := base

	if r.Prefix != nil {
		merged.Prefix = *r.Prefix
	}
	if r.PathPattern != nil {
		if err := format.ValidatePattern(*r.PathPattern); err != nil {
			log.FromContext(ctx).Warnf("ignoring path_pattern in %s: %v", source, err)
		} else {
			merged.PathPattern = *r.PathPattern
		}
	}
	if r.DefaultBase != nil {
		if *r.DefaultBase == "" {
			merged.DefaultBase = DefaultBase
		} else {
			merged.DefaultBase = *r.DefaultBase
		}
	}
	if r.DefaultWorktree != nil {
		merged.DefaultWorktree = *r.DefaultWorktree
	}
	if r.PostCreate != nil {
		merged.PostCreate = *r.PostCreate
	}
	if r.Preserve != nil {
		merged.Preserve = *r.Preserve
	}

	return merged
}
