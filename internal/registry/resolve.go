package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/resolve"
	"github.com/wtkit/wt/internal/worktree"
)

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// Resolve maps a parsed token to a live worktree.
func (r *Registry) Resolve(ctx context.Context, t resolve.Target) (worktree.Worktree, error) {
	wts, err := r.List(ctx)
	if err != nil {
		return worktree.Worktree{}, err
	}
	return r.resolveIn(ctx, wts, t)
}

func (r *Registry) resolveIn(ctx context.Context, wts []worktree.Worktree, t resolve.Target) (worktree.Worktree, error) {
	switch t.Kind {
	case resolve.Default:
		if name := r.cfg.DefaultWorktree; name != "" {
			if wt, ok := Find(wts, name); ok {
				return wt, nil
			}
			log.FromContext(ctx).Debug("default worktree is gone, using main", "name", name)
		}
		if wt, ok := Main(wts); ok {
			return wt, nil
		}
		return worktree.Worktree{}, fmt.Errorf("default worktree: %w", worktree.ErrNotFound)

	case resolve.Previous:
		if r.history == nil {
			return worktree.Worktree{}, worktree.ErrNoPreviousWorktree
		}
		name, ok := r.history.Get(ctx)
		if !ok {
			return worktree.Worktree{}, worktree.ErrNoPreviousWorktree
		}
		wt, ok := Find(wts, name)
		if !ok {
			return worktree.Worktree{}, fmt.Errorf("previous worktree %q no longer exists: %w", name, worktree.ErrNoPreviousWorktree)
		}
		return wt, nil
	}

	if wt, ok := Find(wts, t.Name); ok {
		return wt, nil
	}
	return worktree.Worktree{}, &worktree.WorktreeNotFoundError{
		Token:       t.Name,
		Suggestions: suggest(t.Name, wts),
	}
}

// ResolveAll resolves every token, failing on the first one that does not
// resolve. Duplicates are dropped, keeping the first occurrence.
func (r *Registry) ResolveAll(ctx context.Context, targets []resolve.Target) ([]worktree.Worktree, error) {
	wts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(targets))
	out := make([]worktree.Worktree, 0, len(targets))
	for _, t := range targets {
		wt, err := r.resolveIn(ctx, wts, t)
		if err != nil {
			return nil, err
		}
		if seen[wt.Path] {
			continue
		}
		seen[wt.Path] = true
		out = append(out, wt)
	}
	return out, nil
}

// Switch resolves t and records the worktree containing cwd as previous when
// the target differs from it. The pointer is written before the caller acts
// on the returned path.
func (r *Registry) Switch(ctx context.Context, t resolve.Target, cwd string) (worktree.Worktree, error) {
	wts, err := r.List(ctx)
	if err != nil {
		return worktree.Worktree{}, err
	}
	target, err := r.resolveIn(ctx, wts, t)
	if err != nil {
		return worktree.Worktree{}, err
	}
	if err := r.recordPrevious(ctx, wts, target, cwd); err != nil {
		return worktree.Worktree{}, err
	}
	return target, nil
}

func (r *Registry) recordPrevious(ctx context.Context, wts []worktree.Worktree, target worktree.Worktree, cwd string) error {
	if r.history == nil {
		return nil
	}
	current, ok := containing(wts, cwd)
	if !ok || current.Path == target.Path {
		return nil
	}
	if err := r.history.Record(ctx, current.Name); err != nil {
		return fmt.Errorf("failed to record previous worktree: %w", err)
	}
	return nil
}

// suggest returns names close to token. A worktree whose full branch equals
// the token comes first; fuzzy matches follow, best first.
func suggest(token string, wts []worktree.Worktree) []string {
	var out []string
	add := func(name string) {
		for _, s := range out {
			if s == name {
				return
			}
		}
		out = append(out, name)
	}

	for _, wt := range wts {
		if wt.Branch != "" && wt.Branch == token {
			add(wt.Name)
		}
	}

	names := worktree.Names(wts)
	for _, m := range fuzzy.Find(token, names) {
		add(m.Str)
	}
	// Also catch tokens that are longer than the name they were meant for
	lower := strings.ToLower(token)
	for _, name := range names {
		if n := strings.ToLower(name); strings.HasPrefix(lower, n) || strings.HasPrefix(n, lower) {
			add(name)
		}
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
