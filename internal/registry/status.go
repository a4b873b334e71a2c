package registry

import (
	"context"

	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/worktree"
)

// Status describes the local state of one worktree.
type Status struct {
	Worktree worktree.Worktree `json:"worktree" yaml:"worktree"`
	// Files are `git status --porcelain` lines.
	Files    []string `json:"files" yaml:"files"`
	Upstream string   `json:"upstream,omitempty" yaml:"upstream,omitempty"`
	Ahead    int      `json:"ahead" yaml:"ahead"`
	Behind   int      `json:"behind" yaml:"behind"`
}

// Dirty reports whether the worktree has uncommitted changes.
func (s Status) Dirty() bool {
	return len(s.Files) > 0
}

// Status reads the uncommitted files and upstream divergence of wt.
func (r *Registry) Status(ctx context.Context, wt worktree.Worktree) (Status, error) {
	st := Status{Worktree: wt}

	files, err := r.vcs.StatusFiles(ctx, wt.Path)
	if err != nil {
		return st, err
	}
	st.Files = files

	if wt.IsDetached {
		return st, nil
	}
	upstream, ok, err := r.vcs.Upstream(ctx, wt.Path)
	if err != nil || !ok {
		return st, err
	}
	st.Upstream = upstream

	// A configured upstream whose remote branch is gone has nothing to compare against
	if st.Ahead, st.Behind, err = r.vcs.AheadBehind(ctx, wt.Path, upstream); err != nil {
		st.Upstream += " (gone)"
		return st, nil
	}
	return st, nil
}

// StatusAll reads the status of every worktree, one after the other, in
// the order of wts. A worktree whose status cannot be read is skipped with a
// warning.
func (r *Registry) StatusAll(ctx context.Context, wts []worktree.Worktree) []Status {
	l := log.FromContext(ctx)
	statuses := make([]Status, 0, len(wts))
	for _, wt := range wts {
		st, err := r.Status(ctx, wt)
		if err != nil {
			l.Warnf("skipping %s: %v", wt.Name, err)
			continue
		}
		statuses = append(statuses, st)
	}
	return statuses
}
