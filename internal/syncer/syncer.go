// Package syncer brings a batch of worktrees up to date with their upstream
// branches.
//
// Each worktree runs stash, pull, optional rebase and unstash to completion
// before the next one starts. Failures are recorded in the worktree's Result
// and never stop the batch; only cancellation does. Stash entries are never
// dropped by wt: a stash that cannot be restored stays in `git stash list`
// under its label.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/worktree"
)

// Status is the outcome of syncing one worktree.
type Status string

const (
	UpToDate      Status = "up_to_date"
	FastForwarded Status = "fast_forwarded"
	Rebased       Status = "rebased"
	Conflict      Status = "conflict"
	StashConflict Status = "stash_conflict"
	Skipped       Status = "skipped"
)

// Result is the ledger entry for one worktree.
type Result struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Status Status `json:"status" yaml:"status"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	// Stashed is set when local changes were shelved for the update.
	Stashed bool `json:"stashed" yaml:"stashed"`
	// StashRef is the label of a stash that could not be restored.
	StashRef string `json:"stash_ref,omitempty" yaml:"stash_ref,omitempty"`
}

// Failed reports whether the worktree needs manual attention.
func (r Result) Failed() bool {
	return r.Status == Conflict || r.Status == StashConflict
}

// VCS is the git surface the engine needs. *git.Client implements it.
type VCS interface {
	IsDirty(ctx context.Context, path string) (bool, error)
	Upstream(ctx context.Context, path string) (string, bool, error)
	HeadCommit(ctx context.Context, path string) (string, error)

	StashPush(ctx context.Context, path, label string) (bool, error)
	FindStash(ctx context.Context, path, label string) (string, bool, error)
	StashPop(ctx context.Context, path, ref string) error

	Pull(ctx context.Context, path string) error
	Fetch(ctx context.Context, path, remote, refspec string) error
	Rebase(ctx context.Context, path, onto string) error
	AbortRebase(ctx context.Context, path string) error
	RebaseInProgress(ctx context.Context, path string) bool
}

var _ VCS = (*git.Client)(nil)

// StashPrefix starts every stash label the engine creates.
const StashPrefix = "wt-sync"

// Engine runs sync batches.
type Engine struct {
	vcs      VCS
	base     string
	newLabel func() string
	report   func(Result)
}

// Option configures an Engine.
type Option func(*Engine)

// WithReporter registers a callback invoked with each result as soon as it
// is produced.
func WithReporter(fn func(Result)) Option {
	return func(e *Engine) { e.report = fn }
}

// New creates an Engine. defaultBase is the ref rebases go onto.
func New(vcs VCS, defaultBase string, opts ...Option) *Engine {
	e := &Engine{
		vcs:      vcs,
		base:     defaultBase,
		newLabel: func() string { return StashPrefix + " " + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sync processes targets in order and returns one result per processed
// target, in the same order. When ctx is cancelled the batch stops before
// the next target and the results gathered so far are returned.
func (e *Engine) Sync(ctx context.Context, targets []worktree.Worktree, rebase bool) []Result {
	l := log.FromContext(ctx)
	results := make([]Result, 0, len(targets))
	for _, wt := range targets {
		if ctx.Err() != nil {
			l.Warnf("sync interrupted, %d of %d worktrees not processed", len(targets)-len(results), len(targets))
			break
		}
		res := e.syncOne(ctx, wt, rebase)
		l.Debug("synced worktree", "name", res.Name, "status", res.Status, "detail", res.Detail)
		results = append(results, res)
		if e.report != nil {
			e.report(res)
		}
	}
	return results
}

func (e *Engine) syncOne(ctx context.Context, wt worktree.Worktree, rebase bool) Result {
	res := Result{Name: wt.Name, Path: wt.Path}

	if wt.IsDetached {
		return res.with(Skipped, "detached HEAD, nothing to pull")
	}
	upstream, ok, err := e.vcs.Upstream(ctx, wt.Path)
	if err != nil {
		return res.with(Conflict, fmt.Sprintf("could not read upstream: %v", err))
	}
	if !ok {
		return res.with(Skipped, fmt.Sprintf("no upstream configured, push with 'git push -u origin %s' first", wt.Branch))
	}

	dirty, err := e.vcs.IsDirty(ctx, wt.Path)
	if err != nil {
		return res.with(Conflict, fmt.Sprintf("could not read status: %v", err))
	}

	var label string
	if dirty {
		label = e.newLabel()
		created, err := e.vcs.StashPush(ctx, wt.Path, label)
		if err != nil {
			return res.with(StashConflict, fmt.Sprintf("could not stash local changes: %v; commit or stash them yourself, then sync again", err))
		}
		res.Stashed = created
	}

	res.Status, res.Detail = e.update(ctx, wt, upstream, rebase)

	if res.Stashed {
		e.restore(ctx, wt, label, &res)
	}
	return res
}

func (r Result) with(status Status, detail string) Result {
	r.Status = status
	r.Detail = detail
	return r
}

// update pulls and optionally rebases, leaving the worktree either updated
// or exactly as it was.
func (e *Engine) update(ctx context.Context, wt worktree.Worktree, upstream string, rebase bool) (Status, string) {
	before, err := e.vcs.HeadCommit(ctx, wt.Path)
	if err != nil {
		return Conflict, fmt.Sprintf("could not read HEAD: %v", err)
	}

	if err := e.vcs.Pull(ctx, wt.Path); err != nil {
		switch {
		case errors.Is(err, git.ErrNoRemoteRef):
			return Skipped, fmt.Sprintf("upstream %s does not exist on the remote", upstream)
		case errors.Is(err, git.ErrDiverged):
			return Conflict, fmt.Sprintf("%s has diverged from %s: resolve conflicts and pull manually", wt.Branch, upstream)
		case ctx.Err() != nil:
			return Conflict, "interrupted during pull: check 'git status' and pull manually"
		}
		return Conflict, fmt.Sprintf("pull from %s failed: %s: resolve conflicts and pull manually", upstream, firstLine(err))
	}

	status := UpToDate
	detail := "already up to date with " + upstream
	after, err := e.vcs.HeadCommit(ctx, wt.Path)
	if err != nil {
		return Conflict, fmt.Sprintf("could not read HEAD: %v", err)
	}
	if after != before {
		status = FastForwarded
		detail = fmt.Sprintf("fast-forwarded %s..%s", git.ShortHash(before), git.ShortHash(after))
	}

	if !rebase {
		return status, detail
	}
	return e.rebase(ctx, wt, status, detail)
}

func (e *Engine) rebase(ctx context.Context, wt worktree.Worktree, status Status, detail string) (Status, string) {
	l := log.FromContext(ctx)

	if remote, branch, ok := strings.Cut(e.base, "/"); ok {
		if err := e.vcs.Fetch(ctx, wt.Path, remote, branch); err != nil {
			l.Debug("fetching rebase base failed, using the local ref", "base", e.base, "error", err)
		}
	}

	before, err := e.vcs.HeadCommit(ctx, wt.Path)
	if err != nil {
		return Conflict, fmt.Sprintf("could not read HEAD: %v", err)
	}

	if err := e.vcs.Rebase(ctx, wt.Path, e.base); err != nil {
		// Abort even after cancellation so no half-applied rebase is left
		abortCtx := context.WithoutCancel(ctx)
		if e.vcs.RebaseInProgress(abortCtx, wt.Path) {
			if abortErr := e.vcs.AbortRebase(abortCtx, wt.Path); abortErr != nil {
				return Conflict, fmt.Sprintf("rebase onto %s failed and could not be aborted: %v; run 'git rebase --abort' in %s", e.base, abortErr, wt.Path)
			}
		}
		return Conflict, fmt.Sprintf("rebase onto %s conflicted and was aborted: rebase manually with 'git rebase %s'", e.base, e.base)
	}

	after, err := e.vcs.HeadCommit(ctx, wt.Path)
	if err != nil {
		return Conflict, fmt.Sprintf("could not read HEAD: %v", err)
	}
	if after != before {
		return Rebased, fmt.Sprintf("rebased onto %s", e.base)
	}
	return status, detail
}

// restore pops the stash created under label. The entry is located by label
// right before popping since other worktrees share the stash list. On
// failure the entry stays where it is.
func (e *Engine) restore(ctx context.Context, wt worktree.Worktree, label string, res *Result) {
	// Local changes are put back even when the batch was interrupted
	ctx = context.WithoutCancel(ctx)

	fail := func(reason string) {
		res.StashRef = label
		msg := fmt.Sprintf("%s; stash preserved as %q, inspect with 'git stash list' and restore with 'git stash pop'", reason, label)
		if res.Failed() {
			res.Detail += "; " + msg
		} else {
			res.Detail = msg
		}
		res.Status = Conflict
	}

	ref, found, err := e.vcs.FindStash(ctx, wt.Path, label)
	if err != nil {
		fail(fmt.Sprintf("could not list stashes: %v", err))
		return
	}
	if !found {
		fail("stash entry not found")
		return
	}
	if err := e.vcs.StashPop(ctx, wt.Path, ref); err != nil {
		fail(fmt.Sprintf("restoring local changes failed: %s", firstLine(err)))
	}
}

func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}
