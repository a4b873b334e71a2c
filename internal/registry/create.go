package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/worktree"
)

// CreateOptions configures Create.
type CreateOptions struct {
	Name string
	// Base is the start point. Empty means default_base, or HEAD for
	// detached worktrees.
	Base     string
	Detached bool
}

// Create adds a worktree called opts.Name at the path given by the path
// pattern. Branch worktrees get a new branch prefix/name. Detached ones
// snapshot Base and have their name persisted in per-worktree config.
func (r *Registry) Create(ctx context.Context, opts CreateOptions) (worktree.Worktree, error) {
	name := strings.TrimSpace(opts.Name)
	if err := worktree.ValidateName(name); err != nil {
		return worktree.Worktree{}, err
	}

	wts, err := r.List(ctx)
	if err != nil {
		return worktree.Worktree{}, err
	}
	main, err := mainOrErr(wts)
	if err != nil {
		return worktree.Worktree{}, err
	}

	if _, ok := Find(wts, name); ok {
		return worktree.Worktree{}, &worktree.NameCollisionError{
			Name:   name,
			Reason: fmt.Sprintf("a worktree with this name is live, switch to it with 'wt switch %s'", name),
		}
	}

	var branch string
	if !opts.Detached {
		branch = worktree.BranchName(r.cfg.Prefix, name)
	}
	path := worktree.ExpandPattern(main.Path, filepath.Base(main.Path), name, branch, r.cfg.PathPattern)

	if _, err := os.Stat(path); err == nil {
		return worktree.Worktree{}, &worktree.NameCollisionError{
			Name:   name,
			Reason: fmt.Sprintf("path %s already exists, remove it or pick another name", path),
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return worktree.Worktree{}, fmt.Errorf("failed to check %s: %w", path, err)
	}

	l := log.FromContext(ctx)
	if opts.Detached {
		base := opts.Base
		if base == "" {
			base = "HEAD"
		}
		l.Debug("creating detached worktree", "name", name, "path", path, "base", base)
		if err := r.vcs.AddDetachedWorktree(ctx, path, base); err != nil {
			return worktree.Worktree{}, err
		}
		if err := r.vcs.SetWorktreeName(ctx, path, name); err != nil {
			l.Warnf("could not persist name %q for %s: %v", name, path, err)
		}
	} else {
		exists, err := r.vcs.BranchExists(ctx, branch)
		if err != nil {
			return worktree.Worktree{}, err
		}
		if exists {
			return worktree.Worktree{}, &worktree.NameCollisionError{
				Name:   name,
				Reason: fmt.Sprintf("branch %s already exists, pick another name or delete it with 'git branch -d %s'", branch, branch),
			}
		}

		base := opts.Base
		if base == "" {
			base = r.cfg.DefaultBase
		}
		l.Debug("creating worktree", "name", name, "path", path, "branch", branch, "base", base)
		if err := r.vcs.AddWorktreeNewBranch(ctx, path, branch, base); err != nil {
			return worktree.Worktree{}, err
		}
		r.configurePushTarget(ctx, branch, base)
	}

	created, err := r.List(ctx)
	if err != nil {
		return worktree.Worktree{}, err
	}
	for _, wt := range created {
		if wt.Path == path || wt.Name == name {
			return wt, nil
		}
	}
	return worktree.Worktree{}, fmt.Errorf("worktree %q was created at %s but git does not list it: run 'git worktree list'", name, path)
}

// configurePushTarget points a new branch at <remote>/<branch> when base is a
// remote-tracking ref, so the first push and later pulls need no flags.
func (r *Registry) configurePushTarget(ctx context.Context, branch, base string) {
	remote, rest, ok := strings.Cut(base, "/")
	if !ok {
		return
	}
	l := log.FromContext(ctx)
	exists, err := r.vcs.RemoteBranchExists(ctx, remote, rest)
	if err != nil || !exists {
		l.Debug("base is not a remote branch, leaving upstream unset", "base", base)
		return
	}
	if err := r.vcs.SetBranchPushTarget(ctx, branch, remote, branch); err != nil {
		l.Warnf("could not set upstream of %s to %s/%s: %v", branch, remote, branch, err)
	}
}
