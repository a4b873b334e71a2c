// Package registry derives the live worktree set from git on every call and
// resolves worktree tokens against it.
//
// Nothing is cached between calls: git is the only source of truth, so
// every operation starts from a fresh enumeration.
package registry

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/wtkit/wt/internal/config"
	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/history"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/worktree"
)

// VCS is the git surface the registry needs. *git.Client implements it.
type VCS interface {
	ListWorktrees(ctx context.Context) ([]git.WorktreeInfo, error)
	AddWorktreeNewBranch(ctx context.Context, path, branch, base string) error
	AddDetachedWorktree(ctx context.Context, path, ref string) error
	RemoveWorktree(ctx context.Context, path string, force bool) error
	PruneWorktrees(ctx context.Context) error

	WorktreeName(ctx context.Context, path string) (string, bool, error)
	SetWorktreeName(ctx context.Context, path, name string) error

	BranchExists(ctx context.Context, branch string) (bool, error)
	RemoteBranchExists(ctx context.Context, remote, branch string) (bool, error)
	SetBranchPushTarget(ctx context.Context, branch, remote, remoteBranch string) error
	BranchUpstream(ctx context.Context, branch string) (remote, remoteBranch string, ok bool, err error)
	DeleteBranch(ctx context.Context, branch string, force bool) error
	UnpushedCount(ctx context.Context, branch string) (int, error)
	MergedBranches(ctx context.Context, ref string) (map[string]bool, error)
	DefaultBranch(ctx context.Context) string

	StatusFiles(ctx context.Context, path string) ([]string, error)
	Upstream(ctx context.Context, path string) (string, bool, error)
	AheadBehind(ctx context.Context, path, upstream string) (ahead, behind int, err error)
}

var _ VCS = (*git.Client)(nil)

// Confirmer asks the user a yes/no question. Returning false declines.
type Confirmer func(ctx context.Context, prompt string) (bool, error)

// Registry resolves and manages the worktrees of one repository.
type Registry struct {
	vcs     VCS
	cfg     config.Config
	history *history.Tracker
	confirm Confirmer
}

// Option configures a Registry.
type Option func(*Registry)

// WithHistory sets the previous-pointer tracker. Without one, "previous"
// never resolves.
func WithHistory(t *history.Tracker) Option {
	return func(r *Registry) { r.history = t }
}

// WithConfirmer sets the confirmation callback. Without one, every
// confirmation is declined.
func WithConfirmer(c Confirmer) Option {
	return func(r *Registry) { r.confirm = c }
}

// New creates a Registry over vcs using the resolved cfg.
func New(vcs VCS, cfg config.Config, opts ...Option) *Registry {
	r := &Registry{vcs: vcs, cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the configuration the registry was built with.
func (r *Registry) Config() config.Config {
	return r.cfg
}

// List returns the live worktrees in git's order. The first entry is the
// main worktree.
func (r *Registry) List(ctx context.Context) ([]worktree.Worktree, error) {
	infos, err := r.vcs.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, nil
	}

	l := log.FromContext(ctx)
	mainRoot := infos[0].Path
	repoName := filepath.Base(mainRoot)

	wts := make([]worktree.Worktree, 0, len(infos))
	for i, info := range infos {
		if info.Bare || info.Prunable {
			l.Debug("skipping worktree", "path", info.Path, "bare", info.Bare, "prunable", info.Prunable)
			continue
		}
		wt := worktree.Worktree{
			Path:       info.Path,
			Branch:     info.Branch,
			Head:       info.Head,
			IsMain:     i == 0,
			IsDetached: info.Detached || info.Branch == "",
			Locked:     info.Locked,
		}
		wt.Name, wt.NameSource = r.identify(ctx, mainRoot, repoName, wt)
		wts = append(wts, wt)
	}

	disambiguate(wts)
	return wts, nil
}

// identify names a worktree. Branch worktrees are named after their branch
// without the prefix (main keeps its full branch). Detached ones try, in
// order, the persisted wt.name, the path pattern, and a HEAD placeholder.
func (r *Registry) identify(ctx context.Context, mainRoot, repoName string, wt worktree.Worktree) (string, worktree.NameSource) {
	if !wt.IsDetached {
		if wt.IsMain {
			return wt.Branch, worktree.NameFromBranch
		}
		return worktree.NameFromBranchName(r.cfg.Prefix, wt.Branch), worktree.NameFromBranch
	}

	name, ok, err := r.vcs.WorktreeName(ctx, wt.Path)
	if err != nil {
		log.FromContext(ctx).Debug("reading persisted name failed", "path", wt.Path, "error", err)
	}
	if ok && name != "" {
		return name, worktree.NameFromConfig
	}

	if !wt.IsMain {
		if name, ok := worktree.MatchPattern(mainRoot, repoName, r.cfg.PathPattern, wt.Path); ok {
			return name, worktree.NameFromPath
		}
	}

	return worktree.DetachedPlaceholder(wt.Head), worktree.NameFromHead
}

// disambiguate makes every name unique among wts. The main worktree and
// persisted names win over inferred ones. A clash between branch-derived
// names falls back to the full branch, a path-derived name gets
// @<short hash>, and anything still shared gets @<directory name>.
func disambiguate(wts []worktree.Worktree) {
	rename(wts, func(wt worktree.Worktree) (string, bool) {
		return wt.Branch, wt.NameSource == worktree.NameFromBranch && !wt.IsMain && wt.Name != wt.Branch
	})
	rename(wts, func(wt worktree.Worktree) (string, bool) {
		return wt.Name + "@" + wt.ShortHead(), wt.NameSource == worktree.NameFromPath
	})
	rename(wts, func(wt worktree.Worktree) (string, bool) {
		return wt.Name + "@" + filepath.Base(wt.Path), !wt.IsMain && wt.NameSource != worktree.NameFromConfig
	})
	rename(wts, func(wt worktree.Worktree) (string, bool) {
		return wt.Name + "@" + filepath.Base(wt.Path), !wt.IsMain
	})
}

// rename replaces each shared name for which next reports true.
func rename(wts []worktree.Worktree, next func(worktree.Worktree) (string, bool)) {
	counts := make(map[string]int, len(wts))
	for _, wt := range wts {
		counts[wt.Name]++
	}
	for i := range wts {
		if counts[wts[i].Name] < 2 {
			continue
		}
		if name, ok := next(wts[i]); ok {
			wts[i].Name = name
		}
	}
}

// Main returns the main worktree of wts.
func Main(wts []worktree.Worktree) (worktree.Worktree, bool) {
	for _, wt := range wts {
		if wt.IsMain {
			return wt, true
		}
	}
	return worktree.Worktree{}, false
}

// Find returns the worktree called name.
func Find(wts []worktree.Worktree, name string) (worktree.Worktree, bool) {
	for _, wt := range wts {
		if wt.Name == name {
			return wt, true
		}
	}
	return worktree.Worktree{}, false
}

// Current returns the worktree containing dir, preferring the deepest match
// for nested worktrees.
func (r *Registry) Current(ctx context.Context, dir string) (worktree.Worktree, bool, error) {
	wts, err := r.List(ctx)
	if err != nil {
		return worktree.Worktree{}, false, err
	}
	wt, ok := containing(wts, dir)
	return wt, ok, nil
}

// Containing returns the worktree of wts containing dir.
func Containing(wts []worktree.Worktree, dir string) (worktree.Worktree, bool) {
	return containing(wts, dir)
}

func containing(wts []worktree.Worktree, dir string) (worktree.Worktree, bool) {
	if dir == "" {
		return worktree.Worktree{}, false
	}
	dir = filepath.Clean(dir)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	var best worktree.Worktree
	found := false
	for _, wt := range wts {
		if dir != wt.Path && !strings.HasPrefix(dir, wt.Path+string(filepath.Separator)) {
			continue
		}
		if !found || len(wt.Path) > len(best.Path) {
			best, found = wt, true
		}
	}
	return best, found
}

// mainOrErr returns the main worktree, failing when git reported none.
func mainOrErr(wts []worktree.Worktree) (worktree.Worktree, error) {
	if m, ok := Main(wts); ok {
		return m, nil
	}
	return worktree.Worktree{}, errors.New("main worktree not found: run 'git worktree list' to inspect the repository")
}
