package doctor

import (
	"context"

	"github.com/wtkit/wt/internal/config"
	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/history"
	"github.com/wtkit/wt/internal/worktree"
)

// VCS is the git surface doctor needs. *git.Client implements it.
type VCS interface {
	ListWorktrees(ctx context.Context) ([]git.WorktreeInfo, error)
	PruneWorktrees(ctx context.Context) error
	RepairWorktrees(ctx context.Context, paths ...string) error
	ListStashes(ctx context.Context, path string) ([]git.Stash, error)
}

var _ VCS = (*git.Client)(nil)

// Lister enumerates named worktrees. *registry.Registry implements it.
type Lister interface {
	List(ctx context.Context) ([]worktree.Worktree, error)
}

// Doctor checks one repository.
type Doctor struct {
	vcs     VCS
	repo    string
	stores  []config.Store
	history *history.Tracker
	lister  Lister
}

// Option configures a Doctor.
type Option func(*Doctor)

// WithStores adds config records to validate. Nil stores are skipped.
func WithStores(stores ...config.Store) Option {
	return func(d *Doctor) {
		for _, s := range stores {
			if s != nil {
				d.stores = append(d.stores, s)
			}
		}
	}
}

// WithHistory enables the previous-pointer check. lister supplies the
// worktree names the pointer may refer to.
func WithHistory(t *history.Tracker, lister Lister) Option {
	return func(d *Doctor) {
		d.history = t
		d.lister = lister
	}
}

// New creates a Doctor. repo is the main worktree path.
func New(vcs VCS, repo string, opts ...Option) *Doctor {
	d := &Doctor{vcs: vcs, repo: repo}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Check runs every diagnostic and returns the issues found, grouped by
// category in a stable order.
func (d *Doctor) Check(ctx context.Context) ([]Issue, error) {
	issues := d.checkConfig()

	gitIssues, err := d.checkWorktrees(ctx)
	if err != nil {
		return nil, err
	}
	issues = append(issues, gitIssues...)

	stashIssues, err := d.checkStashes(ctx)
	if err != nil {
		return nil, err
	}
	issues = append(issues, stashIssues...)

	prevIssues, err := d.checkPrevious(ctx)
	if err != nil {
		return nil, err
	}
	return append(issues, prevIssues...), nil
}
