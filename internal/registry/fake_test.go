package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/resolve"
)

// parseTarget parses token and fails the test on error.
func parseTarget(t *testing.T, token string) resolve.Target {
	t.Helper()
	target, err := resolve.Parse(token)
	require.NoError(t, err)
	return target
}

// fakeVCS is an in-memory VCS. Only the state a test sets up exists.
type fakeVCS struct {
	worktrees []git.WorktreeInfo
	names     map[string]string   // path -> wt.name
	files     map[string][]string // path -> status lines
	unpushed  map[string]int      // branch -> count
	branches  map[string]bool
	remotes   map[string]bool // "origin/branch"
	upstreams map[string][2]string
	merged    map[string]bool

	removed       []string
	deleted       map[string]bool // branch -> forced
	pruned        int
	pushTargets   map[string]string
	bases         map[string]string // path -> start point
	listErr       error
	deleteBranchE error
}

func newFakeVCS(wts ...git.WorktreeInfo) *fakeVCS {
	return &fakeVCS{
		worktrees:   wts,
		names:       map[string]string{},
		files:       map[string][]string{},
		unpushed:    map[string]int{},
		branches:    map[string]bool{},
		remotes:     map[string]bool{},
		upstreams:   map[string][2]string{},
		merged:      map[string]bool{},
		deleted:     map[string]bool{},
		pushTargets: map[string]string{},
		bases:       map[string]string{},
	}
}

func (f *fakeVCS) ListWorktrees(context.Context) ([]git.WorktreeInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]git.WorktreeInfo(nil), f.worktrees...), nil
}

func (f *fakeVCS) AddWorktreeNewBranch(_ context.Context, path, branch, base string) error {
	f.branches[branch] = true
	f.bases[path] = base
	f.worktrees = append(f.worktrees, git.WorktreeInfo{Path: path, Branch: branch, Head: "feedfacefeedfacefeedfacefeedfacefeedface"})
	return nil
}

func (f *fakeVCS) AddDetachedWorktree(_ context.Context, path, ref string) error {
	f.bases[path] = ref
	f.worktrees = append(f.worktrees, git.WorktreeInfo{Path: path, Detached: true, Head: "feedfacefeedfacefeedfacefeedfacefeedface"})
	return nil
}

func (f *fakeVCS) RemoveWorktree(_ context.Context, path string, _ bool) error {
	for i, wt := range f.worktrees {
		if wt.Path == path {
			f.worktrees = append(f.worktrees[:i], f.worktrees[i+1:]...)
			f.removed = append(f.removed, path)
			return nil
		}
	}
	return errors.New("not a worktree: " + path)
}

func (f *fakeVCS) PruneWorktrees(context.Context) error {
	f.pruned++
	return nil
}

func (f *fakeVCS) WorktreeName(_ context.Context, path string) (string, bool, error) {
	name, ok := f.names[path]
	return name, ok, nil
}

func (f *fakeVCS) SetWorktreeName(_ context.Context, path, name string) error {
	f.names[path] = name
	return nil
}

func (f *fakeVCS) BranchExists(_ context.Context, branch string) (bool, error) {
	return f.branches[branch], nil
}

func (f *fakeVCS) RemoteBranchExists(_ context.Context, remote, branch string) (bool, error) {
	return f.remotes[remote+"/"+branch], nil
}

func (f *fakeVCS) SetBranchPushTarget(_ context.Context, branch, remote, remoteBranch string) error {
	f.pushTargets[branch] = remote + "/" + remoteBranch
	return nil
}

func (f *fakeVCS) BranchUpstream(_ context.Context, branch string) (string, string, bool, error) {
	up, ok := f.upstreams[branch]
	return up[0], up[1], ok, nil
}

func (f *fakeVCS) DeleteBranch(_ context.Context, branch string, force bool) error {
	if f.deleteBranchE != nil {
		return f.deleteBranchE
	}
	f.deleted[branch] = force
	delete(f.branches, branch)
	return nil
}

func (f *fakeVCS) UnpushedCount(_ context.Context, branch string) (int, error) {
	return f.unpushed[branch], nil
}

func (f *fakeVCS) MergedBranches(context.Context, string) (map[string]bool, error) {
	return f.merged, nil
}

func (f *fakeVCS) DefaultBranch(context.Context) string {
	return "main"
}

func (f *fakeVCS) StatusFiles(_ context.Context, path string) ([]string, error) {
	return f.files[path], nil
}

func (f *fakeVCS) Upstream(_ context.Context, path string) (string, bool, error) {
	for _, wt := range f.worktrees {
		if wt.Path == path {
			if up, ok := f.upstreams[wt.Branch]; ok {
				return up[0] + "/" + up[1], true, nil
			}
		}
	}
	return "", false, nil
}

func (f *fakeVCS) AheadBehind(context.Context, string, string) (int, int, error) {
	return 2, 1, nil
}
