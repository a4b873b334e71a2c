package git

import "context"

// Client runs git operations for one repository. Repo may be any path inside
// it; repository-wide commands run there, worktree-scoped ones take the
// worktree path explicitly.
type Client struct {
	Repo string
}

// NewClient returns a client for the repository containing repo.
func NewClient(repo string) *Client {
	return &Client{Repo: repo}
}

func (c *Client) ListWorktrees(ctx context.Context) ([]WorktreeInfo, error) {
	return ListWorktrees(ctx, c.Repo)
}

func (c *Client) AddWorktreeNewBranch(ctx context.Context, path, branch, base string) error {
	return AddWorktreeNewBranch(ctx, c.Repo, path, branch, base)
}

func (c *Client) AddDetachedWorktree(ctx context.Context, path, ref string) error {
	return AddDetachedWorktree(ctx, c.Repo, path, ref)
}

func (c *Client) RemoveWorktree(ctx context.Context, path string, force bool) error {
	return RemoveWorktree(ctx, c.Repo, path, force)
}

func (c *Client) PruneWorktrees(ctx context.Context) error {
	return PruneWorktrees(ctx, c.Repo)
}

// RepairWorktrees rewrites the administrative links of the given worktrees,
// or of all of them when paths is empty.
func (c *Client) RepairWorktrees(ctx context.Context, paths ...string) error {
	return RepairWorktrees(ctx, c.Repo, paths...)
}

// WorktreeName returns the persisted name of the worktree at path.
func (c *Client) WorktreeName(ctx context.Context, path string) (string, bool, error) {
	return GetWorktreeConfig(ctx, path, WorktreeNameKey)
}

// SetWorktreeName persists name for the worktree at path, enabling
// per-worktree config for the repository first if needed.
func (c *Client) SetWorktreeName(ctx context.Context, path, name string) error {
	if err := EnableWorktreeConfig(ctx, c.Repo); err != nil {
		return err
	}
	return SetWorktreeConfig(ctx, path, WorktreeNameKey, name)
}

func (c *Client) BranchExists(ctx context.Context, branch string) (bool, error) {
	return BranchExists(ctx, c.Repo, branch)
}

func (c *Client) RemoteBranchExists(ctx context.Context, remote, branch string) (bool, error) {
	return RemoteBranchExists(ctx, c.Repo, remote, branch)
}

func (c *Client) SetBranchPushTarget(ctx context.Context, branch, remote, remoteBranch string) error {
	return SetBranchPushTarget(ctx, c.Repo, branch, remote, remoteBranch)
}

func (c *Client) BranchUpstream(ctx context.Context, branch string) (string, string, bool, error) {
	return GetBranchUpstream(ctx, c.Repo, branch)
}

func (c *Client) DeleteBranch(ctx context.Context, branch string, force bool) error {
	return DeleteLocalBranch(ctx, c.Repo, branch, force)
}

func (c *Client) UnpushedCount(ctx context.Context, branch string) (int, error) {
	return UnpushedCount(ctx, c.Repo, branch)
}

func (c *Client) MergedBranches(ctx context.Context, ref string) (map[string]bool, error) {
	return GetMergedBranches(ctx, c.Repo, ref)
}

func (c *Client) DefaultBranch(ctx context.Context) string {
	return GetDefaultBranch(ctx, c.Repo)
}

func (c *Client) StatusFiles(ctx context.Context, path string) ([]string, error) {
	return StatusFiles(ctx, path)
}

func (c *Client) IsDirty(ctx context.Context, path string) (bool, error) {
	return IsDirty(ctx, path)
}

func (c *Client) HeadCommit(ctx context.Context, path string) (string, error) {
	return HeadCommit(ctx, path)
}

func (c *Client) Upstream(ctx context.Context, path string) (string, bool, error) {
	return GetUpstream(ctx, path)
}

func (c *Client) AheadBehind(ctx context.Context, path, upstream string) (int, int, error) {
	return AheadBehind(ctx, path, upstream)
}

func (c *Client) StashPush(ctx context.Context, path, label string) (bool, error) {
	return StashPush(ctx, path, label)
}

func (c *Client) FindStash(ctx context.Context, path, label string) (string, bool, error) {
	return FindStash(ctx, path, label)
}

func (c *Client) ListStashes(ctx context.Context, path string) ([]Stash, error) {
	return ListStashes(ctx, path)
}

func (c *Client) StashPop(ctx context.Context, path, ref string) error {
	return StashPop(ctx, path, ref)
}

func (c *Client) Pull(ctx context.Context, path string) error {
	return Pull(ctx, path)
}

func (c *Client) Fetch(ctx context.Context, path, remote, refspec string) error {
	return Fetch(ctx, path, remote, refspec)
}

func (c *Client) Rebase(ctx context.Context, path, onto string) error {
	return Rebase(ctx, path, onto)
}

func (c *Client) AbortRebase(ctx context.Context, path string) error {
	return AbortRebase(ctx, path)
}

func (c *Client) RebaseInProgress(ctx context.Context, path string) bool {
	return RebaseInProgress(ctx, path)
}
