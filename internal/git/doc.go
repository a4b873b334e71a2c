// Package git provides git operations for wt.
//
// Mutating operations and anything that depends on the user's git setup
// (credential helpers, hooks, aliases, per-worktree config) shell out to the
// git CLI through [github.com/wtkit/wt/internal/cmd]. Failures surface as
// [*Error], whose message is git's stderr. Read-only ref lookups
// ([BranchExists], [RemoteBranchExists]) go through go-git
// and fall back to the CLI when go-git cannot open the repository.
//
// # Worktree Operations
//
//   - [ListWorktrees]: Enumerate worktrees, main first
//   - [AddWorktreeNewBranch], [AddDetachedWorktree]: Create worktrees
//   - [RemoveWorktree], [PruneWorktrees], [RepairWorktrees]: Remove or repair worktree metadata
//   - [GetWorktreeConfig], [SetWorktreeConfig]: Per-worktree config (wt.name)
//
// # Synchronization
//
//   - [StashPush], [FindStash], [ListStashes], [StashPop]: Labelled stash entries
//   - [Pull]: Fast-forward only; classifies [ErrDiverged] and [ErrNoRemoteRef]
//   - [Rebase], [AbortRebase], [RebaseInProgress]
//
// [Client] bundles these for a single repository and is the adapter used by
// the registry and the sync engine.
package git
