// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Every execution is traced through the context logger (see
// [log.Logger.Command]), and failures come back as [*Error] carrying the
// captured stderr and exit status.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, dir, "git", "worktree", "list", "--porcelain")
//	if err != nil {
//	    // err.Error() is git's stderr, verbatim
//	    return fmt.Errorf("list worktrees: %w", err)
//	}
//
// # Design Notes
//
// wt shells out to the git CLI for every mutation so user configuration
// (hooks, credential helpers, SSH keys) applies exactly as it would on the
// command line.
package cmd
