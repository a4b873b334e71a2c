// Package hooks runs the post_create command after a worktree is created.
//
// The command comes from the post_create setting and runs through sh with
// the new worktree as working directory. Its output goes to stderr, since
// stdout carries the worktree path for the shell wrapper. A failing hook is
// reported but never undoes the worktree.
//
// # Placeholder Substitution
//
// Placeholders are replaced by shell-quoted values:
//
//   - {name}: worktree name
//   - {path}: absolute worktree path
//   - {branch}: branch name, empty for detached worktrees
//   - {repo}: repository folder name
//   - {main}: main worktree path
//
// Custom variables come from `wt create --arg key=value`:
//
//   - {key}: shell-quoted value
//   - {key:raw}: value used as is
//   - {key:-default}: value with a fallback when the key was not given
//
// Example config:
//
//	post_create = "cp {main}/.tool-versions {path} && make -C {path} deps"
package hooks
