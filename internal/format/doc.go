// Package format validates worktree path patterns and sanitizes the values
// substituted into them.
//
// # Path Placeholders
//
//   - {repo}: folder name of the main worktree
//   - {name}: worktree name as given to create
//   - {branch}: full branch name (prefix included)
//
// The default pattern is "../{repo}-{name}", creating sibling folders like
// "myrepo-alpha".
//
// # Path Sanitization
//
// Substituted values are sanitized to form a single path component.
// Characters replaced with "-": / \ : * ? " < > |
//
// This ensures branches like "feature/my-branch" become "feature-my-branch"
// in the folder name.
package format
