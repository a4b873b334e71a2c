// Package resolve parses worktree tokens given on the command line.
//
// Tokens are parsed once, at the command boundary, into a [Target]: one of
// the special symbols or a literal name. Everything downstream (the
// registry, delete, run, sync) works on the parsed value.
//
// # Symbols
//
//   - "default" or "^": the configured default_worktree, else the main worktree
//   - "previous" or "-": the worktree active before the last switch
//
// Any other token is a literal worktree name. Because the symbols are
// reserved, no worktree can be created under one of these names.
package resolve
