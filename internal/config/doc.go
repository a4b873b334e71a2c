// Package config resolves wt's settings.
//
// Settings live in a single TOML record. A missing or corrupt record is not
// an error: every absent field takes its default and a warning is logged.
//
// # Locations (later overrides earlier)
//
//   - Defaults
//   - Global: $WT_CONFIG_DIR/.wt.toml, or ~/.wt.toml when unset
//   - Repo-local: .wt.toml in the main worktree root
//
// # Keys
//
//   - prefix: branch prefix for new worktrees (default "feature")
//   - path_pattern: where worktrees are created, with {repo}, {name} and
//     {branch} placeholders (default "../{repo}-{name}")
//   - default_base: ref new branches start from and sync rebases onto
//     (default "origin/main")
//   - default_worktree: target of the "default" symbol (default: main worktree)
//   - post_create: shell command run inside each new worktree (default: none)
//   - preserve: comma-separated file name patterns; matching git-ignored
//     files are copied from the main worktree into new ones (default: none)
//
// # Writes
//
// [Set] and [Unset] rewrite the whole record atomically and preserve every
// other field, including ones wt does not know. Write failures surface as
// [worktree.ConfigError].
//
// Stores are injected through the [Store] interface; [MemoryStore] backs
// tests without touching the filesystem.
package config
