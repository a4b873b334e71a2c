// Package doctor diagnoses and repairs the state wt and git keep for a
// repository.
//
// The checks cover:
//
//   - Config: global or repo-local records that do not parse or hold values
//     Resolve would drop.
//
//   - Git links: worktree metadata whose directory is gone (prunable) and
//     worktrees whose .git link points nowhere after a manual move
//     (repairable).
//
//   - State: sync stashes that were never restored, and a previous pointer
//     naming a worktree that no longer exists.
//
// # Usage
//
//	d := doctor.New(client, mainPath,
//		doctor.WithStores(global, local),
//		doctor.WithHistory(tracker, reg))
//	issues, err := d.Check(ctx)
//	fixed, err := d.Fix(ctx, issues)
//
// Only issues with a [Issue.FixAction] are touched by Fix. Stashes are never
// dropped; their issues carry a manual hint instead.
package doctor
