package git

import (
	"context"
	"fmt"
	"strings"
)

// StashPush shelves tracked and untracked changes under label.
// Returns false when there was nothing to stash.
func StashPush(ctx context.Context, path, label string) (bool, error) {
	if err := runGit(ctx, path, "stash", "push", "-u", "-m", label); err != nil {
		return false, fmt.Errorf("failed to stash changes: %w", err)
	}
	// A clean tree exits 0 without creating an entry
	_, found, err := FindStash(ctx, path, label)
	if err != nil {
		return false, err
	}
	return found, nil
}

// Stash is one entry of `git stash list`.
type Stash struct {
	Ref     string // stash@{n}
	Subject string // "On <branch>: <message>"
}

// Label returns the message part of the subject.
func (s Stash) Label() string {
	if _, label, ok := strings.Cut(s.Subject, ": "); ok {
		return label
	}
	return s.Subject
}

// ListStashes returns the stash entries of the repository, newest first.
func ListStashes(ctx context.Context, path string) ([]Stash, error) {
	output, err := outputGit(ctx, path, "stash", "list", "--format=%gd%x00%gs")
	if err != nil {
		return nil, fmt.Errorf("failed to list stashes: %w", err)
	}
	var stashes []Stash
	for _, line := range strings.Split(string(output), "\n") {
		ref, subject, ok := strings.Cut(line, "\x00")
		if !ok {
			continue
		}
		stashes = append(stashes, Stash{Ref: ref, Subject: subject})
	}
	return stashes, nil
}

// FindStash returns the stash ref (stash@{n}) whose message is label.
// The stash is shared by all worktrees of a repository, so labels must be
// unique across them.
func FindStash(ctx context.Context, path, label string) (string, bool, error) {
	stashes, err := ListStashes(ctx, path)
	if err != nil {
		return "", false, err
	}
	for _, s := range stashes {
		// subject is "On <branch>: <label>" or "On (no branch): <label>"
		if s.Subject == label || strings.HasSuffix(s.Subject, ": "+label) {
			return s.Ref, true, nil
		}
	}
	return "", false, nil
}

// StashPop applies ref and removes it from the stash list.
// Git keeps the entry when applying it conflicts.
func StashPop(ctx context.Context, path, ref string) error {
	args := []string{"stash", "pop"}
	if ref != "" {
		args = append(args, ref)
	}
	if err := runGit(ctx, path, args...); err != nil {
		return fmt.Errorf("failed to pop stash: %w", err)
	}
	return nil
}
