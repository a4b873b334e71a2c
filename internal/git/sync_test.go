package git

import (
	"context"
	"errors"
	"testing"
)

func TestPull_FastForward(t *testing.T) {
	t.Parallel()

	repoPath, originPath := setupTestRepoWithOrigin(t)
	ctx := context.Background()

	other := cloneOrigin(t, originPath)
	commitFile(t, other, "remote.txt", "from elsewhere\n", "remote work")
	if err := runGit(ctx, other, "push", "origin", "main"); err != nil {
		t.Fatalf("failed to push: %v", err)
	}
	want, _ := HeadCommit(ctx, other)

	if err := Pull(ctx, repoPath); err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	got, _ := HeadCommit(ctx, repoPath)
	if got != want {
		t.Errorf("HEAD after pull = %s, want %s", got, want)
	}

	// A second pull is a no-op
	if err := Pull(ctx, repoPath); err != nil {
		t.Fatalf("second Pull failed: %v", err)
	}
}

func TestPull_Diverged(t *testing.T) {
	t.Parallel()

	repoPath, originPath := setupTestRepoWithOrigin(t)
	ctx := context.Background()

	other := cloneOrigin(t, originPath)
	commitFile(t, other, "remote.txt", "theirs\n", "remote work")
	if err := runGit(ctx, other, "push", "origin", "main"); err != nil {
		t.Fatalf("failed to push: %v", err)
	}
	commitFile(t, repoPath, "local.txt", "ours\n", "local work")
	before, _ := HeadCommit(ctx, repoPath)

	err := Pull(ctx, repoPath)
	if !errors.Is(err, ErrDiverged) {
		t.Fatalf("Pull error = %v, want ErrDiverged", err)
	}
	var gitErr *Error
	if !errors.As(err, &gitErr) {
		t.Error("diverged error should still carry the git error")
	}

	after, _ := HeadCommit(ctx, repoPath)
	if after != before {
		t.Error("failed pull must not move HEAD")
	}
}

func TestPull_NoRemoteRef(t *testing.T) {
	t.Parallel()

	repoPath, _ := setupTestRepoWithOrigin(t)
	ctx := context.Background()

	if err := runGit(ctx, repoPath, "checkout", "-b", "feature/unpushed"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	if err := SetBranchPushTarget(ctx, repoPath, "feature/unpushed", "origin", ""); err != nil {
		t.Fatalf("SetBranchPushTarget failed: %v", err)
	}

	if err := Pull(ctx, repoPath); !errors.Is(err, ErrNoRemoteRef) {
		t.Fatalf("Pull error = %v, want ErrNoRemoteRef", err)
	}
}

func TestRebase(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx := context.Background()

	if err := runGit(ctx, repoPath, "checkout", "-b", "topic"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	commitFile(t, repoPath, "topic.txt", "topic\n", "topic work")
	if err := runGit(ctx, repoPath, "checkout", "main"); err != nil {
		t.Fatal(err)
	}
	commitFile(t, repoPath, "main.txt", "main\n", "main work")
	mainHead, _ := HeadCommit(ctx, repoPath)
	if err := runGit(ctx, repoPath, "checkout", "topic"); err != nil {
		t.Fatal(err)
	}

	if err := Rebase(ctx, repoPath, "main"); err != nil {
		t.Fatalf("Rebase failed: %v", err)
	}
	out, err := outputGit(ctx, repoPath, "merge-base", "--is-ancestor", mainHead, "HEAD")
	if err != nil {
		t.Errorf("main should be an ancestor after rebase: %v %s", err, out)
	}
}

func TestRebase_ConflictAbort(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx := context.Background()

	if err := runGit(ctx, repoPath, "checkout", "-b", "topic"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	commitFile(t, repoPath, "README.md", "topic version\n", "topic edit")
	topicHead, _ := HeadCommit(ctx, repoPath)
	if err := runGit(ctx, repoPath, "checkout", "main"); err != nil {
		t.Fatal(err)
	}
	commitFile(t, repoPath, "README.md", "main version\n", "main edit")
	if err := runGit(ctx, repoPath, "checkout", "topic"); err != nil {
		t.Fatal(err)
	}

	if RebaseInProgress(ctx, repoPath) {
		t.Fatal("no rebase should be in progress yet")
	}
	if err := Rebase(ctx, repoPath, "main"); err == nil {
		t.Fatal("conflicting rebase should fail")
	}
	if !RebaseInProgress(ctx, repoPath) {
		t.Fatal("stopped rebase should be detected")
	}

	if err := AbortRebase(ctx, repoPath); err != nil {
		t.Fatalf("AbortRebase failed: %v", err)
	}
	if RebaseInProgress(ctx, repoPath) {
		t.Error("rebase should be gone after abort")
	}
	if head, _ := HeadCommit(ctx, repoPath); head != topicHead {
		t.Errorf("HEAD after abort = %s, want %s", head, topicHead)
	}
}
