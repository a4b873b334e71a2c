package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// configureTestRepo sets git user config and disables GPG signing.
func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	ctx := context.Background()
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}
}

// setupTestRepo creates a git repo with main branch, initial commit, and git config.
// Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir := resolveTempDir(t)
	repoPath := filepath.Join(tmpDir, "test-repo")

	ctx := context.Background()
	if err := runGit(ctx, "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	configureTestRepo(t, repoPath)

	// Create initial commit
	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return repoPath
}

// assertContains checks that all wanted items exist in the got slice.
func assertContains(t *testing.T, got []string, want ...string) {
	t.Helper()
	set := make(map[string]bool, len(got))
	for _, s := range got {
		set[s] = true
	}
	for _, w := range want {
		if !set[w] {
			t.Errorf("missing %q in %v", w, got)
		}
	}
}

// setupTestRepoWithOrigin creates a repo with a bare origin remote.
// Returns (repoPath, originPath).
func setupTestRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := resolveTempDir(t)

	originPath := filepath.Join(tmpDir, "origin.git")
	repoPath := filepath.Join(tmpDir, "repo")

	ctx := context.Background()

	// Create bare origin (-b main ensures consistent default branch across git versions)
	if err := runGit(ctx, "", "init", "--bare", "-b", "main", originPath); err != nil {
		t.Fatalf("failed to init bare repo: %v", err)
	}

	// Clone from bare origin
	if err := runGit(ctx, "", "clone", originPath, repoPath); err != nil {
		t.Fatalf("failed to clone: %v", err)
	}

	configureTestRepo(t, repoPath)

	// Create initial commit and push
	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	if err := runGit(ctx, repoPath, "push", "-u", "origin", "HEAD"); err != nil {
		t.Fatalf("failed to push: %v", err)
	}

	return repoPath, originPath
}

// commitFile writes content to name inside dir and commits it.
func commitFile(t *testing.T, dir, name, content, msg string) {
	t.Helper()
	ctx := context.Background()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	if err := runGit(ctx, dir, "add", name); err != nil {
		t.Fatalf("failed to add %s: %v", name, err)
	}
	if err := runGit(ctx, dir, "commit", "-m", msg); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

// cloneOrigin makes a second clone of origin, standing in for another
// developer pushing to the shared remote.
func cloneOrigin(t *testing.T, originPath string) string {
	t.Helper()
	clonePath := filepath.Join(filepath.Dir(originPath), "other")
	if err := runGit(context.Background(), "", "clone", originPath, clonePath); err != nil {
		t.Fatalf("failed to clone: %v", err)
	}
	configureTestRepo(t, clonePath)
	return clonePath
}

func TestGetDefaultBranch(t *testing.T) {
	t.Parallel()

	repoPath, _ := setupTestRepoWithOrigin(t)
	if got := GetDefaultBranch(context.Background(), repoPath); got != "main" {
		t.Errorf("GetDefaultBranch = %q, want main", got)
	}
}

func TestHeadCommitAndShortHash(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	head, err := HeadCommit(context.Background(), repoPath)
	if err != nil {
		t.Fatalf("HeadCommit failed: %v", err)
	}
	if len(head) != 40 {
		t.Errorf("HeadCommit = %q, want a 40 character hash", head)
	}
	if got := ShortHash(head); got != head[:7] {
		t.Errorf("ShortHash = %q, want %q", got, head[:7])
	}
	if got := ShortHash("abc"); got != "abc" {
		t.Errorf("ShortHash(short) = %q, want abc", got)
	}
}

func TestStatusFilesAndIsDirty(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx := context.Background()

	dirty, err := IsDirty(ctx, repoPath)
	if err != nil {
		t.Fatalf("IsDirty failed: %v", err)
	}
	if dirty {
		t.Error("fresh repo should be clean")
	}

	if err := os.WriteFile(filepath.Join(repoPath, "new.txt"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# changed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := StatusFiles(ctx, repoPath)
	if err != nil {
		t.Fatalf("StatusFiles failed: %v", err)
	}
	assertContains(t, files, "?? new.txt", " M README.md")

	dirty, err = IsDirty(ctx, repoPath)
	if err != nil {
		t.Fatalf("IsDirty failed: %v", err)
	}
	if !dirty {
		t.Error("untracked and modified files should make the tree dirty")
	}
}

func TestGetUpstream(t *testing.T) {
	t.Parallel()

	repoPath, _ := setupTestRepoWithOrigin(t)
	ctx := context.Background()

	upstream, ok, err := GetUpstream(ctx, repoPath)
	if err != nil {
		t.Fatalf("GetUpstream failed: %v", err)
	}
	if !ok || upstream != "origin/main" {
		t.Errorf("GetUpstream = (%q, %v), want (origin/main, true)", upstream, ok)
	}

	if err := runGit(ctx, repoPath, "checkout", "-b", "local-only"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	_, ok, err = GetUpstream(ctx, repoPath)
	if err != nil {
		t.Fatalf("GetUpstream (no upstream) failed: %v", err)
	}
	if ok {
		t.Error("branch without upstream should report ok=false")
	}
}

func TestGetBranchUpstream(t *testing.T) {
	t.Parallel()

	repoPath, _ := setupTestRepoWithOrigin(t)
	ctx := context.Background()

	remote, branch, ok, err := GetBranchUpstream(ctx, repoPath, "main")
	if err != nil {
		t.Fatalf("GetBranchUpstream failed: %v", err)
	}
	if !ok || remote != "origin" || branch != "main" {
		t.Errorf("GetBranchUpstream = (%q, %q, %v), want (origin, main, true)", remote, branch, ok)
	}

	if err := runGit(ctx, repoPath, "branch", "loose"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	_, _, ok, err = GetBranchUpstream(ctx, repoPath, "loose")
	if err != nil || ok {
		t.Errorf("GetBranchUpstream(loose) = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}

func TestAheadBehind(t *testing.T) {
	t.Parallel()

	repoPath, _ := setupTestRepoWithOrigin(t)
	ctx := context.Background()

	commitFile(t, repoPath, "a.txt", "a\n", "local one")
	commitFile(t, repoPath, "b.txt", "b\n", "local two")

	ahead, behind, err := AheadBehind(ctx, repoPath, "origin/main")
	if err != nil {
		t.Fatalf("AheadBehind failed: %v", err)
	}
	if ahead != 2 || behind != 0 {
		t.Errorf("AheadBehind = (%d, %d), want (2, 0)", ahead, behind)
	}
}

func TestUnpushedCount(t *testing.T) {
	t.Parallel()

	repoPath, _ := setupTestRepoWithOrigin(t)
	ctx := context.Background()

	if err := runGit(ctx, repoPath, "checkout", "-b", "feature/x"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	commitFile(t, repoPath, "x.txt", "x\n", "work")

	n, err := UnpushedCount(ctx, repoPath, "feature/x")
	if err != nil {
		t.Fatalf("UnpushedCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("UnpushedCount = %d, want 1", n)
	}

	n, err = UnpushedCount(ctx, repoPath, "main")
	if err != nil {
		t.Fatalf("UnpushedCount(main) failed: %v", err)
	}
	if n != 0 {
		t.Errorf("UnpushedCount(main) = %d, want 0", n)
	}
}

func TestUnpushedCount_NoRemote(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx := context.Background()

	// Commits shared with main are not lost by deleting the branch
	if err := runGit(ctx, repoPath, "branch", "feature/fresh"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	n, err := UnpushedCount(ctx, repoPath, "feature/fresh")
	if err != nil {
		t.Fatalf("UnpushedCount failed: %v", err)
	}
	if n != 0 {
		t.Errorf("UnpushedCount = %d, want 0", n)
	}
}

func TestGetMergedBranches(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx := context.Background()

	if err := runGit(ctx, repoPath, "branch", "done"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	if err := runGit(ctx, repoPath, "checkout", "-b", "wip"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	commitFile(t, repoPath, "wip.txt", "wip\n", "wip")

	merged, err := GetMergedBranches(ctx, repoPath, "main")
	if err != nil {
		t.Fatalf("GetMergedBranches failed: %v", err)
	}
	if !merged["done"] || !merged["main"] {
		t.Errorf("expected done and main to be merged, got %v", merged)
	}
	if merged["wip"] {
		t.Error("wip has its own commit and should not be merged")
	}
}

func TestDeleteLocalBranch(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx := context.Background()

	if err := runGit(ctx, repoPath, "checkout", "-b", "unmerged"); err != nil {
		t.Fatalf("failed to create branch: %v", err)
	}
	commitFile(t, repoPath, "u.txt", "u\n", "unmerged work")
	if err := runGit(ctx, repoPath, "checkout", "main"); err != nil {
		t.Fatalf("failed to checkout main: %v", err)
	}

	if err := DeleteLocalBranch(ctx, repoPath, "unmerged", false); err == nil {
		t.Fatal("safe delete of an unmerged branch should fail")
	}
	if err := DeleteLocalBranch(ctx, repoPath, "unmerged", true); err != nil {
		t.Fatalf("forced delete failed: %v", err)
	}
	exists, err := BranchExists(ctx, repoPath, "unmerged")
	if err != nil {
		t.Fatalf("BranchExists failed: %v", err)
	}
	if exists {
		t.Error("branch should be gone")
	}
}
