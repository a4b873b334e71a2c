package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wtkit/wt/internal/config"
	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/lock"
)

// setupClones creates a bare origin with one commit on main and two clones
// of it, "repo" and "other". Returns the paths of the clones.
func setupClones(t *testing.T) (string, string) {
	t.Helper()

	seed := setupTestRepo(t)
	root := filepath.Dir(seed)
	origin := filepath.Join(root, "origin.git")
	gitRun(t, root, "clone", "--bare", seed, origin)

	var clones []string
	for _, name := range []string{"repo", "other"} {
		path := filepath.Join(root, name)
		gitRun(t, root, "clone", origin, path)
		gitRun(t, path, "config", "user.email", "test@test.com")
		gitRun(t, path, "config", "user.name", "Test User")
		gitRun(t, path, "config", "commit.gpgsign", "false")
		clones = append(clones, path)
	}
	return clones[0], clones[1]
}

type syncEntry struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Detail  string `json:"detail"`
	Stashed bool   `json:"stashed"`
}

func decodeSync(t *testing.T, out string) []syncEntry {
	t.Helper()
	var entries []syncEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	return entries
}

// TestSync_FastForwardKeepsLocalChanges tests syncing a dirty worktree.
//
// Scenario: origin/main moved ahead, the local main worktree has an
// uncommitted change
// Expected: main is fast-forwarded, the change is back and no stash is left
func TestSync_FastForwardKeepsLocalChanges(t *testing.T) {
	t.Parallel()

	repo, other := setupClones(t)
	global := config.NewMemoryStore(nil)

	commitFile(t, other, "upstream.txt", "from other\n", "Upstream change")
	gitRun(t, other, "push", "origin", "main")
	writeFile(t, repo, "README.md", "# local edit\n")

	res := mustRunWT(t, repo, global, "sync", "--format", "json")
	entries := decodeSync(t, res.stdout)
	if len(entries) != 1 || entries[0].Name != "main" || entries[0].Status != "fast_forwarded" || !entries[0].Stashed {
		t.Fatalf("results = %+v, want main fast_forwarded with stash", entries)
	}
	if !strings.Contains(res.stderr, "1 synced, 0 need attention") {
		t.Errorf("stderr = %q, want a summary", res.stderr)
	}

	dirty, err := git.IsDirty(t.Context(), repo)
	if err != nil || !dirty {
		t.Errorf("local change was not restored (dirty=%v, err=%v)", dirty, err)
	}

	res = mustRunWT(t, repo, global, "sync", "^")
	if !strings.Contains(res.stdout, "up_to_date") {
		t.Errorf("second sync table = %q, want up_to_date", res.stdout)
	}
}

// TestSync_DivergedNeedsAttention tests the exit status of a batch with a
// conflict.
//
// Scenario: main has a local commit and origin/main a different one; a
// second worktree has no upstream
// Expected: main reports conflict, the other worktree is skipped, exit 1
func TestSync_DivergedNeedsAttention(t *testing.T) {
	t.Parallel()

	repo, other := setupClones(t)
	global := config.NewMemoryStore(nil)
	mustRunWT(t, repo, global, "create", "auth", "--base", "main")

	commitFile(t, other, "upstream.txt", "from other\n", "Upstream change")
	gitRun(t, other, "push", "origin", "main")
	commitFile(t, repo, "local.txt", "local\n", "Local change")

	res := runWT(t, repo, global, "sync", "--all", "--format", "json")
	if res.code != exitcode.General {
		t.Fatalf("exit code = %d, want %d (stderr: %s)", res.code, exitcode.General, res.stderr)
	}
	entries := decodeSync(t, res.stdout)
	if len(entries) != 2 {
		t.Fatalf("got %d results, want 2", len(entries))
	}
	if entries[0].Name != "main" || entries[0].Status != "conflict" {
		t.Errorf("main = %+v, want conflict", entries[0])
	}
	if entries[1].Name != "auth" || entries[1].Status != "skipped" {
		t.Errorf("auth = %+v, want skipped", entries[1])
	}
	if strings.HasPrefix(res.stderr, "wt:") || strings.Contains(res.stderr, "\nwt:") {
		t.Errorf("stderr = %q, a reported batch failure needs no error line", res.stderr)
	}
}

func TestSync_UnknownNameTouchesNothing(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	res := runWT(t, repo, testGlobalConfig(), "sync", "main", "nope")
	if res.code != exitcode.NotFound {
		t.Errorf("exit code = %d, want %d", res.code, exitcode.NotFound)
	}
	if res.stdout != "" {
		t.Errorf("stdout = %q, nothing should have been synced", res.stdout)
	}
}

func TestSync_LockHeld(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	lk, err := lock.TryAcquire(filepath.Join(repo, ".git"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = lk.Release() })

	res := runWT(t, repo, testGlobalConfig(), "sync")
	if res.code != exitcode.General || !strings.Contains(res.stderr, "already running") {
		t.Errorf("exit %d, stderr %q: want the lock refusal", res.code, res.stderr)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	global := testGlobalConfig()
	mustRunWT(t, repo, global, "create", "auth")
	writeFile(t, worktreePath(repo, "auth"), "wip.txt", "wip\n")

	res := mustRunWT(t, repo, global, "status", "--format", "json")
	var statuses []struct {
		Worktree struct {
			Name string `json:"name"`
		} `json:"worktree"`
		Files []string `json:"files"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &statuses); err != nil {
		t.Fatalf("invalid JSON %q: %v", res.stdout, err)
	}
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}
	if statuses[1].Worktree.Name != "auth" || len(statuses[1].Files) != 1 {
		t.Errorf("auth status = %+v, want one changed file", statuses[1])
	}

	res = mustRunWT(t, repo, global, "status")
	if !strings.Contains(res.stdout, "1 file") || !strings.Contains(res.stdout, "clean") {
		t.Errorf("table = %q", res.stdout)
	}
}
