package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wtkit/wt/internal/cmd"
	"github.com/wtkit/wt/internal/config"
)

// setupTestRepo creates <tmp>/app with one commit on main.
// Returns the repo path with symlinks resolved (macOS /var -> /private/var).
func setupTestRepo(t *testing.T) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	repo := filepath.Join(root, "app")

	gitRun(t, "", "init", "-b", "main", repo)
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		gitRun(t, repo, args...)
	}
	commitFile(t, repo, "README.md", "# app\n", "Initial commit")
	return repo
}

// gitRun runs git in dir and fails the test on error.
func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	if _, err := cmd.OutputContext(context.Background(), dir, "git", args...); err != nil {
		t.Fatalf("git %s: %v", strings.Join(args, " "), err)
	}
}

// commitFile writes and commits a file in dir.
func commitFile(t *testing.T, dir, name, content, msg string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	gitRun(t, dir, "add", name)
	gitRun(t, dir, "commit", "-m", msg)
}

// testGlobalConfig returns an in-memory global config using the local main
// branch as base, since test repos have no remote.
func testGlobalConfig() *config.MemoryStore {
	return config.NewMemoryStore([]byte("default_base = \"main\"\n"))
}

// result is the outcome of one wt invocation.
type result struct {
	stdout string
	stderr string
	code   int
}

// runWT executes wt with args from dir against the given global config.
func runWT(t *testing.T, dir string, global config.Store, args ...string) result {
	t.Helper()

	ctx := config.WithWorkDir(context.Background(), dir)
	ctx = config.WithGlobalStore(ctx, global)

	var stdout, stderr bytes.Buffer
	code := run(ctx, newRootCmd(nil), args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// mustRunWT is runWT that fails the test on a non-zero exit code.
func mustRunWT(t *testing.T, dir string, global config.Store, args ...string) result {
	t.Helper()
	res := runWT(t, dir, global, args...)
	if res.code != 0 {
		t.Fatalf("wt %s exited %d\nstdout: %s\nstderr: %s", strings.Join(args, " "), res.code, res.stdout, res.stderr)
	}
	return res
}

// worktreePath is where the default path pattern puts worktree name of repo.
func worktreePath(repo, name string) string {
	return filepath.Join(filepath.Dir(repo), filepath.Base(repo)+"-"+name)
}

// writeFile writes content to dir/name without committing it.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
