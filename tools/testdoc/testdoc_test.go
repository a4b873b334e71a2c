package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTest = `package wt

import "testing"

// TestSync_LockHeld tests that a second sync is refused.
//
// Scenario: Another process holds the sync lock
// Expected: Exit code 1 and the lock holder
// is named
func TestSync_LockHeld(t *testing.T) {}

func TestSplitRunArgs(t *testing.T) {
	for _, tt := range []string{"a"} {
		t.Run(tt, func(t *testing.T) {})
	}
}

func helper(t *testing.T) {}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestParseTestFiles(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"cmd/wt/sync_test.go":        sampleTest,
		"internal/lock/lock_test.go": "package lock\n\nimport \"testing\"\n\nfunc TestTryAcquire(t *testing.T) {}\n",
		"_examples/x/x_test.go":      "package x\n\nimport \"testing\"\n\nfunc TestIgnored(t *testing.T) {}\n",
		"cmd/wt/main.go":             "package main\n",
	})

	packages, err := ParseTestFiles(root, "")
	if err != nil {
		t.Fatalf("ParseTestFiles failed: %v", err)
	}
	if len(packages) != 2 || packages[0].Name != "cmd/wt" || packages[1].Name != "internal/lock" {
		t.Fatalf("packages = %+v, want cmd/wt and internal/lock", packages)
	}

	tests := packages[0].Files[0].Tests
	if len(tests) != 2 {
		t.Fatalf("got %d tests, want 2 (helpers excluded)", len(tests))
	}
	if tests[0].IsTable || !tests[1].IsTable {
		t.Errorf("table detection wrong: %+v", tests)
	}

	filtered, err := ParseTestFiles(root, "internal/")
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 || filtered[0].Name != "internal/lock" {
		t.Errorf("prefix filter = %+v", filtered)
	}
}

func TestExtractCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"TestSync_LockHeld", "wt sync"},
		{"TestShellInit", "wt shell-init"},
		{"TestSplitRunArgs", "wt run"},
		{"TestHelper_Unknown", "helper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractCommand(tt.name); got != tt.want {
				t.Errorf("extractCommand(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseDoc(t *testing.T) {
	t.Parallel()

	doc := "TestSync_LockHeld tests that a second sync is refused.\n\nScenario: Another process holds the sync lock\nExpected: Exit code 1 and the lock holder\nis named"
	d := parseDoc(doc, "TestSync_LockHeld")

	if d.Description != "Tests that a second sync is refused." {
		t.Errorf("Description = %q", d.Description)
	}
	if d.Scenario != "Another process holds the sync lock" {
		t.Errorf("Scenario = %q", d.Scenario)
	}
	if d.Expected != "Exit code 1 and the lock holder is named" {
		t.Errorf("Expected = %q", d.Expected)
	}

	if empty := parseDoc("", "TestX"); empty != (testDoc{}) {
		t.Errorf("parseDoc(\"\") = %+v, want zero", empty)
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"cmd/wt/sync_test.go":        sampleTest,
		"internal/lock/lock_test.go": "package lock\n\nimport \"testing\"\n\n// TestTryAcquire tests locking.\nfunc TestTryAcquire(t *testing.T) {}\n",
	})
	packages, err := ParseTestFiles(root, "")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, packages); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"| [wt run](#wt-run) | 1 |",
		"| [wt sync](#wt-sync) | 1 |",
		"| [internal/lock](#internallock) | 1 |",
		"| **Total** | **3** |",
		"| `TestSplitRunArgs (table)` | _No documentation_ |",
		"| `TestSync_LockHeld` | Tests that a second sync is refused. | Another process holds the sync lock |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Commands are listed before packages
	if strings.Index(out, "## wt sync") > strings.Index(out, "## internal/lock") {
		t.Error("command sections should precede package sections")
	}
}
