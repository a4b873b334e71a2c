package history

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wtkit/wt/internal/log"
)

func TestFileStore_Unset(t *testing.T) {
	t.Parallel()

	tr := New(NewFileStore(t.TempDir()))
	if name, ok := tr.Get(context.Background()); ok {
		t.Errorf("Get() = %q, want unset", name)
	}
}

func TestFileStore_RecordAndGet(t *testing.T) {
	t.Parallel()

	commonDir := t.TempDir()
	store := NewFileStore(commonDir)
	tr := New(store)
	ctx := context.Background()

	if err := tr.Record(ctx, "alpha"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if store.Path() != filepath.Join(commonDir, "wt", FileName) {
		t.Errorf("Path = %q", store.Path())
	}

	// A fresh tracker on the same directory sees the value
	name, ok := New(NewFileStore(commonDir)).Get(ctx)
	if !ok || name != "alpha" {
		t.Errorf("Get() = (%q, %v), want (alpha, true)", name, ok)
	}
}

func TestTracker_SingleValue(t *testing.T) {
	t.Parallel()

	tr := New(NewMemoryStore())
	ctx := context.Background()

	for _, name := range []string{"alpha", "beta", "main"} {
		if err := tr.Record(ctx, name); err != nil {
			t.Fatalf("Record(%q) failed: %v", name, err)
		}
	}
	if name, _ := tr.Get(ctx); name != "main" {
		t.Errorf("Get() = %q, want the last recorded name", name)
	}
}

func TestTracker_RecordEmptyIgnored(t *testing.T) {
	t.Parallel()

	tr := New(NewMemoryStore())
	ctx := context.Background()

	if err := tr.Record(ctx, "alpha"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Record(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if name, _ := tr.Get(ctx); name != "alpha" {
		t.Errorf("Get() = %q, want alpha", name)
	}
}

func TestFileStore_CorruptTreatedAsUnset(t *testing.T) {
	t.Parallel()

	commonDir := t.TempDir()
	store := NewFileStore(commonDir)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))
	if name, ok := New(store).Get(ctx); ok {
		t.Errorf("Get() = %q, want unset for a corrupt file", name)
	}
	if !strings.Contains(buf.String(), "ignoring unreadable previous pointer") {
		t.Errorf("expected debug line, got %q", buf.String())
	}

	// Recording over a corrupt file repairs it
	if err := New(store).Record(ctx, "beta"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if name, ok := New(store).Get(ctx); !ok || name != "beta" {
		t.Errorf("Get() = (%q, %v), want beta", name, ok)
	}
}

func TestTracker_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	commonDir := t.TempDir()
	tr := New(NewFileStore(commonDir))

	// Clearing an unset pointer is fine
	if err := tr.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty store failed: %v", err)
	}
	if err := tr.Record(ctx, "alpha"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if name, ok := tr.Get(ctx); ok {
		t.Errorf("Get() after Clear = %q, want unset", name)
	}
	if _, err := os.Stat(filepath.Join(commonDir, "wt", FileName)); !os.IsNotExist(err) {
		t.Errorf("pointer file should be removed, stat err = %v", err)
	}
}
