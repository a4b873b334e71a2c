package lock

import (
	"errors"
	"os"
	"testing"
)

func TestTryAcquire(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l, err := TryAcquire(dir)
	if err != nil {
		t.Fatalf("TryAcquire() error = %v", err)
	}

	if _, err := os.Stat(Path(dir)); err != nil {
		t.Errorf("lock file should exist: %v", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
}

func TestTryAcquire_Held(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first, err := TryAcquire(dir)
	if err != nil {
		t.Fatalf("first TryAcquire() error = %v", err)
	}

	if _, err := TryAcquire(dir); !errors.Is(err, ErrHeld) {
		t.Fatalf("second TryAcquire() error = %v, want ErrHeld", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	again, err := TryAcquire(dir)
	if err != nil {
		t.Fatalf("TryAcquire() after release error = %v", err)
	}
	_ = again.Release()
}

func TestRelease_Nil(t *testing.T) {
	t.Parallel()

	var l *Lock
	if err := l.Release(); err != nil {
		t.Errorf("Release() on nil lock = %v, want nil", err)
	}
}
