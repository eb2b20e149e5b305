package syscallmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHeaderPath(t *testing.T) {
	got := HeaderPath("/usr/src/linux-headers-4.4.0-67-generic")
	want := filepath.Join("/usr/src/linux-headers-4.4.0-67-generic", "include", "linux", "syscalls.h")
	if got != want {
		t.Errorf("HeaderPath() = %q, want %q", got, want)
	}
}

func TestLoadFromHeaders(t *testing.T) {
	calls, err := LoadFromHeaders("testdata/linux-headers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 22 {
		t.Fatalf("expected 22 syscalls, got %d", len(calls))
	}
	if calls[0].Name != "time" {
		t.Errorf("first syscall = %q, want time", calls[0].Name)
	}
}

func TestLoadFromHeadersMissing(t *testing.T) {
	_, err := LoadFromHeaders(t.TempDir())
	if !errors.Is(err, ErrHeaderNotFound) {
		t.Fatalf("expected ErrHeaderNotFound, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the cause to be kept, got %v", err)
	}
}

func TestOpenHeaderDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(HeaderPath(root), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := OpenHeader(root)
	if !errors.Is(err, ErrHeaderNotFound) {
		t.Fatalf("expected ErrHeaderNotFound, got %v", err)
	}
}

func TestLoadFromHeadersParseError(t *testing.T) {
	root := t.TempDir()
	path := HeaderPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("asmlinkage long sys_foo(int a, int b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	calls, err := LoadFromHeaders(root)
	if !errors.Is(err, ErrUnterminatedDeclaration) {
		t.Fatalf("expected ErrUnterminatedDeclaration, got %v", err)
	}
	if calls != nil {
		t.Errorf("expected no syscalls, got %+v", calls)
	}
}
