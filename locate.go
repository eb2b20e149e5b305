package syscallmd

import (
	"fmt"
	"os"
	"path/filepath"
)

// HeaderPath returns where syscalls.h lives under a kernel headers tree, e.g.
// /usr/src/linux-headers-6.1.0.
func HeaderPath(root string) string {
	return filepath.Join(root, "include", "linux", "syscalls.h")
}

// OpenHeader opens the syscalls.h under root. A missing or unreadable file is
// reported as ErrHeaderNotFound.
func OpenHeader(root string) (*os.File, error) {
	path := HeaderPath(root)
	if err := checkReadable(path); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrHeaderNotFound, path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrHeaderNotFound, path, err)
	}
	return f, nil
}

// LoadFromHeaders parses the syscalls.h under a kernel headers tree.
func LoadFromHeaders(root string, opts ...SyscallParserOpt) ([]SystemCall, error) {
	f, err := OpenHeader(root)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	calls, err := NewSyscallParser(opts...).Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", f.Name(), err)
	}
	return calls, nil
}
