package editor

import (
	"fmt"
	"os"
	"path/filepath"
)

// Preview is the on-disk render copy backing a staged image. It is owned
// exclusively by its StagedImage and must be released exactly once: by the
// operation that removes the image from the store, or by store disposal.
// Release is guarded so the second path hitting an already-released handle
// is a no-op.
type Preview struct {
	path     string
	released bool
}

// newPreview writes data to a fresh temp file under dir and returns the
// handle. dir may be empty to use the system temp directory.
func newPreview(dir, name string, data []byte) (*Preview, error) {
	pattern := "preview-*" + filepath.Ext(name)
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("create preview file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("write preview file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("close preview file: %w", err)
	}
	return &Preview{path: f.Name()}, nil
}

// Path returns the preview file location, or "" once released.
func (p *Preview) Path() string {
	if p == nil || p.released {
		return ""
	}
	return p.path
}

// Released reports whether the handle has been released.
func (p *Preview) Released() bool {
	return p == nil || p.released
}

// Release removes the preview file. Safe to call more than once.
func (p *Preview) Release() error {
	if p == nil || p.released {
		return nil
	}
	p.released = true
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove preview file: %w", err)
	}
	return nil
}
