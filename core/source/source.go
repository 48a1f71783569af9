// Package source provides rooted read access to the input document tree.
// Every read of input bytes goes through it, so directory-traversal
// attempts are rejected in one place.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/mdforge/core/errs"
)

// Tree is a directory tree rooted at an existing directory.
type Tree struct {
	root string // absolute
}

// New creates a Tree rooted at dir. The directory must already exist.
func New(dir string) (*Tree, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("source: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("source: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source: root is not a directory: %s", abs)
	}
	return &Tree{root: abs}, nil
}

// Root returns the absolute root directory.
func (t *Tree) Root() string { return t.root }

// Resolve maps a root-relative path to an absolute path, rejecting any
// result that escapes the root.
func (t *Tree) Resolve(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("source: %w: absolute path %s", errs.ErrPathEscapesRoot, rel)
	}
	abs := filepath.Join(t.root, cleaned)
	if abs != t.root && !strings.HasPrefix(abs, t.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("source: %w: %s", errs.ErrPathEscapesRoot, rel)
	}
	return abs, nil
}

// Read returns the raw bytes of a file under the root.
func (t *Tree) Read(rel string) ([]byte, error) {
	abs, err := t.Resolve(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", rel, err)
	}
	return data, nil
}

// Exists reports whether rel names a regular file under the root.
func (t *Tree) Exists(rel string) bool {
	abs, err := t.Resolve(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}
