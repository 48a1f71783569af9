// Package scan provides discovery of HTML documents under the input root.
// It walks the tree breadth-first through an explicit queue rather than
// recursion, keeping traversal logic separate from document parsing.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/gaurav-prasanna/mdforge/core/source"
)

// Discover returns the input-relative path of every HTML document under
// the tree root, sorted lexically so downstream processing order is
// deterministic.
func Discover(tree *source.Tree) ([]string, error) {
	queue := newDirQueue()

	rootKey, err := filepath.EvalSymlinks(tree.Root())
	if err != nil {
		return nil, fmt.Errorf("scan: resolve root: %w", err)
	}
	queue.Add(".", rootKey)

	var docs []string
	for queue.HasNext() {
		rel := queue.Next()

		abs, err := tree.Resolve(rel)
		if err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, fmt.Errorf("scan: read dir %s: %w", rel, err)
		}

		for _, entry := range entries {
			child := path.Join(rel, entry.Name())
			if entry.IsDir() || entry.Type()&os.ModeSymlink != 0 {
				resolved, err := filepath.EvalSymlinks(filepath.Join(abs, entry.Name()))
				if err != nil {
					slog.Warn("skipping unresolvable entry", "path", child, "error", err)
					continue
				}
				info, err := os.Stat(resolved)
				if err != nil || !info.IsDir() {
					if err == nil && info.Mode().IsRegular() && IsHTMLPath(child) {
						docs = append(docs, child)
					}
					continue
				}
				if !queue.Add(child, resolved) {
					slog.Warn("cyclic directory structure, not recursing", "path", child)
				}
				continue
			}
			if IsHTMLPath(entry.Name()) {
				docs = append(docs, child)
			}
		}
	}

	sort.Strings(docs)
	return docs, nil
}
