package assets

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gaurav-prasanna/mdforge/core/registry"
)

// Collect removes every file under the image namespace that the registry
// does not claim, then prunes directories left empty anywhere under the
// output root. "Unreferenced" here is strictly disk-vs-registry: a
// registered destination is never deleted, even if no document happens to
// reference it. Returns the number of files removed; running it again
// removes nothing.
func Collect(outputRoot, nsDir string, reg *registry.Registry) (int, error) {
	removed, err := sweepNamespace(nsDir, reg)
	if err != nil {
		return removed, err
	}
	if err := pruneEmptyDirs(outputRoot); err != nil {
		return removed, err
	}
	return removed, nil
}

func sweepNamespace(nsDir string, reg *registry.Registry) (int, error) {
	expected := make(map[string]bool)
	for _, dest := range reg.Destinations() {
		expected[dest] = true
	}

	removed := 0
	err := filepath.WalkDir(nsDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return filepath.SkipAll
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(nsDir, p)
		if err != nil {
			return err
		}
		if expected[filepath.ToSlash(rel)] {
			return nil
		}
		slog.Info("removing unreferenced image", "path", rel)
		if err := os.Remove(p); err != nil {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

// pruneEmptyDirs removes empty directories bottom-up. The root itself is
// kept.
func pruneEmptyDirs(root string) error {
	var dirs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return filepath.SkipAll
			}
			return walkErr
		}
		if d.IsDir() && p != root {
			dirs = append(dirs, p)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Deepest first, so a chain of empty directories collapses in one pass.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err == nil {
			slog.Debug("removed empty directory", "path", dir)
		}
	}
	return nil
}
