package emit

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/mdforge/core/errs"
	"github.com/gaurav-prasanna/mdforge/core/resolve"
	"github.com/gaurav-prasanna/mdforge/core/scan"
	"github.com/gaurav-prasanna/mdforge/core/source"
)

// CopyAux copies every file that is neither an HTML document nor an image
// from the input tree into the output tree, structure preserved and paths
// normalized. Images are deliberately excluded: they are materialized from
// the registry instead.
func (e *Emitter) CopyAux(tree *source.Tree, project string) error {
	return filepath.WalkDir(tree.Root(), func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(tree.Root(), p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if scan.IsHTMLPath(rel) || scan.IsImagePath(rel) {
			return nil
		}

		data, err := tree.Read(rel)
		if err != nil {
			return err
		}
		out := filepath.Join(e.outputRoot, filepath.FromSlash(resolve.AuxPath(rel, project)))
		slog.Debug("copying file", "from", rel, "to", out)
		return writeFile(out, data)
	})
}

// Overwritable reports whether the output root may be written to: either
// it does not exist yet, it is empty, or force is set.
func Overwritable(outputRoot string, force bool) (bool, error) {
	entries, err := os.ReadDir(outputRoot)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, &errs.WriteError{Path: outputRoot, Err: err}
	}
	return force || len(entries) == 0, nil
}
