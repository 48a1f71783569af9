// Package emit writes converted documents to the output tree. Each
// document write is independent: a failure aborts the run without
// corrupting documents already written.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/mdforge/core"
	"github.com/gaurav-prasanna/mdforge/core/errs"
)

// Emitter renders resolved documents and writes them under the output root.
type Emitter struct {
	outputRoot string
	normalizer core.Normalizer
	renderers  []core.Renderer
}

// New creates an Emitter. At least one renderer is required; the first is
// considered the canonical one (Markdown), any others produce companion
// outputs alongside it.
func New(outputRoot string, normalizer core.Normalizer, renderers ...core.Renderer) (*Emitter, error) {
	if len(renderers) == 0 {
		return nil, fmt.Errorf("emit: no renderers configured")
	}
	abs, err := filepath.Abs(outputRoot)
	if err != nil {
		return nil, fmt.Errorf("emit: resolve output root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("emit: create output root: %w", err)
	}
	return &Emitter{outputRoot: abs, normalizer: normalizer, renderers: renderers}, nil
}

// Emit converts one resolved document and writes every configured output
// format to the document's normalized output path.
func (e *Emitter) Emit(doc *core.Document) error {
	html, err := contentHTML(doc)
	if err != nil {
		return fmt.Errorf("emit %s: %w", doc.SourcePath, err)
	}
	markdown, err := e.normalizer.Normalize(html)
	if err != nil {
		return fmt.Errorf("emit %s: %w", doc.SourcePath, err)
	}

	meta := core.DocumentMeta{
		SourcePath: doc.SourcePath,
		OutputPath: doc.OutputPath,
		Title:      doc.Title,
	}
	for _, renderer := range e.renderers {
		data, err := renderer.Render(markdown, meta)
		if err != nil {
			return fmt.Errorf("emit %s: %w", doc.SourcePath, err)
		}
		out := e.targetPath(doc.OutputPath, renderer.Extension())
		if err := writeFile(out, data); err != nil {
			return err
		}
	}
	return nil
}

// targetPath swaps the .md extension of the canonical output path for the
// renderer's own.
func (e *Emitter) targetPath(outputPath, ext string) string {
	rel := strings.TrimSuffix(outputPath, ".md") + ext
	return filepath.Join(e.outputRoot, filepath.FromSlash(rel))
}

// contentHTML serializes the document's resolved content fragment.
func contentHTML(doc *core.Document) (string, error) {
	body := doc.Content.Find("body")
	if body.Length() > 0 {
		return body.Html()
	}
	return doc.Content.Html()
}

// writeFile creates parent directories and writes data; failures are
// fatal for the run.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &errs.WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &errs.WriteError{Path: path, Err: err}
	}
	return nil
}
