// Package render — Markdown renderer.
// Markdown is already the canonical pipeline format, so this renderer only
// applies final polish: title promotion and whitespace cleanup.
package render

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/mdforge/core"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// MarkdownRenderer produces the final .md file content.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render polishes the converted Markdown: if the page had a title and the
// content doesn't open with a heading, the title is promoted to an H1;
// runs of blank lines collapse to one; output ends with a single newline.
func (r *MarkdownRenderer) Render(markdown string, meta core.DocumentMeta) ([]byte, error) {
	out := strings.TrimSpace(markdown)
	if meta.Title != "" && !strings.HasPrefix(out, "#") {
		out = "# " + meta.Title + "\n\n" + out
	}
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return []byte(out + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
