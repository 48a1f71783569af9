// Package core defines the pipeline interfaces and shared types for mdforge.
// Each stage of the conversion is a clean, testable interface.
package core

import "github.com/PuerkitoBio/goquery"

// Extractor pulls the main content out of a raw HTML page, stripping
// navigation and other noise while keeping images and links intact.
type Extractor interface {
	// Extract returns the main-content fragment and the page title.
	Extract(html []byte) (*goquery.Document, string, error)
}

// Normalizer converts a resolved HTML fragment into Markdown
// (the canonical output format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts Markdown (and document metadata) into a final
// output format.
type Renderer interface {
	Render(markdown string, meta DocumentMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// DocumentMeta holds per-document metadata passed to renderers.
type DocumentMeta struct {
	SourcePath string // input-relative path of the original HTML file
	OutputPath string // output-relative path of the emitted file
	Title      string // page title, may be empty
}
