// Package extract implements the Extractor interface.
// It isolates the main content from a full HTML page by:
//  1. Finding the best content container (div[role=main], <main>,
//     <article>, or <body>)
//  2. Removing noise elements (nav, scripts, chrome)
//
// Unlike a plain-text pipeline, images and links are kept: they carry the
// references the resolver rewrites later.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before extraction. They carry
// site chrome, not document content.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"iframe", "form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", "#navigation", "#nav", "#header", "#footer",
}

// containerSelectors are tried in priority order. Docs-site generators
// mark the content region with role=main; <main> and <article> are the
// semantic fallbacks, <body> the last resort.
var containerSelectors = []string{
	`div[role="main"]`, "main", "article", "body",
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses raw HTML and returns the main content as a document of
// its own, along with the page title. The returned document is freshly
// parsed from the container fragment, so the caller owns it exclusively.
func (e *HTMLExtractor) Extract(html []byte) (*goquery.Document, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, "", fmt.Errorf("parsing HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, sel := range containerSelectors {
		found := doc.Find(sel)
		if found.Length() > 0 {
			content = found.First()
			break
		}
	}
	if content == nil {
		return nil, "", fmt.Errorf("no content container found in HTML")
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, "", fmt.Errorf("serializing content: %w", err)
	}

	owned, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, "", fmt.Errorf("reparsing content: %w", err)
	}
	return owned, title, nil
}
