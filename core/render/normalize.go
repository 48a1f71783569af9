// Package render converts resolved documents into their final output
// formats. The normalizer in this file turns the rewritten HTML fragment
// into Markdown, the canonical format; markdown.go and pdf.go hold the
// renderers applied on top of it.
package render

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// MarkdownNormalizer converts HTML fragments to Markdown. Emphasis uses
// underscores, matching the convention of the docs pipelines this output
// feeds into.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// NewNormalizer creates a MarkdownNormalizer.
func NewNormalizer() *MarkdownNormalizer {
	return &MarkdownNormalizer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithEmDelimiter("_"),
					commonmark.WithStrongDelimiter("__"),
				),
			),
		),
	}
}

// Normalize converts a resolved HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
