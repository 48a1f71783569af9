// Package graph builds the in-memory representation of the whole tree
// being converted: one Document per source HTML file, each holding its
// extracted content and the raw asset references found in it, in document
// order, before any resolution happens.
package graph

import (
	"log/slog"

	"github.com/gaurav-prasanna/mdforge/core"
	"github.com/gaurav-prasanna/mdforge/core/errs"
	"github.com/gaurav-prasanna/mdforge/core/scan"
	"github.com/gaurav-prasanna/mdforge/core/source"
)

// Graph owns every Document for the lifetime of one conversion run.
// Documents are ordered by source path, which fixes the deterministic
// processing order the resolver depends on.
type Graph struct {
	Documents []*core.Document
	byPath    map[string]*core.Document
}

// Lookup returns the document discovered at the given input-relative path.
func (g *Graph) Lookup(rel string) (*core.Document, bool) {
	d, ok := g.byPath[rel]
	return d, ok
}

// Build discovers every HTML file under the tree root, extracts its main
// content, and records raw image and hyperlink references. A document that
// cannot be parsed is skipped and recorded in the report, unless failFast
// is set.
func Build(tree *source.Tree, extractor core.Extractor, failFast bool, report *core.Report) (*Graph, error) {
	paths, err := scan.Discover(tree)
	if err != nil {
		return nil, err
	}

	g := &Graph{byPath: make(map[string]*core.Document, len(paths))}
	for _, rel := range paths {
		doc, err := load(tree, extractor, rel)
		if err != nil {
			if failFast {
				return nil, err
			}
			slog.Warn("skipping document", "path", rel, "error", err)
			report.AddSkipped(rel, err)
			continue
		}
		g.Documents = append(g.Documents, doc)
		g.byPath[rel] = doc
	}
	return g, nil
}

func load(tree *source.Tree, extractor core.Extractor, rel string) (*core.Document, error) {
	data, err := tree.Read(rel)
	if err != nil {
		return nil, &errs.UnreadableDocumentError{Path: rel, Err: err}
	}
	content, title, err := extractor.Extract(data)
	if err != nil {
		return nil, &errs.UnreadableDocumentError{Path: rel, Err: err}
	}

	doc := &core.Document{
		SourcePath: rel,
		Title:      title,
		Content:    content,
	}
	VisitRefs(content, func(kind core.RefKind, raw string, _ SetRef) {
		doc.Refs = append(doc.Refs, core.Reference{Raw: raw, Kind: kind})
	})
	return doc, nil
}
