package core

import "github.com/PuerkitoBio/goquery"

// RefKind distinguishes the two reference types rewritten by the resolver.
type RefKind string

const (
	KindImage RefKind = "image"
	KindLink  RefKind = "link"
)

// Reference is a single asset reference found in a document. Raw is the
// path exactly as written in the source HTML; Resolved is filled in by the
// resolver with the absolute canonical path, or left equal to Raw for
// external and special links.
type Reference struct {
	Raw      string
	Resolved string
	Kind     RefKind
	Broken   bool
}

// Document is one source HTML file in the conversion run. Content is the
// extracted main-content fragment, exclusively owned by this document and
// mutated in place by the resolver when references are rewritten.
type Document struct {
	SourcePath string // input-relative path, as discovered
	OutputPath string // output-relative normalized .md path
	Title      string
	Content    *goquery.Document
	Refs       []Reference
}
