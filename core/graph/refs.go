// Reference walking over the parsed content tree. Both the build pass
// (collect raw references) and the resolve pass (rewrite them) use the
// same walk, so reference indices always line up between the two.
package graph

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/mdforge/core"
)

// SetRef overwrites the attribute value of the reference being visited.
type SetRef func(value string)

// VisitRefs walks the content tree in document order and invokes fn for
// every <img src> and <a href> with a non-empty value. fn receives the raw
// value and a setter that rewrites it in place.
func VisitRefs(doc *goquery.Document, fn func(kind core.RefKind, raw string, set SetRef)) {
	for _, root := range doc.Nodes {
		visit(root, fn)
	}
}

func visit(n *html.Node, fn func(core.RefKind, string, SetRef)) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			visitAttr(n, "src", core.KindImage, fn)
		case "a":
			visitAttr(n, "href", core.KindLink, fn)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visit(c, fn)
	}
}

func visitAttr(n *html.Node, attr string, kind core.RefKind, fn func(core.RefKind, string, SetRef)) {
	for i := range n.Attr {
		if n.Attr[i].Key != attr || n.Attr[i].Val == "" {
			continue
		}
		i := i
		fn(kind, n.Attr[i].Val, func(value string) {
			n.Attr[i].Val = value
		})
		return
	}
}
