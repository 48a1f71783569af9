// Package resolve walks the document graph and rewrites every reference
// to its final absolute canonical path: images through the dedup registry,
// hyperlinks to the corresponding output document. This is the only writer
// of the registry.
package resolve

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/mdforge/core"
	"github.com/gaurav-prasanna/mdforge/core/fingerprint"
	"github.com/gaurav-prasanna/mdforge/core/graph"
	"github.com/gaurav-prasanna/mdforge/core/pathnorm"
	"github.com/gaurav-prasanna/mdforge/core/registry"
	"github.com/gaurav-prasanna/mdforge/core/scan"
	"github.com/gaurav-prasanna/mdforge/core/source"
)

// ImageNamespace is the output-relative directory images are centralized
// under; the per-project directory lives below it.
const ImageNamespace = "static/img"

// Resolver rewrites references across a document graph.
type Resolver struct {
	tree    *source.Tree
	reg     *registry.Registry
	project string
}

// New creates a Resolver. The registry must be exclusively owned by this
// resolver for the duration of the run.
func New(tree *source.Tree, reg *registry.Registry, project string) *Resolver {
	return &Resolver{tree: tree, reg: reg, project: pathnorm.Name(project)}
}

// Resolve processes every reference of every document in a stable order:
// documents sorted by original path, references in document order. The
// ordering decides which original filename wins when identical images
// carry different names, and nothing else; the unique-image set is
// order-independent because registration is idempotent per fingerprint.
func (r *Resolver) Resolve(g *graph.Graph, report *core.Report) {
	// Output paths first: hyperlink rewriting needs the target document's
	// final location regardless of processing order.
	byOutput := make(map[string][]string)
	for _, doc := range g.Documents {
		doc.OutputPath = OutputPath(doc.SourcePath, r.project)
		byOutput[doc.OutputPath] = append(byOutput[doc.OutputPath], doc.SourcePath)
	}
	reportCollisions(byOutput, report)

	for _, doc := range g.Documents {
		r.resolveDocument(g, doc, report)
	}
	report.Stats.UniqueImages = r.reg.Len()
}

func (r *Resolver) resolveDocument(g *graph.Graph, doc *core.Document, report *core.Report) {
	i := 0
	graph.VisitRefs(doc.Content, func(kind core.RefKind, raw string, set graph.SetRef) {
		ref := &doc.Refs[i]
		i++

		if scan.IsExternalURL(raw) || scan.IsSpecialLink(raw) {
			ref.Resolved = raw
			return
		}

		pathPart, anchor := scan.SplitAnchor(decode(raw))
		rel, ok := r.targetPath(doc, pathPart)
		if !ok {
			markBroken(ref, doc, report)
			return
		}

		var resolved string
		if kind == core.KindImage || scan.IsImagePath(rel) {
			// Hyperlinks to images go through the registry too: the
			// target must land in the image namespace, not dangle at a
			// path nothing writes.
			resolved, ok = r.resolveImage(doc, rel, pathPart)
			if ok {
				report.Stats.TotalReferences++
			}
		} else {
			resolved, ok = r.resolveLink(g, rel)
			resolved += anchor
		}
		if !ok {
			markBroken(ref, doc, report)
			return
		}
		ref.Resolved = resolved
		set(resolved)
	})
}

// resolveImage reads the referenced bytes, registers them, and returns the
// absolute canonical path inside the image namespace.
func (r *Resolver) resolveImage(doc *core.Document, rel, pathPart string) (string, bool) {
	data, err := r.tree.Read(rel)
	if err != nil {
		return "", false
	}
	fp := fingerprint.Sum(data)
	dest := r.reg.Register(fp, path.Base(pathPart), rel, int64(len(data)), doc.SourcePath)
	return canonical(path.Join(ImageNamespace, r.project, dest))
}

// resolveLink points an internal hyperlink at the corresponding output
// document's absolute path. A target that is in the tree but is not an
// HTML document is a file copied through unchanged, so the link follows
// its normalized location instead.
func (r *Resolver) resolveLink(g *graph.Graph, rel string) (string, bool) {
	if target, ok := g.Lookup(rel); ok {
		return canonical(target.OutputPath)
	}
	if !r.tree.Exists(rel) {
		return "", false
	}
	if scan.IsHTMLPath(rel) {
		// Present on disk but not in the graph: a document skipped as
		// unreadable. Its output location is still deterministic.
		return canonical(OutputPath(rel, r.project))
	}
	return canonical(AuxPath(rel, r.project))
}

// canonical roots an output-relative path at "/", the absolute canonical
// form every rewritten reference takes. Every resolved path funnels through
// here, so none can escape the output root.
func canonical(rel string) (string, bool) {
	p, err := pathnorm.Normalize(rel, "/")
	if err != nil {
		return "", false
	}
	return p, true
}

// reportCollisions surfaces distinct source documents whose canonical
// output paths coincide; emitting would silently overwrite one with the
// other.
func reportCollisions(byOutput map[string][]string, report *core.Report) {
	outputs := make([]string, 0, len(byOutput))
	for out, sources := range byOutput {
		if len(sources) > 1 {
			outputs = append(outputs, out)
		}
	}
	sort.Strings(outputs)
	for _, out := range outputs {
		report.AddCollision(out, byOutput[out])
	}
}

// targetPath maps a reference's path part to an input-relative path.
// A leading slash is absolute from the input root; anything else is
// relative to the referencing document.
func (r *Resolver) targetPath(doc *core.Document, pathPart string) (string, bool) {
	if pathPart == "" {
		return "", false
	}
	var rel string
	if strings.HasPrefix(pathPart, "/") {
		rel = path.Clean(strings.TrimPrefix(pathPart, "/"))
	} else {
		rel = path.Join(path.Dir(doc.SourcePath), pathPart)
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		// Cannot be resolved under the input root: treated as broken.
		return "", false
	}
	return rel, true
}

func markBroken(ref *core.Reference, doc *core.Document, report *core.Report) {
	ref.Broken = true
	report.AddBroken(doc.SourcePath, ref.Raw, ref.Kind)
}

// decode undoes percent-encoding; docs generators routinely emit
// "Page%20One.html" style references.
func decode(ref string) string {
	decoded, err := url.PathUnescape(ref)
	if err != nil {
		return ref
	}
	return decoded
}

// OutputPath maps an input-relative source path to its output-relative
// Markdown path: canonical segments, duplicated leading project directory
// collapsed, extension rewritten to .md.
func OutputPath(rel, project string) string {
	n := collapseLeading(pathnorm.Rel(rel), pathnorm.Name(project))
	switch strings.ToLower(path.Ext(n)) {
	case ".html":
		n = n[:len(n)-len(".html")] + ".md"
	case ".htm":
		n = n[:len(n)-len(".htm")] + ".md"
	}
	return n
}

// AuxPath maps a non-document, non-image file to its output-relative
// location. Such files are copied through unchanged, structure preserved.
func AuxPath(rel, project string) string {
	return collapseLeading(pathnorm.Rel(rel), pathnorm.Name(project))
}

// collapseLeading drops a redundant leading directory: docs generators
// commonly nest a project under a directory of the same name
// (Product/Product/...), which would otherwise be duplicated in output.
func collapseLeading(rel, project string) string {
	segs := strings.Split(rel, "/")
	if len(segs) > 1 && (segs[0] == project || segs[0] == segs[1]) {
		return strings.Join(segs[1:], "/")
	}
	return rel
}
