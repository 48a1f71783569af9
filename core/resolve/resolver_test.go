package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/mdforge/core"
	"github.com/gaurav-prasanna/mdforge/core/extract"
	"github.com/gaurav-prasanna/mdforge/core/graph"
	"github.com/gaurav-prasanna/mdforge/core/registry"
	"github.com/gaurav-prasanna/mdforge/core/source"
)

func buildGraph(t *testing.T, dir string) (*graph.Graph, *source.Tree, *core.Report) {
	t.Helper()
	tree, err := source.New(dir)
	require.NoError(t, err)
	report := &core.Report{}
	g, err := graph.Build(tree, extract.New(), false, report)
	require.NoError(t, err)
	return g, tree, report
}

func write(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, content, 0o644))
}

func TestResolveDeduplicatesIdenticalImages(t *testing.T) {
	dir := t.TempDir()
	logo := []byte("identical image bytes")
	write(t, dir, "docs/a.html",
		[]byte(`<html><body><img src="../images/logo.PNG"></body></html>`))
	write(t, dir, "docs/sub/b.html",
		[]byte(`<html><body><img src="./logo.png"></body></html>`))
	write(t, dir, "images/logo.PNG", logo)
	write(t, dir, "docs/sub/logo.png", logo)

	g, tree, report := buildGraph(t, dir)
	reg := registry.New()
	New(tree, reg, "demo").Resolve(g, report)

	// One unique image, two references, both rewritten to the same
	// absolute canonical path.
	require.Equal(t, 1, reg.Len())
	require.Equal(t, 2, report.Stats.TotalReferences)
	require.Equal(t, 1, report.Stats.DuplicatesRemoved())

	a, _ := g.Lookup("docs/a.html")
	b, _ := g.Lookup("docs/sub/b.html")
	require.Equal(t, "/static/img/demo/logo.png", a.Refs[0].Resolved)
	require.Equal(t, a.Refs[0].Resolved, b.Refs[0].Resolved)

	src, _ := a.Content.Find("img").Attr("src")
	require.Equal(t, "/static/img/demo/logo.png", src)
}

func TestResolveCollidingNamesDistinctContent(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.html", []byte(`<html><body><img src="icons/a/star.png"></body></html>`))
	write(t, dir, "b.html", []byte(`<html><body><img src="icons/b/star.png"></body></html>`))
	write(t, dir, "icons/a/star.png", []byte("star variant A"))
	write(t, dir, "icons/b/star.png", []byte("star variant B"))

	g, tree, report := buildGraph(t, dir)
	reg := registry.New()
	New(tree, reg, "demo").Resolve(g, report)

	require.Equal(t, 2, reg.Len())
	a, _ := g.Lookup("a.html")
	b, _ := g.Lookup("b.html")
	require.Equal(t, "/static/img/demo/star.png", a.Refs[0].Resolved)
	require.NotEqual(t, a.Refs[0].Resolved, b.Refs[0].Resolved)
	require.Regexp(t, `^/static/img/demo/star_[0-9a-f]{8}\.png$`, b.Refs[0].Resolved)
}

func TestResolveBrokenImageIsRecoverable(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Page One.html",
		[]byte(`<html><body><p>text</p><img src="missing.png"></body></html>`))

	g, tree, report := buildGraph(t, dir)
	New(tree, registry.New(), "demo").Resolve(g, report)

	doc, _ := g.Lookup("Page One.html")
	require.Equal(t, "page_one.md", doc.OutputPath)
	require.True(t, doc.Refs[0].Broken)
	require.Len(t, report.Broken, 1)
	require.Equal(t, "missing.png", report.Broken[0].Raw)

	// The attribute keeps its raw value; the reference stays unresolved.
	src, _ := doc.Content.Find("img").Attr("src")
	require.Equal(t, "missing.png", src)
}

func TestResolveHyperlinks(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "docs/Guide One.html", []byte(
		`<html><body>
		 <a href="./Sub%20Dir/Other.html#install">other</a>
		 <a href="https://example.com/page">external</a>
		 <a href="#local">anchor</a>
		 <a href="gone.html">missing</a>
		 </body></html>`))
	write(t, dir, "docs/Sub Dir/Other.html", []byte(`<html><body><p>hi</p></body></html>`))

	g, tree, report := buildGraph(t, dir)
	New(tree, registry.New(), "demo").Resolve(g, report)

	doc, _ := g.Lookup("docs/Guide One.html")
	require.Equal(t, "/docs/sub_dir/other.md#install", doc.Refs[0].Resolved)
	require.Equal(t, "https://example.com/page", doc.Refs[1].Resolved)
	require.Equal(t, "#local", doc.Refs[2].Resolved)
	require.True(t, doc.Refs[3].Broken)
	require.Len(t, report.Broken, 1)
}

func TestResolveImageHyperlink(t *testing.T) {
	dir := t.TempDir()
	photo := []byte("full resolution bytes")
	write(t, dir, "gallery.html",
		[]byte(`<html><body><img src="thumbs/photo.png"></body></html>`))
	write(t, dir, "index.html",
		[]byte(`<html><body><a href="shots/Big%20Photo.png">full size</a></body></html>`))
	write(t, dir, "thumbs/photo.png", photo)
	write(t, dir, "shots/Big Photo.png", photo)

	g, tree, report := buildGraph(t, dir)
	reg := registry.New()
	New(tree, reg, "demo").Resolve(g, report)

	// A hyperlink to an image goes through the registry like an <img>
	// reference: it lands in the image namespace, where the materializer
	// writes it, instead of at a path nothing produces.
	idx, _ := g.Lookup("index.html")
	require.False(t, idx.Refs[0].Broken)
	require.Equal(t, "/static/img/demo/photo.png", idx.Refs[0].Resolved)
	href, _ := idx.Content.Find("a").Attr("href")
	require.Equal(t, "/static/img/demo/photo.png", href)

	// Identical bytes behind the link and the <img>: one registry entry.
	require.Equal(t, 1, reg.Len())
	require.Equal(t, 2, report.Stats.TotalReferences)
	require.True(t, report.Clean())
}

func TestResolveReportsOutputCollisions(t *testing.T) {
	dir := t.TempDir()
	page := []byte(`<html><body><p>text</p></body></html>`)
	write(t, dir, "Page One.html", page)
	write(t, dir, "page_one.html", page)
	write(t, dir, "unique.html", page)

	g, tree, report := buildGraph(t, dir)
	New(tree, registry.New(), "demo").Resolve(g, report)

	// Both sources normalize to page_one.md; emitting one would silently
	// overwrite the other, so the clash is reported.
	require.Len(t, report.Collisions, 1)
	require.Equal(t, "page_one.md", report.Collisions[0].Output)
	require.Equal(t, []string{"Page One.html", "page_one.html"}, report.Collisions[0].Sources)
	require.False(t, report.Clean())
}

func TestResolveLinkToCopiedFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "index.html", []byte(`<html><body><a href="Files/Read Me.pdf">pdf</a></body></html>`))
	write(t, dir, "Files/Read Me.pdf", []byte("%PDF"))

	g, tree, report := buildGraph(t, dir)
	New(tree, registry.New(), "demo").Resolve(g, report)

	doc, _ := g.Lookup("index.html")
	require.Equal(t, "/files/read_me.pdf", doc.Refs[0].Resolved)
	require.True(t, report.Clean())
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		rel, project, want string
	}{
		{"docs/Page One.html", "demo", "docs/page_one.md"},
		{"intro.HTM", "demo", "intro.md"},
		{"Demo/guide.html", "demo", "guide.md"},       // project dir collapsed
		{"guide/Guide/x.html", "demo", "guide/x.md"},  // consecutive duplicate collapsed
		{"other/page.html", "demo", "other/page.md"},
	}
	for _, c := range cases {
		if got := OutputPath(c.rel, c.project); got != c.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", c.rel, c.project, got, c.want)
		}
	}
}
