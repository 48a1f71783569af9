package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/mdforge/core"
	"github.com/gaurav-prasanna/mdforge/core/fingerprint"
	"github.com/gaurav-prasanna/mdforge/core/graph"
	"github.com/gaurav-prasanna/mdforge/core/registry"
)

func TestBuildAndRoundTrip(t *testing.T) {
	g := &graph.Graph{Documents: []*core.Document{
		{SourcePath: "docs/b.html", OutputPath: "docs/b.md", Title: "B"},
		{SourcePath: "docs/a.html", OutputPath: "docs/a.md", Title: "A",
			Refs: []core.Reference{
				{Raw: "img.png", Resolved: "/static/img/demo/img.png", Kind: core.KindImage},
				{Raw: "gone.png", Kind: core.KindImage, Broken: true},
			}},
	}}

	reg := registry.New()
	fp := fingerprint.Sum([]byte("img"))
	reg.Register(fp, "img.png", "images/img.png", 3, "docs/a.html")
	reg.Register(fp, "copy.png", "images/copy.png", 3, "docs/b.html")

	report := &core.Report{}
	report.Stats = core.DedupStats{TotalReferences: 2, UniqueImages: 1}
	report.AddBroken("docs/a.html", "gone.png", core.KindImage)
	report.AddCollision("docs/page.md", []string{"docs/Page.html", "docs/page.html"})

	m := Build("demo", g, reg, report)
	require.Equal(t, "demo", m.Project)
	require.Len(t, m.Documents, 2)
	// Sorted by source path regardless of graph order.
	require.Equal(t, "docs/a.html", m.Documents[0].Source)
	// Every reference of the page, resolved paths and broken flags intact,
	// so the output can be integrity-checked against the manifest alone.
	require.Equal(t, []Ref{
		{Raw: "img.png", Resolved: "/static/img/demo/img.png", Kind: "image"},
		{Raw: "gone.png", Kind: "image", Broken: true},
	}, m.Documents[0].Refs)
	require.Empty(t, m.Documents[1].Refs)

	require.Len(t, m.Images, 1)
	require.Equal(t, fp, m.Images[0].Fingerprint)
	require.Equal(t, "img.png", m.Images[0].Destination)
	require.Equal(t, []string{"docs/a.html", "docs/b.html"}, m.Images[0].Sources)

	require.Len(t, m.Broken, 1)
	require.Equal(t, "gone.png", m.Broken[0].Ref)
	require.Equal(t, []Collision{
		{Output: "docs/page.md", Sources: []string{"docs/Page.html", "docs/page.html"}},
	}, m.Collisions)
	require.Equal(t, 1, m.Stats.DuplicatesRemoved)
	require.Equal(t, "50.0%", m.Stats.DedupRatio)

	out := t.TempDir()
	require.NoError(t, Write(out, m))
	back, err := Read(out)
	require.NoError(t, err)
	require.Equal(t, m.Documents, back.Documents)
	require.Equal(t, m.Images, back.Images)
	require.Equal(t, m.Stats, back.Stats)
}

func TestReadMissing(t *testing.T) {
	_, err := Read(t.TempDir())
	require.Error(t, err)
}
