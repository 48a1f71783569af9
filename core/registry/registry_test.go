package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/mdforge/core/fingerprint"
)

func TestRegisterIdempotentPerFingerprint(t *testing.T) {
	r := New()
	fp := fingerprint.Sum([]byte("logo bytes"))

	first := r.Register(fp, "logo.PNG", "images/logo.PNG", 10, "docs/a.html")
	require.Equal(t, "logo.png", first)

	// Same fingerprint under a completely different name still maps to the
	// first destination.
	second := r.Register(fp, "Company Logo.png", "sub/logo.png", 10, "docs/sub/b.html")
	require.Equal(t, first, second)

	require.Equal(t, 1, r.Len())
	e, ok := r.Lookup(fp)
	require.True(t, ok)
	require.Equal(t, []string{"docs/a.html", "docs/sub/b.html"}, e.Sources)
	require.Equal(t, "images/logo.PNG", e.Origin)
}

func TestRegisterCollisionSuffix(t *testing.T) {
	r := New()
	fpA := fingerprint.Sum([]byte("star A"))
	fpB := fingerprint.Sum([]byte("star B"))

	destA := r.Register(fpA, "star.png", "icons/a/star.png", 6, "a.html")
	destB := r.Register(fpB, "star.png", "icons/b/star.png", 6, "b.html")

	require.Equal(t, "star.png", destA)
	require.Equal(t, "star_"+fpB[:8]+".png", destB)
	require.NotEqual(t, destA, destB)
	require.Equal(t, 2, r.Len())
}

func TestRegisterOrderIndependentSet(t *testing.T) {
	blobs := map[string][]byte{
		"one.png": []byte("1"), "two.png": []byte("2"), "dup.png": []byte("1"),
	}

	forward := New()
	forward.Register(fingerprint.Sum(blobs["one.png"]), "one.png", "one.png", 1, "a")
	forward.Register(fingerprint.Sum(blobs["two.png"]), "two.png", "two.png", 1, "a")
	forward.Register(fingerprint.Sum(blobs["dup.png"]), "dup.png", "dup.png", 1, "b")

	backward := New()
	backward.Register(fingerprint.Sum(blobs["dup.png"]), "dup.png", "dup.png", 1, "b")
	backward.Register(fingerprint.Sum(blobs["two.png"]), "two.png", "two.png", 1, "a")
	backward.Register(fingerprint.Sum(blobs["one.png"]), "one.png", "one.png", 1, "a")

	// The unique-image set is identical either way; only destination names
	// depend on which basename was seen first.
	require.Equal(t, forward.Len(), backward.Len())
	require.Equal(t, 2, forward.Len())
}

func TestDestinationsSorted(t *testing.T) {
	r := New()
	r.Register(fingerprint.Sum([]byte("z")), "zeta.png", "zeta.png", 1, "d")
	r.Register(fingerprint.Sum([]byte("a")), "alpha.png", "alpha.png", 1, "d")

	require.Equal(t, []string{"alpha.png", "zeta.png"}, r.Destinations())
}

func TestSuffixedNoExtension(t *testing.T) {
	r := New()
	fpA := fingerprint.Sum([]byte("raw A"))
	fpB := fingerprint.Sum([]byte("raw B"))

	r.Register(fpA, "README", "a/README", 1, "a")
	destB := r.Register(fpB, "README", "b/README", 1, "b")
	require.Equal(t, "readme_"+fpB[:8], destB)
}
