// Package registry assigns every unique image exactly one destination
// filename inside the static image namespace. Identity is the content
// fingerprint; registration is idempotent per fingerprint, which is what
// makes cross-document deduplication independent of processing order.
package registry

import (
	"path"
	"sort"

	"github.com/gaurav-prasanna/mdforge/core/fingerprint"
	"github.com/gaurav-prasanna/mdforge/core/pathnorm"
)

// suffixLen is the number of digest characters appended to break a
// destination-name collision between different-content images.
const suffixLen = 8

// Entry is one unique image. Never mutated after creation except to
// append newly seen source paths.
type Entry struct {
	Fingerprint string
	Destination string   // filename within the image namespace
	Origin      string   // input-relative path of the winning (first seen) copy
	Sources     []string // every original source path that mapped here
	Size        int64
}

// Registry maps content fingerprints to destinations. Single-writer: only
// the resolver registers images, and only from one goroutine.
type Registry struct {
	entries map[string]*Entry  // fingerprint → entry
	claimed map[string]string  // destination → fingerprint
	order   []string           // fingerprints in registration order
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		claimed: make(map[string]string),
	}
}

// Register returns the destination filename for the image with the given
// fingerprint. A known fingerprint returns its existing destination
// unconditionally, ignoring proposedName; an unknown one claims the
// normalized proposedName, suffixed with digest characters until it no
// longer collides with a different fingerprint's destination.
func (r *Registry) Register(fp, proposedName, origin string, size int64, source string) string {
	if e, ok := r.entries[fp]; ok {
		e.Sources = append(e.Sources, source)
		return e.Destination
	}

	dest := pathnorm.Name(proposedName)
	for n := suffixLen; ; n += suffixLen {
		owner, taken := r.claimed[dest]
		if !taken || owner == fp {
			break
		}
		dest = suffixed(pathnorm.Name(proposedName), fingerprint.Suffix(fp, n))
	}

	e := &Entry{
		Fingerprint: fp,
		Destination: dest,
		Origin:      origin,
		Sources:     []string{source},
		Size:        size,
	}
	r.entries[fp] = e
	r.claimed[dest] = fp
	r.order = append(r.order, fp)
	return dest
}

// Lookup returns the entry for a fingerprint, if registered.
func (r *Registry) Lookup(fp string) (*Entry, bool) {
	e, ok := r.entries[fp]
	return e, ok
}

// Entries returns all entries in registration order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.order))
	for _, fp := range r.order {
		out = append(out, r.entries[fp])
	}
	return out
}

// Destinations returns the set of claimed destination filenames, sorted.
// The garbage collector diffs the namespace directory against this set.
func (r *Registry) Destinations() []string {
	out := make([]string, 0, len(r.claimed))
	for dest := range r.claimed {
		out = append(out, dest)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of unique images registered.
func (r *Registry) Len() int { return len(r.order) }

// suffixed inserts the disambiguator before the extension:
// star.png + 1a2b3c4d → star_1a2b3c4d.png.
func suffixed(name, suffix string) string {
	ext := path.Ext(name)
	return name[:len(name)-len(ext)] + "_" + suffix + ext
}
