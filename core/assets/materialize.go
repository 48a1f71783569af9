// Package assets performs the image-side filesystem work of a run:
// materializing each registry entry's winning bytes into the static image
// namespace, and garbage-collecting whatever the registry does not claim.
package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/mdforge/core/errs"
	"github.com/gaurav-prasanna/mdforge/core/fingerprint"
	"github.com/gaurav-prasanna/mdforge/core/registry"
	"github.com/gaurav-prasanna/mdforge/core/source"
)

// Materialize copies each registry entry's source bytes to its single
// canonical destination under nsDir. Idempotent: a destination that
// already holds identical bytes is a no-op. A destination holding
// different bytes is a consistency failure and is never overwritten.
func Materialize(tree *source.Tree, reg *registry.Registry, nsDir string) error {
	if reg.Len() == 0 {
		return nil
	}
	if err := os.MkdirAll(nsDir, 0o755); err != nil {
		return &errs.WriteError{Path: nsDir, Err: err}
	}

	for _, entry := range reg.Entries() {
		dest := filepath.Join(nsDir, entry.Destination)

		if existing, err := os.ReadFile(dest); err == nil {
			got := fingerprint.Sum(existing)
			if got == entry.Fingerprint {
				continue
			}
			return &errs.ConsistencyError{
				Destination: dest,
				Want:        entry.Fingerprint,
				Got:         got,
			}
		}

		data, err := tree.Read(entry.Origin)
		if err != nil {
			return fmt.Errorf("materialize %s: %w", entry.Destination, err)
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return &errs.WriteError{Path: dest, Err: err}
		}
	}
	return nil
}
