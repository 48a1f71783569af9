// Package manifest records the outcome of a conversion run as a JSON file
// inside the output root, so later tooling can inspect what a run produced
// without re-reading the whole tree.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gaurav-prasanna/mdforge/core"
	"github.com/gaurav-prasanna/mdforge/core/errs"
	"github.com/gaurav-prasanna/mdforge/core/graph"
	"github.com/gaurav-prasanna/mdforge/core/registry"
)

const (
	// FileName is the manifest's location relative to the output root.
	FileName = ".mdforge-manifest.json"

	fileVersion = 1
)

// Manifest describes one completed run.
type Manifest struct {
	Version     int        `json:"version"`
	Project     string     `json:"project"`
	GeneratedAt time.Time  `json:"generated_at"`
	Documents   []Document  `json:"documents"`
	Images      []Image     `json:"images"`
	Skipped     []Skipped   `json:"skipped,omitempty"`
	Broken      []Broken    `json:"broken,omitempty"`
	Collisions  []Collision `json:"collisions,omitempty"`
	Stats       Stats       `json:"stats"`
}

// Document is one converted page together with every reference it carries,
// in document order. The resolved paths are what the emitted Markdown
// actually links to, so referential integrity can be checked from the
// manifest alone.
type Document struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Title  string `json:"title,omitempty"`
	Refs   []Ref  `json:"refs,omitempty"`
}

// Ref is one reference of a converted page.
type Ref struct {
	Raw      string `json:"raw"`
	Resolved string `json:"resolved,omitempty"`
	Kind     string `json:"kind"`
	Broken   bool   `json:"broken,omitempty"`
}

// Image is one deduplicated image in the static namespace.
type Image struct {
	Fingerprint string   `json:"fingerprint"`
	Destination string   `json:"destination"`
	Origin      string   `json:"origin"`
	Size        int64    `json:"size"`
	Sources     []string `json:"sources"`
}

// Skipped is a document that could not be processed.
type Skipped struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// Broken is a reference whose target could not be resolved.
type Broken struct {
	Source string `json:"source"`
	Ref    string `json:"ref"`
	Kind   string `json:"kind"`
}

// Collision is an output path claimed by more than one source document.
type Collision struct {
	Output  string   `json:"output"`
	Sources []string `json:"sources"`
}

// Stats summarizes the dedup outcome.
type Stats struct {
	TotalReferences   int    `json:"total_references"`
	UniqueImages      int    `json:"unique_images"`
	DuplicatesRemoved int    `json:"duplicates_removed"`
	DedupRatio        string `json:"dedup_ratio"`
}

// Build assembles a manifest from the run's graph, registry and report.
// Documents come out sorted by source path and images in registration
// order, so two identical runs serialize identically apart from the
// timestamp.
func Build(project string, g *graph.Graph, reg *registry.Registry, report *core.Report) *Manifest {
	m := &Manifest{
		Version:     fileVersion,
		Project:     project,
		GeneratedAt: time.Now().UTC(),
		Stats: Stats{
			TotalReferences:   report.Stats.TotalReferences,
			UniqueImages:      report.Stats.UniqueImages,
			DuplicatesRemoved: report.Stats.DuplicatesRemoved(),
			DedupRatio:        report.Stats.Ratio(),
		},
	}

	for _, doc := range g.Documents {
		d := Document{
			Source: doc.SourcePath,
			Output: doc.OutputPath,
			Title:  doc.Title,
		}
		for _, ref := range doc.Refs {
			d.Refs = append(d.Refs, Ref{
				Raw:      ref.Raw,
				Resolved: ref.Resolved,
				Kind:     string(ref.Kind),
				Broken:   ref.Broken,
			})
		}
		m.Documents = append(m.Documents, d)
	}
	sort.Slice(m.Documents, func(i, j int) bool {
		return m.Documents[i].Source < m.Documents[j].Source
	})

	for _, entry := range reg.Entries() {
		m.Images = append(m.Images, Image{
			Fingerprint: entry.Fingerprint,
			Destination: entry.Destination,
			Origin:      entry.Origin,
			Size:        entry.Size,
			Sources:     entry.Sources,
		})
	}

	for _, s := range report.Skipped {
		m.Skipped = append(m.Skipped, Skipped{Source: s.Path, Reason: s.Reason})
	}
	for _, b := range report.Broken {
		m.Broken = append(m.Broken, Broken{Source: b.Document, Ref: b.Raw, Kind: string(b.Kind)})
	}
	for _, c := range report.Collisions {
		m.Collisions = append(m.Collisions, Collision{Output: c.Output, Sources: c.Sources})
	}
	return m
}

// Write serializes the manifest into the output root.
func Write(outputRoot string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	p := filepath.Join(outputRoot, FileName)
	if err := os.WriteFile(p, append(data, '\n'), 0o644); err != nil {
		return &errs.WriteError{Path: p, Err: err}
	}
	return nil
}

// Read loads a manifest written by a previous run.
func Read(outputRoot string) (*Manifest, error) {
	p := filepath.Join(outputRoot, FileName)
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", p, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", p, err)
	}
	return &m, nil
}
