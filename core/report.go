package core

import "fmt"

// SkippedDocument records an input file that could not be parsed and was
// left out of the run.
type SkippedDocument struct {
	Path   string
	Reason string
}

// BrokenReference records a reference whose target does not exist on disk.
// The run continues; the reference is surfaced here instead.
type BrokenReference struct {
	Document string
	Raw      string
	Kind     RefKind
}

// OutputCollision records distinct source documents whose canonical output
// paths coincide. The run continues and the last-emitted document wins, but
// the clash is surfaced so the inputs can be renamed.
type OutputCollision struct {
	Output  string
	Sources []string
}

// DedupStats summarizes image deduplication for one run.
type DedupStats struct {
	TotalReferences int
	UniqueImages    int
}

// DuplicatesRemoved is the number of references collapsed onto an
// already-registered image.
func (s DedupStats) DuplicatesRemoved() int {
	return s.TotalReferences - s.UniqueImages
}

// Ratio formats the share of references that were duplicates.
func (s DedupStats) Ratio() string {
	if s.TotalReferences == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(s.DuplicatesRemoved())/float64(s.TotalReferences)*100)
}

// Report accumulates every recoverable condition of a run. A run that
// returns a non-empty report still succeeded; fatal conditions are returned
// as errors instead.
type Report struct {
	Skipped    []SkippedDocument
	Broken     []BrokenReference
	Collisions []OutputCollision
	Stats      DedupStats
}

// AddSkipped records a document that failed to parse.
func (r *Report) AddSkipped(path string, err error) {
	r.Skipped = append(r.Skipped, SkippedDocument{Path: path, Reason: err.Error()})
}

// AddBroken records a dangling reference.
func (r *Report) AddBroken(doc, raw string, kind RefKind) {
	r.Broken = append(r.Broken, BrokenReference{Document: doc, Raw: raw, Kind: kind})
}

// AddCollision records an output path claimed by more than one source.
func (r *Report) AddCollision(output string, sources []string) {
	r.Collisions = append(r.Collisions, OutputCollision{Output: output, Sources: sources})
}

// Clean reports whether the run completed without recoverable issues.
func (r *Report) Clean() bool {
	return len(r.Skipped) == 0 && len(r.Broken) == 0 && len(r.Collisions) == 0
}
