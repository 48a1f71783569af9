// Package scan — BFS directory queue with deduplication.
// The visited set is keyed by symlink-resolved paths, so cyclic directory
// structures created via symlinks are visited once and never recursed into
// again.
package scan

// dirQueue is a BFS queue of directories pending a scan.
type dirQueue struct {
	items   []string        // input-relative directory paths
	visited map[string]bool // keyed by symlink-resolved absolute path
	idx     int             // current read position
}

func newDirQueue() *dirQueue {
	return &dirQueue{
		visited: make(map[string]bool),
	}
}

// Add enqueues a directory if its resolved identity hasn't been seen.
// Returns false when the directory was already visited (a cycle).
func (q *dirQueue) Add(rel, resolved string) bool {
	if q.visited[resolved] {
		return false
	}
	q.visited[resolved] = true
	q.items = append(q.items, rel)
	return true
}

// HasNext returns true if there are unscanned directories.
func (q *dirQueue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unscanned directory and advances the pointer.
func (q *dirQueue) Next() string {
	rel := q.items[q.idx]
	q.idx++
	return rel
}
