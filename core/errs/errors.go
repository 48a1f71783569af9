// Package errs defines the error taxonomy of the converter. Recoverable
// conditions (unreadable documents, broken references) are accumulated into
// the run report; everything here is either a sentinel to test against or a
// typed fatal error carrying enough context to diagnose without re-running.
package errs

import "fmt"

// ErrPathEscapesRoot is returned when a resolved path would climb above the
// declared root via ".." traversal. Always fatal: it indicates malformed or
// malicious input.
var ErrPathEscapesRoot = fmt.Errorf("path escapes root")

// UnreadableDocumentError marks an input file that could not be read or
// parsed as HTML. Recoverable: the document is skipped and reported.
type UnreadableDocumentError struct {
	Path string
	Err  error
}

func (e *UnreadableDocumentError) Error() string {
	return fmt.Sprintf("unreadable document %s: %v", e.Path, e.Err)
}

func (e *UnreadableDocumentError) Unwrap() error { return e.Err }

// WriteError marks a filesystem failure while emitting output. Fatal:
// partial output on a write failure means the environment is unhealthy.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ConsistencyError marks a destination that already holds bytes with a
// different fingerprint than the registry expects. Fatal: it can only mean
// a bug in collision disambiguation and must never be silently resolved.
type ConsistencyError struct {
	Destination string
	Want        string // expected fingerprint
	Got         string // fingerprint found on disk
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("destination %s holds fingerprint %s, registry expects %s",
		e.Destination, e.Got, e.Want)
}
