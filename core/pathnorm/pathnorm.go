// Package pathnorm maps arbitrary path strings to their canonical form:
// lowercase, whitespace runs replaced by a single underscore, forward
// slashes, rooted at a declared base. Pure string manipulation, no I/O.
package pathnorm

import (
	"fmt"
	"path"
	"strings"

	"github.com/gaurav-prasanna/mdforge/core/errs"
)

// toSlash converts both separator styles to forward slashes, regardless of
// the platform the converter runs on. Input corpora produced on Windows
// routinely contain backslash references.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Name canonicalizes a single path segment: lowercase, whitespace runs
// collapsed to one underscore.
func Name(segment string) string {
	return strings.Join(strings.Fields(strings.ToLower(segment)), "_")
}

// Rel canonicalizes a relative path, normalizing every segment while
// leaving "." and ".." intact for the caller to resolve.
func Rel(p string) string {
	p = toSlash(p)
	segs := strings.Split(p, "/")
	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		switch seg {
		case "", ".", "..":
			if seg != "" {
				out = append(out, seg)
			}
		default:
			out = append(out, Name(seg))
		}
	}
	cleaned := path.Clean(strings.Join(out, "/"))
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// Normalize resolves p against base and returns the canonical absolute
// path rooted at base. Identical input always yields identical output, and
// the function is idempotent: normalizing an already-normalized path is a
// no-op. A ".." traversal past base fails with ErrPathEscapesRoot.
func Normalize(p, base string) (string, error) {
	base = path.Clean(toSlash(base))
	p = toSlash(p)

	if path.IsAbs(p) {
		// Already rooted: it must live under base.
		if !under(p, base) {
			return "", fmt.Errorf("%w: %s not under %s", errs.ErrPathEscapesRoot, p, base)
		}
		p = strings.TrimPrefix(strings.TrimPrefix(p, base), "/")
	}

	joined := path.Join(base, Rel(p))
	if !under(joined, base) {
		return "", fmt.Errorf("%w: %s resolves outside %s", errs.ErrPathEscapesRoot, p, base)
	}
	return joined, nil
}

// under reports whether p equals base or lives below it.
func under(p, base string) bool {
	if p == base {
		return true
	}
	prefix := base
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(p, prefix)
}
