// Package scan — reference classification rules.
// Provides helpers to classify the raw reference strings found in source
// documents: external URLs, special links, image paths.
package scan

import (
	"net/url"
	"path"
	"strings"
)

// imageExtensions are file extensions treated as images and routed through
// the dedup registry.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
}

// externalSchemes are URL schemes that mark a reference as external; such
// references are left untouched by the resolver.
var externalSchemes = map[string]bool{
	"http": true, "https": true, "mailto": true, "ftp": true, "tel": true,
}

// IsExternalURL checks if a reference is a fully-qualified external URL.
func IsExternalURL(ref string) bool {
	if ref == "" {
		return false
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return externalSchemes[parsed.Scheme]
}

// IsSpecialLink checks if a reference is an in-page anchor or a
// non-navigable scheme.
func IsSpecialLink(ref string) bool {
	return strings.HasPrefix(ref, "#") ||
		strings.HasPrefix(ref, "javascript:") ||
		strings.HasPrefix(ref, "data:")
}

// IsImagePath checks if a path has a recognized image extension.
func IsImagePath(p string) bool {
	return imageExtensions[strings.ToLower(path.Ext(p))]
}

// IsHTMLPath checks if a path names an HTML document.
func IsHTMLPath(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// SplitAnchor separates the path part of a reference from its #fragment.
// The fragment, if any, is returned with its leading "#".
func SplitAnchor(ref string) (string, string) {
	if i := strings.Index(ref, "#"); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}
