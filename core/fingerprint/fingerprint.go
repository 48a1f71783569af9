// Package fingerprint computes content identity for image deduplication.
// The hex SHA-256 digest is the sole criterion for "these two files are the
// same file"; bytes are never compared directly.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Suffix returns the first n characters of a digest, used to disambiguate
// destination filenames when two different-content images normalize to the
// same name.
func Suffix(digest string, n int) string {
	if n > len(digest) {
		n = len(digest)
	}
	return digest[:n]
}
