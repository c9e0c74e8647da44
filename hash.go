package wesber

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const (
	// Sigil prefixes every marker.
	Sigil = "#"

	// MarkerLength is the number of hex digits in a marker.
	MarkerLength = 8
)

// MakeHash returns the lowercase hex sha256 digest of s.
func MakeHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the first n hex digits of MakeHash(s).
// A non-positive or oversized n yields the full digest.
func ShortHash(s string, n int) string {
	h := MakeHash(s)
	if n <= 0 || n > len(h) {
		return h
	}
	return h[:n]
}

// Marker returns the marker for a resolved target.
func Marker(seed string) string {
	return Sigil + ShortHash(seed, MarkerLength)
}

// ContentHash computes a hash of the content using xxhash.
func ContentHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}
