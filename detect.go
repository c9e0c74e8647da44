package wesber

import "regexp"

var (
	entireURIRe = regexp.MustCompile(`(?i)^https?://`)
	base64Re    = regexp.MustCompile(`(?i)^data:image/[^;]+;base64,`)
)

// IsEntireURI returns true if uri is an absolute http or https URI.
func IsEntireURI(uri string) bool {
	return entireURIRe.MatchString(uri)
}

// IsBase64 returns true if uri embeds base64 image data.
func IsBase64(uri string) bool {
	return base64Re.MatchString(uri)
}

// Classify reports whether uri is remote or inline. A uri that is neither
// is a local path.
func Classify(uri string) (entireURI, base64 bool) {
	return IsEntireURI(uri), IsBase64(uri)
}
