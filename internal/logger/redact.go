package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxPathLength is the maximum length for URL paths in logs
	MaxPathLength = 500
	// tokenPreview is how many leading characters of a credential survive
	// redaction.
	tokenPreview = 6
)

// RedactToken shortens a bearer credential to a recognizable prefix so logs
// never carry a usable token.
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= tokenPreview {
		return "[redacted]"
	}
	return token[:tokenPreview] + "...[redacted]"
}

// SanitizePath strips control characters from a URL path, fixes invalid
// UTF-8, and truncates to MaxPathLength so hostile paths cannot mangle log
// output.
func SanitizePath(path string) string {
	if path == "" {
		return ""
	}

	if !utf8.ValidString(path) {
		path = strings.ToValidUTF8(path, "")
	}

	var builder strings.Builder
	builder.Grow(len(path))
	for _, r := range path {
		if unicode.IsControl(r) {
			continue
		}
		builder.WriteRune(r)
	}
	path = builder.String()

	if len(path) > MaxPathLength {
		path = path[:MaxPathLength]
	}
	return path
}
