package enrich

import "strings"

// EnsureScheme makes a bare hostname or URL fetchable by prepending
// https:// unless the input already carries an http(s) scheme.
// Malformed inputs are passed through and surface as fetch failures
// downstream.
func EnsureScheme(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
