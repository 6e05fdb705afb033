// Package slug converts arbitrary strings into URL-safe identifiers.
package slug

import "strings"

// Make lowercases s and replaces every run of non-alphanumeric characters
// with a single hyphen. Leading and trailing hyphens are stripped.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
