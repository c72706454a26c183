package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases the input and collapses every run of characters that
// are not letters or digits into a single hyphen.
func Slugify(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, " "))

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range joined {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
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
