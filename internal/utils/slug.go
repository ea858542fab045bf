package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify computes the canonical slug for a name: lowercase, diacritics
// stripped, runs of non-alphanumerics collapsed to single hyphens,
// leading/trailing hyphens trimmed.
func Slugify(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(name))

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingHyphen := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			// combining mark left over from NFD decomposition
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}
