// Package textenc restricts slide text to the Latin-1 repertoire of the
// standard PDF core fonts.
package textenc

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Replacement is written in place of every rune Latin-1 cannot encode.
const Replacement = '?'

// Latin1 returns s with each rune outside ISO 8859-1 replaced by Replacement.
// It never fails.
func Latin1(s string) string {
	if isLatin1(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if _, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(Replacement)
	}
	return b.String()
}

func isLatin1(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}
	return true
}
