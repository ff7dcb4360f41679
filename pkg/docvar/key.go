// Package docvar implements the variable model shared by the document and
// email editors: `{{key}}` placeholders embedded in rich content, the
// distinction between system-provided and user-defined keys, and the lossless
// mapping between flat HTML and the structured node tree the editors operate
// on.
package docvar

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticsFolder decomposes runes and drops the combining marks, so that
// "Situação" folds to "Situacao" before the character filter runs.
var diacriticsFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey canonicalizes a raw variable key: lowercase, surrounding
// whitespace trimmed, diacritics folded, internal whitespace runs collapsed
// to a single underscore, and any remaining character outside [a-z0-9_-]
// dropped. The empty string means the input contained nothing usable and the
// caller must not create a variable from it.
//
// NormalizeKey is idempotent: applying it to its own output is a no-op.
func NormalizeKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if folded, _, err := transform.String(diacriticsFolder, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSep = b.Len() > 0
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-':
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
			}
			b.WriteRune(r)
		default:
			// Dropped. Punctuation does not act as a separator, so
			// "client's name" becomes "clients_name", not "client_s_name".
		}
	}
	return b.String()
}
