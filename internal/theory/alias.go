package theory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// aliasTransformer folds compatibility forms and strips combining marks so
// that decorated spellings ("ma⁷", "é") collapse to their plain forms
// before the ASCII-level folding below.
var aliasTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeAlias canonicalizes a chord/scale name for index lookup:
// accidental glyphs fold to ASCII (♯ -> #, ♭ -> b), whitespace is stripped,
// and everything is lower-cased. "Min7♭5" and "m7b5" meet in the middle.
func normalizeAlias(name string) string {
	folded, _, err := transform.String(aliasTransformer, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == '♯':
			b.WriteByte('#')
		case r == '♭':
			b.WriteByte('b')
		case unicode.IsSpace(r):
			// stripped
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
