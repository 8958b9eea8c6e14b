package progression

import (
	"regexp"
	"strings"

	"github.com/bagpyp/fretwork/internal/theory"
)

// barToken is the bar separator; it passes through rendering untouched.
const barToken = "|"

// romanPattern matches optional accidental + roman numeral + quality
// suffix. Numerals are case-consistent; longest alternatives first so IV
// is not read as I + "V".
var romanPattern = regexp.MustCompile(`^([b#♭♯]?)(VII|VI|IV|V|III|II|I|vii|vi|iv|v|iii|ii|i)(.*)$`)

// majorScaleDegreeOffset maps scale degree 1..7 to semitones above the
// tonic.
var majorScaleDegreeOffset = [8]int{1: 0, 2: 2, 3: 4, 4: 5, 5: 7, 6: 9, 7: 11}

var romanDegree = map[string]int{
	"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5, "vi": 6, "vii": 7,
}

// romanToken is one parsed Roman-numeral chord token.
type romanToken struct {
	accidental int    // -1 flat, 0 natural, +1 sharp
	degree     int    // 1..7
	minor      bool   // lower-case numeral
	suffix     string // quality suffix as written
	flat       bool   // accidental was explicitly flat
}

func parseRomanToken(tok string) (romanToken, bool) {
	m := romanPattern.FindStringSubmatch(tok)
	if m == nil {
		return romanToken{}, false
	}
	rt := romanToken{suffix: m[3]}
	switch m[1] {
	case "b", "♭":
		rt.accidental, rt.flat = -1, true
	case "#", "♯":
		rt.accidental = 1
	}
	lower := strings.ToLower(m[2])
	rt.degree = romanDegree[lower]
	rt.minor = m[2] == lower
	return rt, true
}

// rootPitchClass resolves the token's chord root against a tonic.
func (rt romanToken) rootPitchClass(tonic theory.PitchClass) theory.PitchClass {
	return tonic.Transpose(majorScaleDegreeOffset[rt.degree] + rt.accidental)
}

// chordSuffix maps the token's case and written suffix to the rendered
// chord-name suffix: upper-case numerals are the major/dominant family and
// keep the suffix as written; lower-case numerals are the minor family,
// so a bare token is "m" and a bare "7" becomes "m7".
func (rt romanToken) chordSuffix() string {
	if !rt.minor {
		return rt.suffix
	}
	switch rt.suffix {
	case "":
		return "m"
	case "7":
		return "m7"
	}
	return rt.suffix
}

// RenderRoman renders a Roman-numeral token string into concrete chord
// names for the given tonic key. Bar separators and unparseable tokens
// pass through as written. Spelling is flat when the token's accidental is
// flat or the tonic key is in the flat-key set.
func (e *Engine) RenderRoman(romanString, tonicKey string) string {
	tonic, ok := theory.ParseNote(tonicKey)
	if !ok {
		return romanString
	}
	tonicFlat := theory.UsesFlats(tonicKey)

	fields := strings.Fields(romanString)
	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if tok == barToken {
			out = append(out, tok)
			continue
		}
		rt, ok := parseRomanToken(tok)
		if !ok {
			out = append(out, tok)
			continue
		}
		root := rt.rootPitchClass(tonic)
		name := root.Name(tonicFlat || rt.flat)
		out = append(out, string(name)+rt.chordSuffix())
	}
	return strings.Join(out, " ")
}
