// Package voicing generates playable triad voicings per adjacent string
// group. Reference major-triad shapes are enumerated once per key and
// string group; derived qualities (minor, diminished, augmented) are
// produced by transforming the reference shapes fret-by-fret.
package voicing

import "github.com/bagpyp/fretwork/internal/fretboard"

// Inversion tags which chord tone sounds lowest in a voicing.
type Inversion string

const (
	InversionRoot    Inversion = "root"
	InversionFirst   Inversion = "first"
	InversionSecond  Inversion = "second"
	InversionUnknown Inversion = "unknown"
)

// StringGroup is a triple of adjacent string indices, low-to-high.
type StringGroup [3]int

// Groups are the four adjacent string triples of a six-string instrument.
var Groups = [4]StringGroup{{0, 1, 2}, {1, 2, 3}, {2, 3, 4}, {3, 4, 5}}

// Voicing is a specific fret assignment across a string group realizing a
// chord's pitch classes. The pitch-class multiset of Notes always equals
// the chord formula's pitch-class set exactly.
type Voicing struct {
	Group     StringGroup       `json:"strings"`
	Frets     [3]int            `json:"frets"`
	Notes     [3]fretboard.Note `json:"notes"`
	Inversion Inversion         `json:"inversion"`
	AvgFret   float64           `json:"avg_fret"`
}

// StringGroupVoicings pairs a string group with its voicings, ordered by
// ascending average fret.
type StringGroupVoicings struct {
	Group    StringGroup `json:"strings"`
	Voicings []Voicing   `json:"voicings"`
}

// FullySupported reports whether every string group yielded at least one
// voicing. Callers seeing partial support fall back to the major quality.
func FullySupported(groups []StringGroupVoicings) bool {
	if len(groups) != len(Groups) {
		return false
	}
	for _, g := range groups {
		if len(g.Voicings) == 0 {
			return false
		}
	}
	return true
}
