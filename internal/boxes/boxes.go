// Package boxes builds scale "box shape" patterns: bounded fretboard
// windows containing one complete instance of a scale, plus the target-tone
// injection that layers optional color tones into a box.
package boxes

import (
	"github.com/bagpyp/fretwork/internal/fretboard"
	"github.com/bagpyp/fretwork/internal/theory"
)

// Window is an inclusive fret range [Start, End].
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether fret lies inside the window.
func (w Window) Contains(fret int) bool {
	return fret >= w.Start && fret <= w.End
}

// Position is a (string, fret) coordinate. Strings are indexed low-to-high.
type Position struct {
	String int `json:"string"`
	Fret   int `json:"fret"`
}

// BoxShapePattern is one box of a scale: per-string fret sets inside a
// fretboard window, with the tonal-center root positions tagged.
type BoxShapePattern struct {
	ID     string                      `json:"id"`
	Label  string                      `json:"label"`
	Root   theory.PitchClass           `json:"root"`
	Frets  [fretboard.NumStrings][]int `json:"frets"`
	Roots  []Position                  `json:"roots"`
	Window Window                      `json:"window"`
}

// clone deep-copies the pattern so injection never aliases the generated
// base pattern.
func (p BoxShapePattern) clone() BoxShapePattern {
	out := p
	for s := range p.Frets {
		out.Frets[s] = append([]int(nil), p.Frets[s]...)
	}
	out.Roots = append([]Position(nil), p.Roots...)
	return out
}

// contains reports whether the position is already part of the pattern.
func (p *BoxShapePattern) contains(pos Position) bool {
	for _, f := range p.Frets[pos.String] {
		if f == pos.Fret {
			return true
		}
	}
	return false
}

// add inserts a position keeping the per-string fret list sorted.
func (p *BoxShapePattern) add(pos Position) {
	frets := p.Frets[pos.String]
	i := 0
	for i < len(frets) && frets[i] < pos.Fret {
		i++
	}
	frets = append(frets, 0)
	copy(frets[i+1:], frets[i:])
	frets[i] = pos.Fret
	p.Frets[pos.String] = frets
}

// ReferenceMode tags which tonal center a target tone's offset is measured
// from.
type ReferenceMode string

const (
	ReferenceMajor ReferenceMode = "major"
	ReferenceMinor ReferenceMode = "minor"
)

// TargetTone is a catalog entry for an optional color tone: an interval
// offset from the tonal-center root, a spelling preference, and the display
// palette used by the rendering layer. Entries are stateless.
type TargetTone struct {
	ID         string        `json:"id"`
	Offset     int           `json:"offset"`
	Reference  ReferenceMode `json:"reference"`
	PreferFlat bool          `json:"prefer_flat"`
	Color      string        `json:"color"`
}

// TargetTones is the fixed target-tone catalog.
var TargetTones = []TargetTone{
	{ID: "b5", Offset: 6, Reference: ReferenceMinor, PreferFlat: true, Color: "#e5484d"},
	{ID: "6", Offset: 9, Reference: ReferenceMinor, Color: "#30a46c"},
	{ID: "9", Offset: 2, Reference: ReferenceMinor, Color: "#0091ff"},
	{ID: "maj3", Offset: 4, Reference: ReferenceMinor, Color: "#f5a623"},
	{ID: "b7", Offset: 10, Reference: ReferenceMajor, PreferFlat: true, Color: "#8e4ec6"},
	{ID: "4", Offset: 5, Reference: ReferenceMajor, Color: "#12a594"},
}

// TargetToneByID looks up a catalog entry. Returns ok=false on a miss.
func TargetToneByID(id string) (TargetTone, bool) {
	for _, t := range TargetTones {
		if t.ID == id {
			return t, true
		}
	}
	return TargetTone{}, false
}

// Marker records one injected target-tone position. Markers from different
// tones are never deduplicated against each other; a position may carry two
// overlapping markers.
type Marker struct {
	Tone     string   `json:"tone"`
	Position Position `json:"position"`
	Color    string   `json:"color"`
}
