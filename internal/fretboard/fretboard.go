// Package fretboard models pitch on a fretted six-string instrument:
// open-string tuning, equal-temperament fret geometry, and the mapping from
// (string, fret) positions to spelled notes and octaves.
//
// String indices run low-to-high: string 0 is the low E. All functions are
// pure and total over their documented domain.
package fretboard

import (
	"math"

	"github.com/bagpyp/fretwork/internal/theory"
)

// NumStrings is the string count of the modeled instrument.
const NumStrings = 6

// MaxFret is the highest displayed fret. Geometry functions accept any
// non-negative fret; position scans stop here.
const MaxFret = 15

// ScaleLength is the vibrating string length in millimeters (25.5").
const ScaleLength = 647.7

// Tuning is an ordered list of open-string MIDI numbers, low-to-high.
type Tuning [NumStrings]int

// StandardTuning is E standard: E2 A2 D3 G3 B3 E4.
var StandardTuning = Tuning{40, 45, 50, 55, 59, 64}

// OpenPitchClass returns the pitch class of the open string.
func (t Tuning) OpenPitchClass(stringIndex int) theory.PitchClass {
	return theory.PitchClass(t[stringIndex] % 12)
}

// Note is a spelled pitch at a fretboard position.
type Note struct {
	PitchClass theory.PitchClass `json:"pitch_class"`
	Name       theory.NoteName   `json:"name"`
}

// NoteAt returns the note sounded at (stringIndex, fret). The spelling
// follows the key-spelling policy: flat names when key is in the flat-key
// set, sharp names otherwise. An empty key spells sharp.
func (t Tuning) NoteAt(stringIndex, fret int, key string) Note {
	pc := t.OpenPitchClass(stringIndex).Transpose(fret)
	return Note{PitchClass: pc, Name: theory.SpellForKey(pc, key)}
}

// PitchClassAt returns the pitch class sounded at (stringIndex, fret).
func (t Tuning) PitchClassAt(stringIndex, fret int) theory.PitchClass {
	return t.OpenPitchClass(stringIndex).Transpose(fret)
}

// MidiAt returns the MIDI number sounded at (stringIndex, fret).
func (t Tuning) MidiAt(stringIndex, fret int) int {
	return t[stringIndex] + fret
}

// OctaveAt returns the scientific-pitch octave at (stringIndex, fret);
// middle C (MIDI 60) is octave 4.
func (t Tuning) OctaveAt(stringIndex, fret int) int {
	return (t[stringIndex]+fret)/12 - 1
}

// FretPosition returns the distance in millimeters from the nut to fret n.
// FretPosition(0) is the nut itself.
func FretPosition(n int) float64 {
	return ScaleLength * (1 - math.Pow(2, -float64(n)/12))
}

// FretSpacing returns the width of fret n: the distance between fret n and
// fret n+1. Spacing is strictly decreasing up the neck; the ratio between
// consecutive spacings is exactly 2^(-1/12).
func FretSpacing(n int) float64 {
	return FretPosition(n+1) - FretPosition(n)
}
