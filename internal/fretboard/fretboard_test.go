package fretboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagpyp/fretwork/internal/theory"
)

func TestFretPosition_NutIsZero(t *testing.T) {
	assert.Zero(t, FretPosition(0))
}

func TestFretPosition_TwelfthFretHalvesTheString(t *testing.T) {
	assert.InDelta(t, ScaleLength/2, FretPosition(12), 1e-9)
}

// Fret spacing must shrink monotonically up the neck, with the exact
// equal-temperament ratio between consecutive spacings.
func TestFretSpacing_StrictlyDecreasing(t *testing.T) {
	ratio := math.Pow(2, -1.0/12)
	for n := 1; n <= 24; n++ {
		require.Less(t, FretSpacing(n), FretSpacing(n-1), "fret %d", n)
		assert.InDelta(t, ratio, FretSpacing(n)/FretSpacing(n-1), 1e-9, "fret %d", n)
	}
}

func TestNoteAt_OpenStrings(t *testing.T) {
	want := []theory.NoteName{"E", "A", "D", "G", "B", "E"}
	for s := 0; s < NumStrings; s++ {
		assert.Equal(t, want[s], StandardTuning.NoteAt(s, 0, "C").Name, "string %d", s)
	}
}

func TestNoteAt_KeySpellingPolicy(t *testing.T) {
	// Low E string, fret 2 is F#/Gb.
	assert.Equal(t, theory.NoteName("F#"), StandardTuning.NoteAt(0, 2, "E").Name)
	assert.Equal(t, theory.NoteName("Gb"), StandardTuning.NoteAt(0, 2, "Eb").Name)
	// Empty key spells sharp.
	assert.Equal(t, theory.NoteName("F#"), StandardTuning.NoteAt(0, 2, "").Name)
}

// An octave up the same string repeats the pitch class one octave higher.
func TestOctavePeriodicity(t *testing.T) {
	for s := 0; s < NumStrings; s++ {
		for f := 0; f <= MaxFret-12; f++ {
			require.Equal(t,
				StandardTuning.PitchClassAt(s, f),
				StandardTuning.PitchClassAt(s, f+12), "string %d fret %d", s, f)
			require.Equal(t,
				StandardTuning.OctaveAt(s, f)+1,
				StandardTuning.OctaveAt(s, f+12), "string %d fret %d", s, f)
		}
	}
}

func TestOctaveAt_KnownPositions(t *testing.T) {
	assert.Equal(t, 2, StandardTuning.OctaveAt(0, 0)) // E2
	assert.Equal(t, 4, StandardTuning.OctaveAt(5, 0)) // E4
	assert.Equal(t, 4, StandardTuning.OctaveAt(4, 1)) // C4, middle C
}
