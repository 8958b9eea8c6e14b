package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	cases := map[string]PitchClass{
		"C": 0, "C#": 1, "Db": 1, "D": 2, "Eb": 3, "E": 4, "F": 5,
		"F#": 6, "Gb": 6, "G": 7, "Ab": 8, "A": 9, "Bb": 10, "B": 11,
		"Cb": 11, "B#": 0, "e": 4, "bb": 10, "F♯": 6, "E♭": 3, "C##": 2,
	}
	for name, want := range cases {
		got, ok := ParseNote(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestParseNote_Rejects(t *testing.T) {
	for _, name := range []string{"", "H", "C!", "#", "Cm"} {
		_, ok := ParseNote(name)
		assert.False(t, ok, name)
	}
}

func TestUsesFlats(t *testing.T) {
	for _, key := range []string{"F", "Bb", "Eb", "Ab", "Db", "Gb", "Cb", "B♭"} {
		assert.True(t, UsesFlats(key), key)
	}
	for _, key := range []string{"C", "G", "D", "A", "E", "B", "F#", "C#"} {
		assert.False(t, UsesFlats(key), key)
	}
}

func TestSpellForKey(t *testing.T) {
	assert.Equal(t, NoteName("D#"), SpellForKey(3, "E"))
	assert.Equal(t, NoteName("Eb"), SpellForKey(3, "Bb"))
	assert.Equal(t, NoteName("A#"), SpellForKey(10, "C"))
	assert.Equal(t, NoteName("Bb"), SpellForKey(10, "F"))
}

func TestToFlatEnharmonic(t *testing.T) {
	assert.Equal(t, NoteName("Db"), ToFlatEnharmonic("C#"))
	assert.Equal(t, NoteName("Ab"), ToFlatEnharmonic("G#"))
	assert.Equal(t, NoteName("C"), ToFlatEnharmonic("C"))
	assert.Equal(t, NoteName("Eb"), ToFlatEnharmonic("Eb"))
}

func TestTranspose_Wraps(t *testing.T) {
	assert.Equal(t, PitchClass(2), PitchClass(11).Transpose(3))
	assert.Equal(t, PitchClass(11), PitchClass(2).Transpose(-3))
	assert.Equal(t, PitchClass(4), PitchClass(4).Transpose(12))
}
