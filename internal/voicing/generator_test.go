package voicing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagpyp/fretwork/internal/fretboard"
	"github.com/bagpyp/fretwork/internal/theory"
)

var allKeys = []string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

func newTestGenerator() *Generator {
	return NewGenerator(theory.Default(), fretboard.StandardTuning)
}

// Every generated voicing must realize the chord's pitch-class set exactly:
// no doubled tones, no foreign tones. Checked across all 12 keys for every
// triad quality.
func TestGenerate_ExactPitchClassMultiset(t *testing.T) {
	g := newTestGenerator()
	cat := theory.Default()

	for _, chordType := range []string{"major", "minor", "dim", "aug"} {
		id, ok := cat.ResolveChordID(chordType)
		require.True(t, ok)
		formula, _ := cat.Chord(id)

		for _, key := range allKeys {
			t.Run(fmt.Sprintf("%s_%s", key, chordType), func(t *testing.T) {
				root, _ := theory.ParseNote(key)
				want := formula.PitchClassSet(root)

				groups := g.Generate(key, chordType)
				require.NotNil(t, groups, "%s %s", key, chordType)
				for _, sg := range groups {
					for _, v := range sg.Voicings {
						seen := map[theory.PitchClass]int{}
						for _, n := range v.Notes {
							seen[n.PitchClass]++
						}
						require.Len(t, seen, 3, "frets %v", v.Frets)
						for pc := range want {
							assert.Equal(t, 1, seen[pc], "frets %v missing/doubling pc %d", v.Frets, pc)
						}
					}
				}
			})
		}
	}
}

// The major reference set must cover all four string groups in all 12 keys.
func TestGenerate_MajorFullySupportedEverywhere(t *testing.T) {
	g := newTestGenerator()
	for _, key := range allKeys {
		groups := g.Generate(key, "major")
		assert.True(t, FullySupported(groups), "key %s: got %d groups", key, len(groups))
	}
}

func TestGenerate_OrderedByAverageFret(t *testing.T) {
	g := newTestGenerator()
	for _, key := range allKeys {
		for _, sg := range g.Generate(key, "major") {
			for i := 1; i < len(sg.Voicings); i++ {
				require.LessOrEqual(t,
					sg.Voicings[i-1].AvgFret, sg.Voicings[i].AvgFret,
					"key %s group %v", key, sg.Group)
			}
		}
	}
}

func TestGenerate_InversionFromLowestNote(t *testing.T) {
	g := newTestGenerator()
	root, _ := theory.ParseNote("G")
	for _, sg := range g.Generate("G", "minor") {
		for _, v := range sg.Voicings {
			lowest := v.Notes[0]
			lowestMidi := fretboard.StandardTuning.MidiAt(v.Group[0], v.Frets[0])
			for s := 1; s < 3; s++ {
				m := fretboard.StandardTuning.MidiAt(v.Group[s], v.Frets[s])
				if m < lowestMidi {
					lowest, lowestMidi = v.Notes[s], m
				}
			}
			switch int(lowest.PitchClass.Transpose(-int(root))) {
			case 0:
				assert.Equal(t, InversionRoot, v.Inversion)
			case 3:
				assert.Equal(t, InversionFirst, v.Inversion)
			case 7:
				assert.Equal(t, InversionSecond, v.Inversion)
			}
		}
	}
}

func TestGenerate_TransformDoesNotMutateReference(t *testing.T) {
	g := newTestGenerator()
	before := fmt.Sprint(g.Generate("A", "major"))
	g.Generate("A", "minor")
	g.Generate("A", "dim")
	g.Generate("A", "aug")
	assert.Equal(t, before, fmt.Sprint(g.Generate("A", "major")),
		"derived qualities must not alias the reference table")
}

func TestGenerate_UnsupportedReturnsNil(t *testing.T) {
	g := newTestGenerator()
	assert.Nil(t, g.Generate("E", "no-such-quality"))
	assert.Nil(t, g.Generate("H#", "major"))
	// Non-triad formulas are out of the voicing generator's scope.
	assert.Nil(t, g.Generate("E", "dom7"))
}

func TestGenerate_FlatKeySpelling(t *testing.T) {
	g := newTestGenerator()
	groups := g.Generate("Eb", "major")
	require.NotNil(t, groups)
	for _, sg := range groups {
		for _, v := range sg.Voicings {
			for _, n := range v.Notes {
				assert.NotContains(t, string(n.Name), "#", "frets %v", v.Frets)
			}
		}
	}
}
