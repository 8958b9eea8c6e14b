package voicing

import (
	"sort"
	"sync"

	"github.com/bagpyp/fretwork/internal/fretboard"
	"github.com/bagpyp/fretwork/internal/theory"
)

// maxFretSpan is the widest playable stretch within one shape.
const maxFretSpan = 4

// Generator produces triad voicings against a fixed tuning and catalog.
// The reference major table is built once and never mutated; derived
// voicings are fresh values.
type Generator struct {
	catalog *theory.Catalog
	tuning  fretboard.Tuning

	refOnce sync.Once
	// reference major voicings keyed by (root pitch class, group index),
	// ordered by ascending average fret.
	ref map[refKey][]Voicing
}

type refKey struct {
	root  theory.PitchClass
	group int
}

// NewGenerator creates a Generator over the given catalog and tuning.
func NewGenerator(catalog *theory.Catalog, tuning fretboard.Tuning) *Generator {
	return &Generator{catalog: catalog, tuning: tuning}
}

// Generate returns playable voicings of the chord type at the given key,
// one entry per string group that yielded any, ordered low group to high.
//
// Returns nil when the key or chord type is unresolvable, the chord is not
// a triad, or no group yields a voicing. A result with fewer than four
// groups means partial support; see FullySupported.
func (g *Generator) Generate(key, chordType string) []StringGroupVoicings {
	root, ok := theory.ParseNote(key)
	if !ok {
		return nil
	}
	id, ok := g.catalog.ResolveChordID(chordType)
	if !ok {
		return nil
	}
	target, _ := g.catalog.Chord(id)
	if len(target.Intervals) != 3 || target.Intervals[0] != 0 {
		return nil
	}
	major, _ := g.catalog.Chord("major")

	g.refOnce.Do(g.buildReferenceTable)

	var out []StringGroupVoicings
	for gi := range Groups {
		refs := g.ref[refKey{root: root, group: gi}]
		var voicings []Voicing
		for _, rv := range refs {
			v, ok := g.transform(rv, root, key, major, target)
			if !ok {
				continue
			}
			voicings = append(voicings, v)
		}
		if len(voicings) > 0 {
			out = append(out, StringGroupVoicings{Group: Groups[gi], Voicings: voicings})
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// buildReferenceTable enumerates every in-span major-triad shape for all 12
// roots and all four groups. Shapes are exact: each of root, third, and
// fifth sounds exactly once.
func (g *Generator) buildReferenceTable() {
	major, _ := g.catalog.Chord("major")
	g.ref = make(map[refKey][]Voicing)
	for root := theory.PitchClass(0); root < 12; root++ {
		want := major.PitchClassSet(root)
		for gi, group := range Groups {
			var shapes []Voicing
			for f0 := 0; f0 <= fretboard.MaxFret; f0++ {
				for f1 := 0; f1 <= fretboard.MaxFret; f1++ {
					for f2 := 0; f2 <= fretboard.MaxFret; f2++ {
						frets := [3]int{f0, f1, f2}
						if fretSpan(frets) > maxFretSpan {
							continue
						}
						if !exactMultiset(g.tuning, group, frets, want) {
							continue
						}
						shapes = append(shapes, g.makeVoicing(group, frets, root, ""))
					}
				}
			}
			sort.SliceStable(shapes, func(i, j int) bool {
				if shapes[i].AvgFret != shapes[j].AvgFret {
					return shapes[i].AvgFret < shapes[j].AvgFret
				}
				return shapes[i].Frets[0] < shapes[j].Frets[0]
			})
			g.ref[refKey{root: root, group: gi}] = shapes
		}
	}
}

// transform derives a voicing of the target quality from a reference major
// voicing: every string whose chord-tone offset differs between the major
// and target formulas shifts by the semitone difference, on the same
// string. The transformation fails when a shift would need a negative fret
// or when the result is not exactly the target's pitch-class multiset.
func (g *Generator) transform(ref Voicing, root theory.PitchClass, key string, major, target *theory.Formula) (Voicing, bool) {
	frets := ref.Frets
	for i := range major.Intervals {
		if major.Intervals[i] == target.Intervals[i] {
			continue
		}
		delta := target.Intervals[i] - major.Intervals[i]
		fromPC := root.Transpose(major.Intervals[i])
		shifted := false
		for s := 0; s < 3; s++ {
			if g.tuning.PitchClassAt(ref.Group[s], frets[s]) != fromPC {
				continue
			}
			if frets[s]+delta < 0 {
				return Voicing{}, false
			}
			frets[s] += delta
			shifted = true
			break
		}
		if !shifted {
			return Voicing{}, false
		}
	}
	if fretSpan(frets) > maxFretSpan {
		return Voicing{}, false
	}
	if !exactMultiset(g.tuning, ref.Group, frets, target.PitchClassSet(root)) {
		return Voicing{}, false
	}
	return g.makeVoicing(ref.Group, frets, root, key), true
}

// makeVoicing assembles a Voicing value, recomputing the inversion from the
// lowest-sounding note's role against the root.
func (g *Generator) makeVoicing(group StringGroup, frets [3]int, root theory.PitchClass, key string) Voicing {
	v := Voicing{Group: group, Frets: frets}
	lowest := 0
	for s := 0; s < 3; s++ {
		v.Notes[s] = g.tuning.NoteAt(group[s], frets[s], key)
		if g.tuning.MidiAt(group[s], frets[s]) < g.tuning.MidiAt(group[lowest], frets[lowest]) {
			lowest = s
		}
	}
	switch int(v.Notes[lowest].PitchClass.Transpose(-int(root))) {
	case 0:
		v.Inversion = InversionRoot
	case 3, 4:
		v.Inversion = InversionFirst
	case 6, 7, 8:
		v.Inversion = InversionSecond
	default:
		v.Inversion = InversionUnknown
	}
	v.AvgFret = float64(frets[0]+frets[1]+frets[2]) / 3
	return v
}

func fretSpan(frets [3]int) int {
	lo, hi := frets[0], frets[0]
	for _, f := range frets[1:] {
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	return hi - lo
}

// exactMultiset reports whether the three sounded pitch classes cover the
// wanted set exactly once each: no doubled tones, no foreign tones.
func exactMultiset(t fretboard.Tuning, group StringGroup, frets [3]int, want map[theory.PitchClass]bool) bool {
	if len(want) != 3 {
		return false
	}
	seen := make(map[theory.PitchClass]int, 3)
	for s := 0; s < 3; s++ {
		seen[t.PitchClassAt(group[s], frets[s])]++
	}
	for pc := range want {
		if seen[pc] != 1 {
			return false
		}
	}
	return len(seen) == 3
}
