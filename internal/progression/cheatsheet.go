package progression

import (
	"strings"

	"github.com/bagpyp/fretwork/internal/theory"
)

// CheatSheetEntry maps one chord symbol to its spelled notes.
type CheatSheetEntry struct {
	Chord string            `json:"chord"`
	Notes []theory.NoteName `json:"notes"`
}

// CheatSheet is the deduplicated chord->notes mapping for a set of
// progressions, plus the note pool accumulated across all of them in
// first-appearance order.
type CheatSheet struct {
	Entries     []CheatSheetEntry `json:"entries"`
	UniqueNotes []theory.NoteName `json:"unique_notes"`
}

// CheatSheetFor builds the cheat sheet from rendered progressions: chord
// symbols are collected first-seen in progression order (bar separators
// ignored), resolved to notes through the theory catalog, and every note
// joins the unique pool the first time it appears. Unresolvable chord
// symbols are skipped.
func (e *Engine) CheatSheetFor(progressions []PracticeProgression) CheatSheet {
	sheet := CheatSheet{}
	seenChord := make(map[string]bool)
	seenNote := make(map[theory.NoteName]bool)

	for _, p := range progressions {
		for _, sym := range strings.Fields(p.ChordNames) {
			if sym == barToken || seenChord[sym] {
				continue
			}
			seenChord[sym] = true
			notes, ok := e.chordNotes(sym)
			if !ok {
				continue
			}
			sheet.Entries = append(sheet.Entries, CheatSheetEntry{Chord: sym, Notes: notes})
			for _, n := range notes {
				if !seenNote[n] {
					seenNote[n] = true
					sheet.UniqueNotes = append(sheet.UniqueNotes, n)
				}
			}
		}
	}
	return sheet
}

// chordNotes resolves a chord symbol ("E7", "Bbm7b5") to its spelled
// notes: root plus the formula offsets, flat names when the root is
// flat-spelled or a flat key, sharp names otherwise.
func (e *Engine) chordNotes(symbol string) ([]theory.NoteName, bool) {
	rootLen := 1
	if len(symbol) == 0 {
		return nil, false
	}
	for rootLen < len(symbol) {
		c := symbol[rootLen]
		if c == '#' || c == 'b' {
			rootLen++
			continue
		}
		// Multibyte accidental glyphs.
		if strings.HasPrefix(symbol[rootLen:], "♯") || strings.HasPrefix(symbol[rootLen:], "♭") {
			rootLen += len("♯")
			continue
		}
		break
	}
	rootName := symbol[:rootLen]
	root, ok := theory.ParseNote(rootName)
	if !ok {
		return nil, false
	}
	id, ok := e.catalog.ResolveChordID(symbol[rootLen:])
	if !ok {
		return nil, false
	}
	formula, _ := e.catalog.Chord(id)

	flat := theory.UsesFlats(rootName)
	pcs := formula.PitchClasses(root)
	notes := make([]theory.NoteName, len(pcs))
	for i, pc := range pcs {
		notes[i] = pc.Name(flat)
	}
	return notes, true
}
