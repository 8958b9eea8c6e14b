package boxes

import (
	"github.com/bagpyp/fretwork/internal/fretboard"
	"github.com/bagpyp/fretwork/internal/theory"
)

const (
	// minTonePositions is the minimum number of positions each enabled
	// target tone must contribute; the completion pass tops up to it.
	minTonePositions = 2
	// belowWindowPenalty is added to the distance score of completion
	// candidates that sit below the box window.
	belowWindowPenalty = 2
)

// InjectTargetTones layers the given target tones into a box pattern.
//
// Per tone, two explicit phases run in order:
//
//  1. Flood: every (string, fret) inside the box window whose pitch class
//     matches the tone joins the pattern and the marker list.
//  2. Completion: if the flood found fewer than minTonePositions positions,
//     the full fretboard is scanned for further matches, scored by distance
//     from the focus fret just past the window (below-window candidates
//     penalized, ties to the lower fret), and the best unclaimed candidate
//     is added greedily until the minimum is met or candidates run out.
//
// Tones are processed independently; their marker sets are not deduplicated
// against each other. Root positions of the returned pattern are recomputed
// from the merged pattern, never reused from the pre-injection list.
func (g *Generator) InjectTargetTones(pattern BoxShapePattern, tones []TargetTone) (BoxShapePattern, []Marker) {
	merged := pattern.clone()
	var markers []Marker

	for _, tone := range tones {
		targetPC := pattern.Root.Transpose(tone.Offset)
		claimed := make(map[Position]bool)

		// Flood pass over the box window.
		found := 0
		for s := 0; s < fretboard.NumStrings; s++ {
			for f := pattern.Window.Start; f <= pattern.Window.End; f++ {
				if g.tuning.PitchClassAt(s, f) != targetPC {
					continue
				}
				pos := Position{String: s, Fret: f}
				if !merged.contains(pos) {
					merged.add(pos)
				}
				markers = append(markers, Marker{Tone: tone.ID, Position: pos, Color: tone.Color})
				claimed[pos] = true
				found++
			}
		}

		// Completion pass over the full board.
		focus := pattern.Window.End + 1
		for found < minTonePositions {
			best, ok := bestCandidate(g, targetPC, pattern.Window, focus, claimed)
			if !ok {
				break
			}
			if !merged.contains(best) {
				merged.add(best)
			}
			markers = append(markers, Marker{Tone: tone.ID, Position: best, Color: tone.Color})
			claimed[best] = true
			found++
		}
	}

	// Recompute root positions from the merged pattern so halo rendering
	// stays consistent after injection.
	merged.Roots = nil
	for s := 0; s < fretboard.NumStrings; s++ {
		for _, f := range merged.Frets[s] {
			if g.tuning.PitchClassAt(s, f) == merged.Root {
				merged.Roots = append(merged.Roots, Position{String: s, Fret: f})
			}
		}
	}
	return merged, markers
}

// bestCandidate scans frets 0..MaxFret for the best unclaimed position of
// the target pitch class. Score is distance from the focus fret, plus a
// flat penalty below the window; ties break to the lower fret, then the
// lower string.
func bestCandidate(g *Generator, targetPC theory.PitchClass, window Window, focus int, claimed map[Position]bool) (Position, bool) {
	var best Position
	bestScore := -1
	for s := 0; s < fretboard.NumStrings; s++ {
		for f := 0; f <= fretboard.MaxFret; f++ {
			if g.tuning.PitchClassAt(s, f) != targetPC {
				continue
			}
			pos := Position{String: s, Fret: f}
			if claimed[pos] {
				continue
			}
			score := f - focus
			if score < 0 {
				score = -score
			}
			if f < window.Start {
				score += belowWindowPenalty
			}
			if bestScore < 0 || score < bestScore ||
				(score == bestScore && (f < best.Fret || f == best.Fret && s < best.String)) {
				best, bestScore = pos, score
			}
		}
	}
	return best, bestScore >= 0
}
