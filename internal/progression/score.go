package progression

import (
	"sort"
	"strings"

	"github.com/bagpyp/fretwork/internal/theory"
)

// Scoring weights. These are hand-tuned and pinned by the golden ranking
// fixtures; changing any of them requires regenerating the goldens.
const (
	flavorBucketBonus    = 150
	bucketPositionStep   = 20 // positional bonus is 60 - step*i, floored at 0
	bucketPositionBase   = 60
	modeMatchBonus       = 20
	modeMismatchPenalty  = -25
	inProfileBonus       = 4
	outProfilePenalty    = -3
	targetCoveredBonus   = 40
	targetMissingPenalty = -15
	tonicBonus           = 5
	dominantBonus        = 5
	maxResults           = 10
)

// Recommend scores every catalog template against the context and returns
// the top ranked progressions, rendered into the context key: sorted by
// descending score, stable on catalog order, deduplicated by id, first 10.
func (e *Engine) Recommend(ctx Context) []PracticeProgression {
	tonic, ok := theory.ParseNote(ctx.Key)
	if !ok {
		return nil
	}
	flavor := e.SelectFlavor(ctx)
	bucket := e.buckets[flavor]
	profile := e.visibleProfile(ctx)

	scored := make([]PracticeProgression, 0, len(e.templates))
	for _, tpl := range e.templates {
		scored = append(scored, PracticeProgression{
			ID:         tpl.ID,
			Title:      tpl.Title,
			Numerals:   tpl.Numerals,
			ChordNames: e.RenderRoman(tpl.Numerals, ctx.Key),
			Rationale:  tpl.Rationale,
			Score:      e.score(tpl, tonic, ctx, bucket, profile),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	seen := make(map[string]bool, maxResults)
	out := make([]PracticeProgression, 0, maxResults)
	for _, p := range scored {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
		if len(out) == maxResults {
			break
		}
	}
	return out
}

// visibleProfile is the currently displayed interval set: the active
// scale's intervals plus the active target intervals.
func (e *Engine) visibleProfile(ctx Context) map[int]bool {
	scaleID, ok := e.catalog.ResolveScaleID(ctx.ScaleType)
	if !ok {
		if ctx.Mode == "minor" {
			scaleID = "minor-pentatonic"
		} else {
			scaleID = "major"
		}
	}
	profile := make(map[int]bool)
	if scale, ok := e.catalog.Scale(scaleID); ok {
		for _, iv := range scale.Intervals {
			profile[iv%12] = true
		}
	}
	for _, iv := range ctx.VisibleTargetIntervals {
		profile[((iv%12)+12)%12] = true
	}
	return profile
}

// score computes the weighted heuristic for one template.
func (e *Engine) score(tpl Template, tonic theory.PitchClass, ctx Context, bucket []string, profile map[int]bool) int {
	score := 0

	inBucket := false
	for i, id := range bucket {
		if id == tpl.ID {
			inBucket = true
			score += flavorBucketBonus
			if pos := bucketPositionBase - bucketPositionStep*i; pos > 0 {
				score += pos
			}
			break
		}
	}
	if !inBucket {
		if e.templateMode(tpl) == ctx.Mode {
			score += modeMatchBonus
		} else {
			score += modeMismatchPenalty
		}
	}

	tones, roots := e.templateIntervals(tpl)
	for iv := range tones {
		if profile[iv] {
			score += inProfileBonus
		} else {
			score += outProfilePenalty
		}
	}

	for _, target := range ctx.VisibleTargetIntervals {
		if tones[((target%12)+12)%12] {
			score += targetCoveredBonus
		} else {
			score += targetMissingPenalty
		}
	}

	if roots[0] {
		score += tonicBonus
	}
	if roots[7] {
		score += dominantBonus
	}
	return score
}

// templateMode reads the template's implied tonal-center mode from the
// case of its first numeral token.
func (e *Engine) templateMode(tpl Template) string {
	for _, tok := range strings.Fields(tpl.Numerals) {
		if tok == barToken {
			continue
		}
		rt, ok := parseRomanToken(tok)
		if !ok {
			continue
		}
		if rt.minor {
			return "minor"
		}
		return "major"
	}
	return "major"
}

// templateIntervals collects the chord-tone intervals and chord-root
// intervals (relative to the tonic) over the template's unique chords.
func (e *Engine) templateIntervals(tpl Template) (tones, roots map[int]bool) {
	tones = make(map[int]bool)
	roots = make(map[int]bool)
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(tpl.Numerals) {
		if tok == barToken || seen[tok] {
			continue
		}
		seen[tok] = true
		rt, ok := parseRomanToken(tok)
		if !ok {
			continue
		}
		rootInterval := (majorScaleDegreeOffset[rt.degree] + rt.accidental + 12) % 12
		roots[rootInterval] = true
		formula, ok := e.chordFormula(rt)
		if !ok {
			tones[rootInterval] = true
			continue
		}
		for _, offset := range formula.Intervals {
			tones[(rootInterval+offset)%12] = true
		}
	}
	return tones, roots
}

// chordFormula resolves a token's quality suffix to a chord formula,
// applying the case-derived family the same way rendering does.
func (e *Engine) chordFormula(rt romanToken) (*theory.Formula, bool) {
	id, ok := e.catalog.ResolveChordID(rt.chordSuffix())
	if !ok {
		return nil, false
	}
	return e.catalog.Chord(id)
}
