package boxes

import (
	"fmt"

	"github.com/bagpyp/fretwork/internal/fretboard"
	"github.com/bagpyp/fretwork/internal/theory"
)

// boxWindowSpan is the inclusive fret width of one box shape.
const boxWindowSpan = 4

// Generator builds box patterns against a fixed tuning and catalog.
type Generator struct {
	catalog *theory.Catalog
	tuning  fretboard.Tuning
}

// NewGenerator creates a box-pattern Generator.
func NewGenerator(catalog *theory.Catalog, tuning fretboard.Tuning) *Generator {
	return &Generator{catalog: catalog, tuning: tuning}
}

// GeneratePatterns builds one box per scale tone: 5 boxes for pentatonic
// families, 6 for the blues hexatonic, 7 for heptatonic/modal families.
// Box windows are anchored at the scale-tone frets of the low string within
// the first octave; every fret in a generated pattern belongs to the
// scale's pitch-class set. Returns nil when the key or scale is
// unresolvable.
func (g *Generator) GeneratePatterns(key, scaleType string) []BoxShapePattern {
	root, ok := theory.ParseNote(key)
	if !ok {
		return nil
	}
	id, ok := g.catalog.ResolveScaleID(scaleType)
	if !ok {
		return nil
	}
	scale, _ := g.catalog.Scale(id)
	set := scale.PitchClassSet(root)

	// Scale-tone frets on the low string within the first octave anchor
	// the boxes.
	var anchors []int
	for f := 0; f < 12; f++ {
		if set[g.tuning.PitchClassAt(0, f)] {
			anchors = append(anchors, f)
		}
	}

	patterns := make([]BoxShapePattern, 0, len(anchors))
	for i, start := range anchors {
		p := BoxShapePattern{
			ID:     fmt.Sprintf("%s-%s-box-%d", key, id, i+1),
			Label:  fmt.Sprintf("Box %d", i+1),
			Root:   root,
			Window: Window{Start: start, End: start + boxWindowSpan},
		}
		for s := 0; s < fretboard.NumStrings; s++ {
			for f := p.Window.Start; f <= p.Window.End; f++ {
				pc := g.tuning.PitchClassAt(s, f)
				if !set[pc] {
					continue
				}
				p.Frets[s] = append(p.Frets[s], f)
				if pc == root {
					p.Roots = append(p.Roots, Position{String: s, Fret: f})
				}
			}
		}
		patterns = append(patterns, p)
	}
	return patterns
}
