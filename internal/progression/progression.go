// Package progression recommends and renders practice chord progressions.
//
// The template catalog and its flavor buckets live in templates.yaml,
// loaded once into read-only tables. Recommendation is a deterministic
// weighted ranking: a flavor is selected from the display context, catalog
// templates are scored against it and the visible note profile, and the
// ranking is stable on catalog order. Identical contexts always produce
// identical ordered results.
package progression

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bagpyp/fretwork/internal/theory"
)

//go:embed templates.yaml
var templatesYAML []byte

// Template is a static catalog entry: a progression expressed as
// Roman-numeral tokens with a practice rationale.
type Template struct {
	ID        string `yaml:"id" json:"id"`
	Title     string `yaml:"title" json:"title"`
	Numerals  string `yaml:"numerals" json:"numerals"`
	Rationale string `yaml:"rationale" json:"rationale"`
}

// PracticeProgression is a template rendered into a concrete key, plus the
// score it earned for the context it was recommended in. Derived output;
// recomputed per context, never mutated.
type PracticeProgression struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Numerals   string `json:"numerals"`
	ChordNames string `json:"chord_names"`
	Rationale  string `json:"rationale"`
	Score      int    `json:"score"`
}

// Context is the display selection the recommendation engine scores
// against: plain values, no state.
type Context struct {
	// Key is the tonal-center key, pitch-class-spelled ("A", "Bb").
	Key string
	// ScaleType is the active scale id or alias.
	ScaleType string
	// Mode is the tonal-center mode: "major" or "minor".
	Mode string
	// HexatonicMode names an active hexatonic overlay ("blues"), or "".
	HexatonicMode string
	// VisibleTargetIntervals are the active target-tone semitone offsets
	// from the tonal-center root.
	VisibleTargetIntervals []int
}

// Engine ranks catalog templates for a context. Immutable after New.
type Engine struct {
	catalog   *theory.Catalog
	templates []Template
	index     map[string]int      // template id -> catalog position
	buckets   map[Flavor][]string // flavor -> template ids, best first
}

// catalogFile mirrors templates.yaml.
type catalogFile struct {
	Templates []Template          `yaml:"templates"`
	Flavors   map[string][]string `yaml:"flavors"`
}

// New loads the embedded template catalog. Fails only on a malformed
// catalog definition (an internal bug, surfaced at startup).
func New(catalog *theory.Catalog) (*Engine, error) {
	var file catalogFile
	if err := yaml.Unmarshal(templatesYAML, &file); err != nil {
		return nil, fmt.Errorf("parse templates.yaml: %w", err)
	}
	e := &Engine{
		catalog:   catalog,
		templates: file.Templates,
		index:     make(map[string]int, len(file.Templates)),
		buckets:   make(map[Flavor][]string, len(file.Flavors)),
	}
	for i, tpl := range file.Templates {
		if tpl.ID == "" || tpl.Numerals == "" {
			return nil, fmt.Errorf("templates.yaml: template %d missing id or numerals", i)
		}
		if _, dup := e.index[tpl.ID]; dup {
			return nil, fmt.Errorf("templates.yaml: duplicate template id %q", tpl.ID)
		}
		e.index[tpl.ID] = i
	}
	for name, ids := range file.Flavors {
		for _, id := range ids {
			if _, ok := e.index[id]; !ok {
				return nil, fmt.Errorf("templates.yaml: flavor %s references unknown template %q", name, id)
			}
		}
		e.buckets[Flavor(name)] = ids
	}
	return e, nil
}

// Templates returns the catalog in declaration order.
func (e *Engine) Templates() []Template {
	return e.templates
}
