package theory

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed catalog.cue
var catalogCUE string

// FormulaKind distinguishes chord formulas from scale formulas. Ids are
// unique within a kind ("major" names both a chord and a scale).
type FormulaKind string

const (
	KindChord FormulaKind = "chord"
	KindScale FormulaKind = "scale"
)

// Formula is an immutable chord or scale definition: its canonical symbol,
// interval semitone offsets from the root, and lookup aliases.
type Formula struct {
	ID        string
	Kind      FormulaKind
	Symbol    string
	Tokens    []string // interval tokens as written in catalog.cue
	Intervals []int    // semitone offsets from the root, in token order
	Aliases   []string
}

// PitchClasses returns the formula realized from the given root, in
// interval order. Offsets an octave or more up fold back into 0..11.
func (f *Formula) PitchClasses(root PitchClass) []PitchClass {
	pcs := make([]PitchClass, len(f.Intervals))
	for i, iv := range f.Intervals {
		pcs[i] = root.Transpose(iv)
	}
	return pcs
}

// PitchClassSet returns the formula's pitch classes from the given root as
// a membership set.
func (f *Formula) PitchClassSet(root PitchClass) map[PitchClass]bool {
	set := make(map[PitchClass]bool, len(f.Intervals))
	for _, pc := range f.PitchClasses(root) {
		set[pc] = true
	}
	return set
}

// Catalog holds the compiled formula tables and their alias indexes. It is
// built once and read-only afterwards.
type Catalog struct {
	chords     map[string]*Formula
	scales     map[string]*Formula
	chordAlias map[string]string
	scaleAlias map[string]string
}

// formulaDef mirrors the #Formula shape in catalog.cue for decoding.
type formulaDef struct {
	Symbol    string   `json:"symbol"`
	Intervals []string `json:"intervals"`
	Aliases   []string `json:"aliases"`
}

// LoadCatalog compiles catalog.cue into a Catalog. Any malformed interval
// token or duplicate alias is reported as a CatalogError; this can only
// happen when the embedded definitions themselves are wrong, so callers
// normally use Default instead and let the failure surface at startup.
func LoadCatalog() (*Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(catalogCUE, cue.Filename("catalog.cue"))
	if err := v.Err(); err != nil {
		return nil, &CatalogError{Code: ErrBadFormula, Message: fmt.Sprintf("compile catalog.cue: %v", err)}
	}

	c := &Catalog{
		chords:     make(map[string]*Formula),
		scales:     make(map[string]*Formula),
		chordAlias: make(map[string]string),
		scaleAlias: make(map[string]string),
	}
	if err := c.loadKind(v, "chords", KindChord); err != nil {
		return nil, err
	}
	if err := c.loadKind(v, "scales", KindScale); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) loadKind(v cue.Value, field string, kind FormulaKind) error {
	it, err := v.LookupPath(cue.ParsePath(field)).Fields()
	if err != nil {
		return &CatalogError{Code: ErrBadFormula, Message: fmt.Sprintf("%s: %v", field, err)}
	}
	for it.Next() {
		id := strings.Trim(it.Selector().String(), `"`)
		var def formulaDef
		if err := it.Value().Decode(&def); err != nil {
			return &CatalogError{Code: ErrBadFormula, Formula: id, Message: err.Error()}
		}
		f := &Formula{
			ID:      id,
			Kind:    kind,
			Symbol:  def.Symbol,
			Tokens:  def.Intervals,
			Aliases: def.Aliases,
		}
		for _, tok := range def.Intervals {
			offset, err := ParseInterval(tok)
			if err != nil {
				ce := err.(*CatalogError)
				ce.Formula = id
				return ce
			}
			f.Intervals = append(f.Intervals, offset)
		}
		if err := c.register(kind, f); err != nil {
			return err
		}
	}
	return nil
}

// register stores the formula and indexes its id, symbol, and aliases under
// their normalized forms.
func (c *Catalog) register(kind FormulaKind, f *Formula) error {
	table, index := c.chords, c.chordAlias
	if kind == KindScale {
		table, index = c.scales, c.scaleAlias
	}
	if _, dup := table[f.ID]; dup {
		return &CatalogError{Code: ErrBadFormula, Formula: f.ID, Message: "duplicate formula id"}
	}
	table[f.ID] = f

	names := append([]string{f.ID, f.Symbol}, f.Aliases...)
	for _, name := range names {
		key := normalizeAlias(name)
		if prev, ok := index[key]; ok {
			if prev != f.ID {
				return &CatalogError{Code: ErrDuplicateAlias, Formula: f.ID,
					Message: fmt.Sprintf("alias %q already names %s", name, prev)}
			}
			continue
		}
		index[key] = f.ID
	}
	return nil
}

// ResolveChordID resolves a chord name or alias to its formula id.
// Returns ok=false on a miss; it never fails.
func (c *Catalog) ResolveChordID(nameOrAlias string) (string, bool) {
	id, ok := c.chordAlias[normalizeAlias(nameOrAlias)]
	return id, ok
}

// ResolveScaleID resolves a scale name or alias to its formula id.
func (c *Catalog) ResolveScaleID(nameOrAlias string) (string, bool) {
	id, ok := c.scaleAlias[normalizeAlias(nameOrAlias)]
	return id, ok
}

// Chord returns the chord formula for an id.
func (c *Catalog) Chord(id string) (*Formula, bool) {
	f, ok := c.chords[id]
	return f, ok
}

// Scale returns the scale formula for an id.
func (c *Catalog) Scale(id string) (*Formula, bool) {
	f, ok := c.scales[id]
	return f, ok
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the process-wide catalog, compiling it on first use.
// A compile failure is a catalog definition bug and panics immediately
// rather than limping along with partial tables.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadCatalog()
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultCatalog
}
