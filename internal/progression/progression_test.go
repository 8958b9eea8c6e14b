package progression

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagpyp/fretwork/internal/theory"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(theory.Default())
	require.NoError(t, err)
	return e
}

func TestNew_CatalogLoads(t *testing.T) {
	e := newTestEngine(t)
	assert.NotEmpty(t, e.Templates())
	for _, tpl := range e.Templates() {
		assert.NotEmpty(t, tpl.ID)
		assert.NotEmpty(t, tpl.Title)
		assert.NotEmpty(t, tpl.Numerals)
		assert.NotEmpty(t, tpl.Rationale)
	}
}

func TestRenderRoman_TwelveBarBluesInE(t *testing.T) {
	e := newTestEngine(t)
	got := e.RenderRoman("I7 I7 I7 I7 | IV7 IV7 I7 I7 | V7 IV7 I7 V7", "E")
	assert.Equal(t, "E7 E7 E7 E7 | A7 A7 E7 E7 | B7 A7 E7 B7", got)
}

func TestRenderRoman_FlatKeySpelling(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "Bb Ab Eb", e.RenderRoman("I bVII IV", "Bb"))
}

func TestRenderRoman_CaseDerivedQuality(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "Am Dm E7", e.RenderRoman("i iv V7", "A"))
	assert.Equal(t, "F#m", e.RenderRoman("vi", "A"))
	// A bare 7 on a lower-case token is a minor seventh chord.
	assert.Equal(t, "Am7", e.RenderRoman("i7", "A"))
	assert.Equal(t, "Bm7b5", e.RenderRoman("iim7b5", "A"))
	assert.Equal(t, "Amaj7", e.RenderRoman("Imaj7", "A"))
	// Flat accidental on the token forces flat spelling of that chord.
	assert.Equal(t, "G C", e.RenderRoman("I IV", "G"))
	assert.Equal(t, "Eb", e.RenderRoman("bVI", "G"))
}

func TestRenderRoman_PassThrough(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "E ?? A", e.RenderRoman("I ?? IV", "E"))
	assert.Equal(t, "I IV", e.RenderRoman("I IV", "H#"))
}

func TestSelectFlavor_RuleChain(t *testing.T) {
	e := newTestEngine(t)
	cases := []struct {
		name string
		ctx  Context
		want Flavor
	}{
		{"major default", Context{Key: "C", ScaleType: "major", Mode: "major"}, FlavorIonian},
		{"minor default", Context{Key: "A", ScaleType: "minor", Mode: "minor"}, FlavorAeolian},
		{"dorian scale", Context{Key: "D", ScaleType: "dorian", Mode: "minor"}, FlavorDorian},
		{"minor with visible sixth", Context{Key: "A", ScaleType: "minor-pentatonic", Mode: "minor", VisibleTargetIntervals: []int{9}}, FlavorDorian},
		{"phrygian scale", Context{Key: "E", ScaleType: "phrygian", Mode: "minor"}, FlavorPhrygianTritone},
		{"mixolydian scale", Context{Key: "G", ScaleType: "mixolydian", Mode: "major"}, FlavorMixolydianBlues},
		{"major with visible b7", Context{Key: "A", ScaleType: "major-pentatonic", Mode: "major", VisibleTargetIntervals: []int{10}}, FlavorMixolydianBlues},
		{"minor pentatonic with b5", Context{Key: "A", ScaleType: "minor-pentatonic", Mode: "minor", VisibleTargetIntervals: []int{6}}, FlavorMinorBlues},
		{"hexatonic blues with b5", Context{Key: "A", ScaleType: "minor", Mode: "minor", HexatonicMode: "blues", VisibleTargetIntervals: []int{6}}, FlavorMinorBlues},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.SelectFlavor(tc.ctx))
		})
	}
}

// With the b5 visible over a minor-pentatonic context, the 12-bar blues
// must rank first.
func TestRecommend_BluesTopsMinorPentatonicWithFlatFive(t *testing.T) {
	e := newTestEngine(t)
	got := e.Recommend(Context{
		Key:                    "A",
		ScaleType:              "minor-pentatonic",
		Mode:                   "minor",
		VisibleTargetIntervals: []int{6},
	})
	require.NotEmpty(t, got)
	assert.Equal(t, "blues12", got[0].ID)
	assert.Equal(t, "A7 A7 A7 A7 | D7 D7 A7 A7 | E7 D7 A7 E7", got[0].ChordNames)
}

// The full ranking for the pinned context is a golden fixture; the scoring
// weights must not drift.
func TestRecommend_GoldenRanking(t *testing.T) {
	e := newTestEngine(t)
	got := e.Recommend(Context{
		Key:                    "A",
		ScaleType:              "minor-pentatonic",
		Mode:                   "minor",
		VisibleTargetIntervals: []int{6},
	})

	type rankedID struct {
		ID    string `json:"id"`
		Score int    `json:"score"`
	}
	ranking := make([]rankedID, len(got))
	for i, p := range got {
		ranking[i] = rankedID{ID: p.ID, Score: p.Score}
	}
	data, err := json.MarshalIndent(ranking, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "minor_pentatonic_b5_ranking", data)
}

func TestRecommend_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	ctx := Context{Key: "E", ScaleType: "blues", Mode: "minor", HexatonicMode: "blues", VisibleTargetIntervals: []int{6, 9}}
	first := e.Recommend(ctx)
	second := e.Recommend(ctx)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestRecommend_TopTenDeduplicated(t *testing.T) {
	e := newTestEngine(t)
	got := e.Recommend(Context{Key: "C", ScaleType: "major", Mode: "major"})
	assert.LessOrEqual(t, len(got), 10)
	seen := map[string]bool{}
	for _, p := range got {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestRecommend_BadKeyReturnsNil(t *testing.T) {
	e := newTestEngine(t)
	assert.Nil(t, e.Recommend(Context{Key: "X", ScaleType: "major", Mode: "major"}))
}
