package progression

// Flavor is an internal bucket of curated templates matching a specific
// mode / tonal-center / color-tone combination.
type Flavor string

const (
	FlavorIonian          Flavor = "ionian"
	FlavorAeolian         Flavor = "aeolian"
	FlavorDorian          Flavor = "dorian"
	FlavorPhrygianTritone Flavor = "phrygian-tritone"
	FlavorMixolydianBlues Flavor = "mixolydian-blues"
	FlavorMinorBlues      Flavor = "minor-blues"
)

// Blues-defining intervals, as semitone offsets from the tonal center.
const (
	intervalFlatThird   = 3
	intervalFourth      = 5
	intervalFlatFifth   = 6
	intervalMajorSixth  = 9
	intervalFlatSeventh = 10
)

// SelectFlavor picks the template bucket for a context. The rule chain is
// ordered and deterministic: the first matching rule wins.
func (e *Engine) SelectFlavor(ctx Context) Flavor {
	scaleID, _ := e.catalog.ResolveScaleID(ctx.ScaleType)
	visible := make(map[int]bool, len(ctx.VisibleTargetIntervals))
	for _, iv := range ctx.VisibleTargetIntervals {
		visible[iv] = true
	}
	minorMode := ctx.Mode == "minor"
	pentatonicFamily := scaleID == "minor-pentatonic" || scaleID == "major-pentatonic" || scaleID == "blues"

	switch {
	case scaleID == "phrygian":
		return FlavorPhrygianTritone
	case minorMode && visible[intervalFlatFifth] &&
		(pentatonicFamily || ctx.HexatonicMode == "blues"):
		return FlavorMinorBlues
	case scaleID == "mixolydian",
		!minorMode && visible[intervalFlatSeventh]:
		return FlavorMixolydianBlues
	case scaleID == "dorian",
		minorMode && visible[intervalMajorSixth]:
		return FlavorDorian
	case minorMode:
		return FlavorAeolian
	}
	return FlavorIonian
}
