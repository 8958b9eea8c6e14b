package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bagpyp/fretwork/internal/boxes"
	"github.com/bagpyp/fretwork/internal/fretboard"
	"github.com/bagpyp/fretwork/internal/theory"
)

// BoxesOptions holds flags for the boxes command.
type BoxesOptions struct {
	*RootOptions
	Targets []string // target-tone ids to inject
}

// BoxResult is one box pattern with its injected markers.
type BoxResult struct {
	Pattern boxes.BoxShapePattern `json:"pattern"`
	Markers []boxes.Marker        `json:"markers,omitempty"`
}

// NewBoxesCommand creates the boxes command.
func NewBoxesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BoxesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "boxes <key> <scale>",
		Short: "Generate scale box-shape patterns",
		Long: `Generate the box shapes of a scale: 5 boxes for pentatonic families,
6 for the blues hexatonic, 7 for heptatonic families. Target tones named
with --target are injected into every box.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoxes(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Targets, "target", nil, "target tone id to inject (repeatable)")

	return cmd
}

func runBoxes(opts *BoxesOptions, key, scale string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	var tones []boxes.TargetTone
	for _, id := range opts.Targets {
		tone, ok := boxes.TargetToneByID(id)
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown target tone %q", id))
		}
		tones = append(tones, tone)
	}

	gen := boxes.NewGenerator(theory.Default(), fretboard.StandardTuning)
	patterns := gen.GeneratePatterns(key, scale)
	if patterns == nil {
		return NewExitError(ExitFailure, fmt.Sprintf("no box patterns for %s %s", key, scale))
	}

	results := make([]BoxResult, 0, len(patterns))
	for _, p := range patterns {
		merged, markers := gen.InjectTargetTones(p, tones)
		results = append(results, BoxResult{Pattern: merged, Markers: markers})
	}
	if opts.Format == "json" {
		return formatter.JSON(results)
	}

	for _, r := range results {
		formatter.Textf("%s  frets %d-%d\n", r.Pattern.Label, r.Pattern.Window.Start, r.Pattern.Window.End)
		for s := fretboard.NumStrings - 1; s >= 0; s-- {
			formatter.Textf("  string %d: %v\n", s, r.Pattern.Frets[s])
		}
		formatter.Textf("  roots: %v\n", r.Pattern.Roots)
		for _, m := range r.Markers {
			formatter.Textf("  %s at string %d fret %d\n", m.Tone, m.Position.String, m.Position.Fret)
		}
	}
	return nil
}
