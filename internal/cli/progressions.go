package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bagpyp/fretwork/internal/boxes"
	"github.com/bagpyp/fretwork/internal/progression"
	"github.com/bagpyp/fretwork/internal/theory"
)

// ProgressionsOptions holds flags shared by the progressions and
// cheatsheet commands.
type ProgressionsOptions struct {
	*RootOptions
	Scale     string
	Mode      string
	Hexatonic string
	Targets   []string // target-tone ids
	Intervals []string // raw visible intervals (semitones)
}

func addProgressionFlags(cmd *cobra.Command, opts *ProgressionsOptions) {
	cmd.Flags().StringVar(&opts.Scale, "scale", "minor-pentatonic", "active scale id or alias")
	cmd.Flags().StringVar(&opts.Mode, "mode", "minor", "tonal-center mode (major|minor)")
	cmd.Flags().StringVar(&opts.Hexatonic, "hexatonic", "", "hexatonic overlay mode (blues)")
	cmd.Flags().StringArrayVar(&opts.Targets, "target", nil, "active target tone id (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Intervals, "interval", nil, "extra visible interval in semitones (repeatable)")
}

// buildContext assembles the recommendation context from flags. Target
// tone ids contribute their catalog offsets; --interval adds raw
// semitone values.
func buildContext(opts *ProgressionsOptions, key string) (progression.Context, error) {
	ctx := progression.Context{
		Key:           key,
		ScaleType:     opts.Scale,
		Mode:          opts.Mode,
		HexatonicMode: opts.Hexatonic,
	}
	for _, id := range opts.Targets {
		tone, ok := boxes.TargetToneByID(id)
		if !ok {
			return ctx, NewExitError(ExitCommandError, fmt.Sprintf("unknown target tone %q", id))
		}
		ctx.VisibleTargetIntervals = append(ctx.VisibleTargetIntervals, tone.Offset)
	}
	for _, raw := range opts.Intervals {
		iv, err := strconv.Atoi(raw)
		if err != nil {
			return ctx, NewExitError(ExitCommandError, fmt.Sprintf("invalid interval %q", raw))
		}
		ctx.VisibleTargetIntervals = append(ctx.VisibleTargetIntervals, iv)
	}
	return ctx, nil
}

// NewProgressionsCommand creates the progressions command.
func NewProgressionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProgressionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "progressions <key>",
		Short: "Recommend practice progressions for the current display",
		Long: `Rank the progression catalog against the display context (key, scale,
mode, active target tones) and print the top recommendations rendered
into concrete chords.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgressions(opts, args[0], cmd)
		},
	}
	addProgressionFlags(cmd, opts)
	return cmd
}

func runProgressions(opts *ProgressionsOptions, key string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	engine, err := progression.New(theory.Default())
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	ctx, err := buildContext(opts, key)
	if err != nil {
		return err
	}
	ranked := engine.Recommend(ctx)
	if ranked == nil {
		return NewExitError(ExitFailure, fmt.Sprintf("no recommendations for key %q", key))
	}
	if opts.Format == "json" {
		return formatter.JSON(ranked)
	}

	formatter.Textf("flavor: %s\n", engine.SelectFlavor(ctx))
	for i, p := range ranked {
		formatter.Textf("%2d. %-22s %s\n", i+1, p.Title, p.ChordNames)
		if opts.Verbose {
			formatter.Textf("    %s (score %d)\n", p.Rationale, p.Score)
		}
	}
	return nil
}
