package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bagpyp/fretwork/internal/progression"
	"github.com/bagpyp/fretwork/internal/theory"
)

// NewCheatSheetCommand creates the cheatsheet command.
func NewCheatSheetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProgressionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cheatsheet <key>",
		Short: "Build the chord cheat sheet for the top progressions",
		Long: `Recommend progressions for the display context, then map every
first-seen chord symbol to its notes and accumulate the note pool in
first-appearance order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheatSheet(opts, args[0], cmd)
		},
	}
	addProgressionFlags(cmd, opts)
	return cmd
}

func runCheatSheet(opts *ProgressionsOptions, key string, cmd *cobra.Command) error {
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
	sheet := engine.CheatSheetFor(ranked)
	if opts.Format == "json" {
		return formatter.JSON(sheet)
	}

	for _, entry := range sheet.Entries {
		names := make([]string, len(entry.Notes))
		for i, n := range entry.Notes {
			names[i] = string(n)
		}
		formatter.Textf("%-8s %s\n", entry.Chord, strings.Join(names, " "))
	}
	pool := make([]string, len(sheet.UniqueNotes))
	for i, n := range sheet.UniqueNotes {
		pool[i] = string(n)
	}
	formatter.Textf("note pool: %s\n", strings.Join(pool, " "))
	return nil
}
