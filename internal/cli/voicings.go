package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bagpyp/fretwork/internal/fretboard"
	"github.com/bagpyp/fretwork/internal/theory"
	"github.com/bagpyp/fretwork/internal/voicing"
)

// VoicingsResult is the JSON payload of the voicings command.
type VoicingsResult struct {
	Key            string                        `json:"key"`
	ChordType      string                        `json:"chord_type"`
	FullySupported bool                          `json:"fully_supported"`
	Groups         []voicing.StringGroupVoicings `json:"groups"`
}

// NewVoicingsCommand creates the voicings command.
func NewVoicingsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "voicings <key> <chord-type>",
		Short: "Generate triad voicings per string group",
		Long: `Generate playable triad voicings of a chord across the four adjacent
string groups. Derived qualities (minor, dim, aug) are transformed from
the reference major shapes; partially supported combinations report
fully_supported=false and callers should fall back to major.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVoicings(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runVoicings(opts *RootOptions, key, chordType string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	gen := voicing.NewGenerator(theory.Default(), fretboard.StandardTuning)
	groups := gen.Generate(key, chordType)
	if groups == nil {
		return NewExitError(ExitFailure, fmt.Sprintf("no voicings for %s %s", key, chordType))
	}

	result := VoicingsResult{
		Key:            key,
		ChordType:      chordType,
		FullySupported: voicing.FullySupported(groups),
		Groups:         groups,
	}
	if opts.Format == "json" {
		return formatter.JSON(result)
	}

	formatter.Textf("%s %s voicings (fully supported: %v)\n", key, chordType, result.FullySupported)
	for _, sg := range groups {
		formatter.Textf("strings %d-%d-%d:\n", sg.Group[0], sg.Group[1], sg.Group[2])
		for _, v := range sg.Voicings {
			names := make([]string, len(v.Notes))
			for i, n := range v.Notes {
				names[i] = string(n.Name)
			}
			formatter.Textf("  frets %2d %2d %2d  %-10s %s\n",
				v.Frets[0], v.Frets[1], v.Frets[2],
				strings.Join(names, " "), v.Inversion)
		}
	}
	return nil
}
