package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bagpyp/fretwork/internal/practicelog"
	"github.com/bagpyp/fretwork/internal/progression"
	"github.com/bagpyp/fretwork/internal/theory"
)

// LogOptions holds flags for the log command family.
type LogOptions struct {
	*ProgressionsOptions
	DBPath string
}

// NewLogCommand creates the log command with its save/list/show
// subcommands.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{ProgressionsOptions: &ProgressionsOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Persist and inspect saved practice sessions",
	}
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "practice.db", "path to the practice log database")

	save := &cobra.Command{
		Use:           "save <key>",
		Short:         "Recommend progressions and save them as a session",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogSave(opts, args[0], cmd)
		},
	}
	addProgressionFlags(save, opts.ProgressionsOptions)

	list := &cobra.Command{
		Use:           "list",
		Short:         "List saved sessions, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogList(opts, cmd)
		},
	}

	show := &cobra.Command{
		Use:           "show <session-id>",
		Short:         "Show one saved session",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogShow(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(save, list, show)
	return cmd
}

func runLogSave(opts *LogOptions, key string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	engine, err := progression.New(theory.Default())
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	ctx, err := buildContext(opts.ProgressionsOptions, key)
	if err != nil {
		return err
	}
	ranked := engine.Recommend(ctx)
	if ranked == nil {
		return NewExitError(ExitFailure, fmt.Sprintf("no recommendations for key %q", key))
	}

	store, err := practicelog.Open(opts.DBPath)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	defer store.Close()

	id, err := store.SaveSession(cmd.Context(), practicelog.Session{
		CreatedAt:    time.Now(),
		Key:          key,
		Scale:        opts.Scale,
		Mode:         opts.Mode,
		Progressions: ranked,
	})
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if opts.Format == "json" {
		return formatter.JSON(map[string]string{"session_id": id})
	}
	formatter.Textf("saved session %s (%d progressions)\n", id, len(ranked))
	return nil
}

func runLogList(opts *LogOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	store, err := practicelog.Open(opts.DBPath)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	defer store.Close()

	sessions, err := store.ListSessions(cmd.Context())
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if opts.Format == "json" {
		return formatter.JSON(sessions)
	}
	for _, s := range sessions {
		formatter.Textf("%s  %s  %s %s (%s)\n",
			s.ID, s.CreatedAt.Format(time.RFC3339), s.Key, s.Scale, s.Mode)
	}
	return nil
}

func runLogShow(opts *LogOptions, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	store, err := practicelog.Open(opts.DBPath)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	defer store.Close()

	session, err := store.GetSession(cmd.Context(), id)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("session %s: %v", id, err))
	}
	if opts.Format == "json" {
		return formatter.JSON(session)
	}
	formatter.Textf("%s  %s %s (%s)\n", session.ID, session.Key, session.Scale, session.Mode)
	for i, p := range session.Progressions {
		formatter.Textf("%2d. %-22s %s\n", i+1, p.Title, p.ChordNames)
	}
	return nil
}
