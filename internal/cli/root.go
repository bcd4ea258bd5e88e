package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all subcommands.
type RootOptions struct {
	Verbosity int
	Format    string

	formatter *OutputFormatter
	logger    *slog.Logger
	out       io.Writer
	errOut    io.Writer
}

// Formatter returns the output formatter configured from the global
// flags.
func (o *RootOptions) Formatter() *OutputFormatter { return o.formatter }

// Logger returns the structured logger configured from --verbose.
func (o *RootOptions) Logger() *slog.Logger { return o.logger }

func (o *RootOptions) setup(cmd *cobra.Command) error {
	switch o.Format {
	case "text", "json":
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q (use text or json)", o.Format))
	}

	o.out = cmd.OutOrStdout()
	o.errOut = cmd.ErrOrStderr()

	level := slog.LevelWarn
	switch {
	case o.Verbosity >= 2:
		level = slog.LevelDebug
	case o.Verbosity == 1:
		level = slog.LevelInfo
	}
	o.logger = slog.New(slog.NewTextHandler(o.errOut, &slog.HandlerOptions{Level: level}))

	o.formatter = &OutputFormatter{
		Format:    o.Format,
		Writer:    o.out,
		ErrWriter: o.errOut,
		Verbose:   o.Verbosity > 0,
	}
	return nil
}

// NewRootCommand builds the ascetic command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	root := &cobra.Command{
		Use:   "ascetic",
		Short: "Analyze and execute cause-effect structures",
		Long: `ascetic reads cause-effect structure definitions, searches them for
firing components, and runs token-game simulations over the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	root.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	root.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text or json)")

	root.AddCommand(newSolveCommand(opts))
	root.AddCommand(newGoCommand(opts))
	root.AddCommand(newValidateCommand(opts))

	return root
}

// Execute runs the root command and returns its error.
func Execute() error {
	return NewRootCommand().Execute()
}

// Main is the entry point used by cmd/ascetic.
func Main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(GetExitCode(err))
	}
}
