package commands

import (
	"fmt"

	"github.com/leapstack-labs/lookup/internal/export"
	"github.com/spf13/cobra"
)

// Banner is printed once when an interactive session starts.
const Banner = "Welcome to the data querying app!"

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive lookup session",
		Long: `Start an interactive session against the student database.

The menu of lookups is shown before every prompt. Non-empty results can be
stored as JSON or XML after they are printed. This is also what running
lookup without a subcommand does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunShell(cmd)
		},
	}
}

// RunShell runs the interactive session on cmd's input and output streams.
func RunShell(cmd *cobra.Command) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	in, closeIn, err := newLineReader(cmd, cc.Cfg, cc.Table.Names())
	if err != nil {
		return err
	}
	defer closeIn()

	out := cmd.OutOrStdout()
	offerer := export.NewInteractive(in, out, cc.Logger)
	d := cc.Dispatcher(cmd, offerer)

	_, _ = fmt.Fprintln(out, Banner)
	cc.Logger.Debug("session started", "database", cc.Cfg.DatabasePath, "driver", cc.Store.Driver())
	return d.Loop(cmd.Context(), in)
}
