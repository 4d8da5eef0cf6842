package commands

import (
	"fmt"

	"github.com/leapstack-labs/lookup/internal/dispatch"
	"github.com/leapstack-labs/lookup/internal/export"
	"github.com/spf13/cobra"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run a single lookup and exit",
		Long: `Run one lookup command non-interactively and print its result.

Use --save to store a non-empty result in a .json or .xml file instead of
being asked. Unknown commands, wrong argument counts and failed queries exit
with a non-zero status.`,
		Example: `  # List students who have not completed a course
  lookup exec lnc

  # Look up an address and store it as XML
  lookup exec la Ada Lovelace --save address.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, args[0], args[1:], save)
		},
	}

	cmd.Flags().StringVar(&save, "save", "", "Store the result in FILE (.json or .xml)")

	return cmd
}

func runExec(cmd *cobra.Command, name string, args []string, save string) error {
	var offerer export.Offerer = export.Never{}
	if save != "" {
		f, err := export.ToFile(save)
		if err != nil {
			return fmt.Errorf("--save %s: %w", save, err)
		}
		offerer = f
	}

	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	outcome, err := cc.Dispatcher(cmd, offerer).Execute(cmd.Context(), name, args)
	if err != nil {
		return err
	}

	switch outcome {
	case dispatch.UnknownCommand, dispatch.InvalidArity, dispatch.QueryFailed:
		return fmt.Errorf("command %q: %s", name, outcome)
	case dispatch.Exported:
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Result stored in %s\n", save)
	}
	return nil
}
