package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo describes the binary, usually stamped in with -ldflags.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the lookup version together with the commit and date it was built from.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(out, info.Version)
				return
			}
			_, _ = fmt.Fprintf(out, "lookup v%s\n", info.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", info.GitCommit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", info.BuildDate)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
