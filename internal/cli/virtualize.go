package cli

import (
	"github.com/spf13/cobra"
)

// NewVirtualizeCommand creates the virtualize command.
func NewVirtualizeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "virtualize <tree.yaml>",
		Short: "Adopt the markup of a tree file, then patch every step",
		Long: `Mount the markup of a tree file as a server would have sent it,
adopt it, then patch each step over it in order, printing the mutations of
every step.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSteps(rootOpts, cmd, args[0], modeVirtualize, 0)
		},
	}
}
