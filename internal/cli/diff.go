package cli

import (
	"github.com/spf13/cobra"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <tree.yaml>",
		Short: "Render the first step, then patch every later one",
		Long: `Render the first step of a tree file, then diff and patch each
following step in order, printing the mutations of every step.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSteps(rootOpts, cmd, args[0], modeRender, 0)
		},
	}
}
