package cli

import (
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <tree.yaml>",
		Short: "Render the first step of a tree file",
		Long: `Render the first step of a tree file from scratch and print the
mutations it took and the resulting markup.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSteps(rootOpts, cmd, args[0], modeRender, 1)
		},
	}
}
