// Package cli implements the weave command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/joeycumines/logiface"
	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/weave/internal/dom"
	"github.com/AnatoleLucet/weave/internal/logging"
	"github.com/AnatoleLucet/weave/internal/vdom"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	MoveBefore bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the weave CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "weave",
		Short: "weave - virtual DOM reconciler",
		Long:  "Render, diff and virtualize virtual trees described in YAML against an in-memory DOM, printing every mutation.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log reconciler activity to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.MoveBefore, "move-before", false, "let the host move nodes instead of reinserting them")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewVirtualizeCommand(opts))

	return cmd
}

// session is the host and renderer a command works with.
type session struct {
	memory   *dom.Memory
	renderer *vdom.Renderer
}

func newSession(opts *RootOptions, cmd *cobra.Command) *session {
	var host dom.Host
	memory := dom.NewMemory()
	host = memory
	if opts.MoveBefore {
		host = &dom.MovingMemory{Memory: memory}
	}

	logger := logging.Discard()
	if opts.Verbose {
		logger = logging.New(cmd.ErrOrStderr(), logiface.LevelDebug)
	}

	return &session{
		memory:   memory,
		renderer: vdom.NewRenderer(host, vdom.WithLogger(logger)),
	}
}
