package cli

import (
	"github.com/spf13/cobra"

	"github.com/JeanCesca/app-Todoey/internal/tui"
)

// NewTUICommand creates the interactive terminal UI command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit lists interactively",
		Long: `Browse and edit lists interactively.

Categories: a add, enter open, d delete, q quit.
Items: space toggle, a add, d delete, / search, esc back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(rootOpts, cmd)
		},
	}
}

func runTUI(opts *RootOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	pc, err := opts.openStore()
	if err != nil {
		return err
	}
	defer pc.Close()

	if err := tui.Run(ctx, opts.categoryStore(pc), opts.itemStore(pc), opts.Logger); err != nil {
		return WrapExitError(ExitFailure, "terminal UI failed", err)
	}
	return nil
}
