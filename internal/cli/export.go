package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dragswitch/dragswitch/pkg/export"
)

// exportCommand creates the command that draws a board with Graphviz.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		fresh    bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export [board.toml]",
		Short: "Write a board arrangement as DOT, SVG or PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			b, err := loadBoard(boardArg(args))
			if err != nil {
				return err
			}
			b = arranged(ctx, st, b, fresh)

			prog := newProgress(loggerFromContext(ctx))
			spin := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", b.ID))
			if f != export.FormatDOT {
				spin.Start()
			}
			data, err := export.Render(ctx, b, f, export.Options{Detailed: detailed})
			if err != nil {
				spin.StopWithError("Render failed")
				return err
			}
			spin.Stop()
			prog.done(fmt.Sprintf("Rendered %s as %s", b.ID, f))

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccessTo(cmd.OutOrStdout(), "Exported %s", b.ID)
			printFileTo(cmd.OutOrStdout(), output)
			return nil
		},
		ValidArgsFunction: completeBoardFile,
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the saved arrangement")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include item ids and positions in labels")

	return cmd
}
