package cli

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runCommand creates the interactive board command.
func (c *CLI) runCommand() *cobra.Command {
	var (
		fresh   bool
		width   int
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "run [board.toml]",
		Short: "Rearrange a board interactively",
		Long: `Open a board in the terminal and reorder its items with the mouse.

Without a file the built-in kanban board is used. The arrangement is saved
after every drop that changes the order and restored the next time the board
is opened, unless --fresh is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// The terminal belongs to the UI; send logs to a file or nowhere.
			logger := c.Logger
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return err
				}
				defer f.Close()
				logger = newLogger(f, c.Logger.GetLevel())
			} else {
				logger = newLogger(io.Discard, c.Logger.GetLevel())
			}
			ctx = withLogger(ctx, logger)
			c.installHooks(logger)

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			source, err := loadBoard(boardArg(args))
			if err != nil {
				return err
			}
			if width > 0 {
				source.Width = width
			}
			current := arranged(ctx, st, source, fresh)

			model, err := newBoardModel(ctx, st, source, current)
			if err != nil {
				return err
			}
			logger.Info("board opened", "board", source.ID, "containers", len(source.Containers))

			p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
		ValidArgsFunction: completeBoardFile,
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the saved arrangement")
	cmd.Flags().IntVar(&width, "width", 0, "viewport width in cells (default: the board's width)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the UI runs")

	return cmd
}
