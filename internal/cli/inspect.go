package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dragswitch/dragswitch/pkg/dragswitch"
)

// inspectCommand creates the command that prints the engine's view of a
// board: registered containers, item pairing and cached geometry.
func (c *CLI) inspectCommand() *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "inspect [board.toml]",
		Short: "Print containers, item pairing and geometry of a board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			b, err := loadBoard(boardArg(args))
			if err != nil {
				return err
			}
			m, err := mount(ctx, arranged(ctx, st, b, fresh), loggerFromContext(ctx), nil)
			if err != nil {
				return err
			}
			defer m.ds.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, StyleTitle.Render(b.ID))
			printKeyValueTo(w, "containers", strconv.Itoa(len(m.ds.Containers())))
			printKeyValueTo(w, "between", strconv.FormatBool(m.ds.Options().Between))
			if h := m.ds.Options().Handle; h != "" {
				printKeyValueTo(w, "handle", h)
			}
			fmt.Fprintln(w)
			writeContainerTable(w, m.ds.Containers())
			fmt.Fprintln(w)
			writeRowTable(w, m.ds.Containers())
			return nil
		},
		ValidArgsFunction: completeBoardFile,
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the saved arrangement")
	return cmd
}

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func writeContainerTable(w io.Writer, containers []*dragswitch.Container) {
	t := newTable("Container", "Items", "Count", "Box")
	for _, c := range containers {
		id, _ := c.Element().Attr("id")
		t.Row(id, c.ItemSelector(), strconv.Itoa(len(c.Items())), c.Box().String())
	}
	fmt.Fprintln(w, t.Render())
}

func writeRowTable(w io.Writer, containers []*dragswitch.Container) {
	t := newTable("Container", "Row", "Item", "Box")
	for _, c := range containers {
		cid, _ := c.Element().Attr("id")
		for _, r := range c.Rows() {
			iid, _ := r.Element.Attr("id")
			t.Row(cid, strconv.Itoa(r.Index), iid, r.Box.String())
		}
	}
	fmt.Fprintln(w, t.Render())
}
