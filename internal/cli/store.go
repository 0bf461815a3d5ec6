package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dragswitch/dragswitch/pkg/errors"
	"github.com/dragswitch/dragswitch/pkg/store"
)

// storeCommand creates the arrangement store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage saved arrangements",
	}

	cmd.AddCommand(c.storePathCommand())
	cmd.AddCommand(c.storeShowCommand())
	cmd.AddCommand(c.storeClearCommand())

	return cmd
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where arrangements are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			fmt.Fprintln(cmd.OutOrStdout(), storeLocation(st, c.storeLocation))
			return nil
		},
	}
}

// storeShowCommand creates the "store show" subcommand.
func (c *CLI) storeShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [board-id]",
		Short: "Show a saved arrangement, or list saved boards",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				fs, ok := fileStore(st)
				if !ok {
					return errors.New(errors.ErrCodeUnsupported, "listing needs a file store; pass a board id")
				}
				ids, err := fs.List(ctx)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfoTo(w, "No saved arrangements")
					return nil
				}
				for _, id := range ids {
					fmt.Fprintln(w, id)
				}
				return nil
			}

			arr, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if arr == nil {
				return errors.New(errors.ErrCodeNotFound, "no saved arrangement for %s", args[0])
			}
			fmt.Fprintln(w, StyleTitle.Render(arr.Board))
			printKeyValueTo(w, "updated", arr.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			t := newTable("Container", "Items")
			containers := make([]string, 0, len(arr.Containers))
			for id := range arr.Containers {
				containers = append(containers, id)
			}
			sort.Strings(containers)
			for _, id := range containers {
				t.Row(id, strings.Join(arr.Containers[id], ", "))
			}
			fmt.Fprintln(w, t.Render())
			return nil
		},
	}
}

// storeClearCommand creates the "store clear" subcommand.
func (c *CLI) storeClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [board-id]",
		Short: "Delete one saved arrangement, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				if err := st.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccessTo(w, "Cleared %s", args[0])
				return nil
			}

			fs, ok := fileStore(st)
			if !ok {
				return errors.New(errors.ErrCodeUnsupported, "clearing everything needs a file store; pass a board id")
			}
			ids, err := fs.List(ctx)
			if err != nil {
				return err
			}
			if err := fs.Clear(ctx); err != nil {
				return err
			}
			printSuccessTo(w, "Cleared %d saved arrangements", len(ids))
			printDetailTo(w, "Directory: %s", fs.Path())
			return nil
		},
	}
}

// fileStore unwraps st to a file store, if it is one.
func fileStore(st store.Store) (*store.FileStore, bool) {
	if o, ok := st.(*store.Observed); ok {
		st = o.Unwrap()
	}
	fs, ok := st.(*store.FileStore)
	return fs, ok
}

func storeLocation(st store.Store, flag string) string {
	if fs, ok := fileStore(st); ok {
		return fs.Path()
	}
	if flag == "" || flag == "none" {
		return "none"
	}
	return flag
}
