package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dragswitch/dragswitch/pkg/board"
	"github.com/dragswitch/dragswitch/pkg/buildinfo"
	"github.com/dragswitch/dragswitch/pkg/observability"
	"github.com/dragswitch/dragswitch/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dragswitch"

	// storeEnv overrides the default arrangement store location.
	storeEnv = "DRAGSWITCH_STORE"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// storeLocation is the --store flag; empty means the data directory.
	storeLocation string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Dragswitch rearranges boards of items by dragging them",
		Long:         `Dragswitch renders a board of containers in the terminal and lets you reorder its items, within and across containers, with the mouse. Arrangements are saved after every drop.`,
		Version:      buildinfo.Read().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.installHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.storeLocation, "store", os.Getenv(storeEnv),
		"arrangement store: a directory, redis://..., mongodb://... or none (default: data dir)")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadBoard reads a board file, or returns the built-in board for an empty
// path.
func loadBoard(path string) (*board.Board, error) {
	if path == "" {
		return board.Default(), nil
	}
	return board.Load(path)
}

// boardArg returns the optional board path argument.
func boardArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// completeBoardFile completes the optional board argument with .toml files.
func completeBoardFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// openStore opens the configured arrangement store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	location := c.storeLocation
	if location == "" {
		dir, err := dataDir()
		if err != nil {
			return nil, err
		}
		location = filepath.Join(dir, "arrangements")
	}
	return store.Open(ctx, location)
}

// installHooks routes drag and store events to l.
func (c *CLI) installHooks(l *log.Logger) {
	hooks := newLogHooks(l)
	observability.SetDragHooks(hooks)
	observability.SetStoreHooks(hooks)
}

// arranged applies the saved arrangement of b unless fresh is set. A failed
// load is logged and leaves b as it is.
func arranged(ctx context.Context, st store.Store, b *board.Board, fresh bool) *board.Board {
	if fresh {
		return b
	}
	arr, err := st.Get(ctx, b.ID)
	if err != nil {
		loggerFromContext(ctx).Warn("ignoring saved arrangement", "board", b.ID, "err", err)
		return b
	}
	if arr == nil {
		return b
	}
	return b.Arrange(arr.Containers)
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the data directory using XDG standard (~/.local/share/dragswitch/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
