package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/souper/pkg/buildinfo"
	"github.com/matzehuels/souper/pkg/cache"
	"github.com/matzehuels/souper/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "souper"

	// watchCacheSize bounds the extraction cache kept across watch cycles.
	watchCacheSize = cache.DefaultSize
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
	Out    io.Writer // Command output (summaries, tables, rendered graphs)
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Without a subcommand the root command scans, so `souper -o soups.json`
// behaves like `souper scan -o soups.json`.
func (c *CLI) RootCommand() *cobra.Command {
	flags := &scanFlags{}
	root := &cobra.Command{
		Use:   appName,
		Short: "Souper inventories third-party dependencies declared in a source tree",
		Long: `Souper scans a source tree for manifests (package.json, Cargo.toml, .csproj,
Dockerfile) and records every declared dependency in a JSON report. Re-running
it updates the report in place and keeps the annotations you added.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd, flags)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	flags.register(root, true)

	// Register all subcommands
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. One-shot scans parse every
// manifest once and need no cache; watch mode keeps results between cycles.
func (c *CLI) newRunner(logger *log.Logger, keep bool) (*pipeline.Runner, error) {
	if !keep {
		return pipeline.NewRunner(cache.NewNullCache(), logger), nil
	}
	lru, err := cache.NewLRUCache(watchCacheSize)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(lru, logger), nil
}
