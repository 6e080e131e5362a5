// Package cli implements the snarl command-line interface.
package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snarl/pkg/buildinfo"
	"github.com/matzehuels/snarl/pkg/cache"
	"github.com/matzehuels/snarl/pkg/graph"
	"github.com/matzehuels/snarl/pkg/snarl"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "snarl"

	// defaultBoardFile is the board file used when none is given.
	defaultBoardFile = "board.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// board is the payload shape the CLI works with. Node payloads are
// opaque JSON so boards round-trip without knowing their schema.
type board = snarl.Snarl[json.RawMessage]

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
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
		Use:          "snarl",
		Short:        "Snarl edits and renders node-graph boards",
		Long:         `Snarl is a CLI tool for building node-graph boards: nodes with pins, wires between them, and a draw order, stored as plain JSON and renderable as diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.initCommand())
	root.AddCommand(c.nodeCommand())
	root.AddCommand(c.wireCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Board Files
// =============================================================================

// boardArg resolves the optional board file argument.
func boardArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultBoardFile
}

// loadBoard reads a board file.
func loadBoard(path string) (*board, error) {
	return graph.ReadFile[json.RawMessage](path)
}

// saveBoard writes a board file.
func saveBoard(path string, g *board) error {
	return graph.WriteFile(g, path)
}

// =============================================================================
// Cache Factory
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/snarl/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory (~/.config/snarl/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
