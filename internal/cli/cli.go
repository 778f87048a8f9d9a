package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/buildinfo"
	"github.com/flowcanvas/flowcanvas/pkg/config"
	"github.com/flowcanvas/flowcanvas/pkg/errors"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
	"github.com/flowcanvas/flowcanvas/pkg/graphio"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flowcanvas"

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
	Config *config.Config
}

// New creates a new CLI instance with a default logger and the user's
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Load(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "FlowCanvas edits and inspects visual node graphs",
		Long:         `FlowCanvas is a CLI tool for working with visual node-graph files: validating their integrity, summarizing their contents, rewriting them in canonical form, rendering wiring previews, and editing them interactively.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadGraph reads a graph file for a command, mapping failures to the
// structured error codes the CLI reports. The path is taken as the user
// gave it; relative paths, including ones through a parent directory,
// resolve against the working directory like any other file argument.
func loadGraph(path string) (graph.Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return graph.Document{}, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
		}
		return graph.Document{}, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := graphio.ReadGraphFile(path)
	if err != nil {
		return graph.Document{}, errors.Wrap(errors.ErrCodeDecodeFailed, err, "load graph %s", path)
	}
	return doc, nil
}
