package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
	"github.com/flowcanvas/flowcanvas/pkg/graphio"
)

// Render output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderCommand creates the render command for wiring previews.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a wiring preview of a graph file",
		Long: `Render a wiring preview of a graph file.

The preview shows the logical topology (which ports connect to which),
laid out left to right by Graphviz. It does not reproduce the canvas
positions or curves; use it to review the wiring at a glance.

Formats:
  dot   Graphviz DOT source (default)
  svg   rendered SVG`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runRender(path, format, output string) error {
	format = strings.ToLower(format)
	if format != formatDOT && format != formatSVG {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want dot or svg)", format)
	}

	doc, err := loadGraph(path)
	if err != nil {
		return err
	}

	dot := graphio.ToDOT(&doc)
	data := []byte(dot)

	if format == formatSVG {
		prog := newProgress(c.Logger)
		spinner := newSpinner("Rendering SVG...")
		spinner.Start()
		data, err = graphio.RenderSVG(dot)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render svg: %w", err)
		}
		spinner.Stop()
		prog.done(fmt.Sprintf("Rendered %d nodes to SVG", len(doc.Nodes)))
	}

	if output == "" {
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("rendered %s", path)
	printFile(output)
	return nil
}
