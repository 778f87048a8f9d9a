package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// validateCommand creates the validate command for checking graph files.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		strict bool
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "validate <graph.json>",
		Short: "Check a graph file against the integrity rules",
		Long: `Check a graph file against the integrity rules.

Validation verifies that the file parses as interchange JSON, that node
and connection IDs are unique, that every connection endpoint resolves
to an existing port, that connections run output to input, and that no
two connections join the same port pair.

Unknown node types are accepted so files from newer editors keep
round-tripping; use --strict to reject them.

The command exits non-zero when the file is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], strict, quiet)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "reject node types the editor does not know")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress output, report via exit code only")

	return cmd
}

func (c *CLI) runValidate(path string, strict, quiet bool) error {
	prog := newProgress(c.Logger)

	doc, err := loadGraph(path)
	if err != nil {
		if !quiet {
			printError("%s is invalid", path)
			printDetail("%s", errors.UserMessage(err))
		}
		return err
	}

	if err := validateNodes(&doc, strict); err != nil {
		if !quiet {
			printError("%s is invalid", path)
			printDetail("%s", errors.UserMessage(err))
		}
		return err
	}

	if !quiet {
		printSuccess("%s is valid", path)
		printStats(len(doc.Nodes), len(doc.Connections))
		prog.done(fmt.Sprintf("Checked %d nodes, %d connections", len(doc.Nodes), len(doc.Connections)))
	}
	return nil
}

// validateNodes applies the per-node field checks on top of the
// structural validation the decoder already performed.
func validateNodes(d *graph.Document, strict bool) error {
	for _, n := range d.Nodes {
		if err := errors.ValidateIdentifier(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %q", n.ID)
		}
		if err := errors.ValidateTitle(n.Title); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %q", n.ID)
		}
		if err := errors.ValidateColor(n.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %q", n.ID)
		}
		if n.Size.Width <= 0 || n.Size.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidGraph,
				"node %q has non-positive size %gx%g", n.ID, n.Size.Width, n.Size.Height)
		}
		if strict && !slices.Contains(graph.KnownNodeTypes, n.Type) {
			return errors.New(errors.ErrCodeInvalidNodeType,
				"node %q has unknown type %q", n.ID, n.Type)
		}
	}
	return nil
}
