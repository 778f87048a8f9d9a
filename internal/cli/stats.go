package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// statsCommand creates the stats command for summarizing graph files.
func (c *CLI) statsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <graph.json>",
		Short: "Summarize a graph file",
		Long: `Summarize a graph file.

Prints node and connection counts, a per-type node breakdown, the
canvas-space bounding box, and the nodes with no connections.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(args[0])
		},
	}

	return cmd
}

func (c *CLI) runStats(path string) error {
	doc, err := loadGraph(path)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(path))
	printKeyValue("nodes", fmt.Sprintf("%d", len(doc.Nodes)))
	printKeyValue("connections", fmt.Sprintf("%d", len(doc.Connections)))

	if byType := countByType(&doc); len(byType) > 0 {
		printKeyValue("types", formatTypeCounts(byType))
	}

	if bounds, ok := doc.Bounds(); ok {
		printKeyValue("bounds", fmt.Sprintf("%.0fx%.0f at (%.0f, %.0f)",
			bounds.Width, bounds.Height, bounds.X, bounds.Y))
	}

	if isolated := isolatedNodes(&doc); len(isolated) > 0 {
		printKeyValue("unconnected", strings.Join(isolated, ", "))
	}

	return nil
}

func countByType(d *graph.Document) map[graph.NodeType]int {
	counts := make(map[graph.NodeType]int)
	for _, n := range d.Nodes {
		counts[n.Type]++
	}
	return counts
}

func formatTypeCounts(counts map[graph.NodeType]int) string {
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)

	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = fmt.Sprintf("%s=%d", t, counts[graph.NodeType(t)])
	}
	return strings.Join(parts, " ")
}

// isolatedNodes returns the titles of nodes no connection touches, in
// z-order.
func isolatedNodes(d *graph.Document) []string {
	touched := make(map[string]bool)
	for _, c := range d.Connections {
		touched[c.SourceNodeID] = true
		touched[c.TargetNodeID] = true
	}

	var isolated []string
	for _, n := range d.Nodes {
		if !touched[n.ID] {
			isolated = append(isolated, n.Title)
		}
	}
	return isolated
}
