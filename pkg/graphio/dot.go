package graphio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// ToDOT converts a document's logical topology to Graphviz DOT format.
// This renders the directed multigraph (one edge per connection,
// labeled with the port pair), not the canvas curves — it is a preview
// of the wiring, independent of node placement.
func ToDOT(d *graph.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		attrs := []string{
			fmt.Sprintf("label=%q", fmt.Sprintf("%s\n(%s)", n.Title, n.Type)),
		}
		if n.Color != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range d.Connections {
		label := edgeLabel(d, c)
		if label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=10];\n", c.SourceNodeID, c.TargetNodeID, label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.SourceNodeID, c.TargetNodeID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// edgeLabel builds "sourcePort → targetPort" from the port labels,
// omitting the default single-port labels to keep simple graphs clean.
func edgeLabel(d *graph.Document, c graph.Connection) string {
	src, okS := d.Node(c.SourceNodeID)
	dst, okD := d.Node(c.TargetNodeID)
	if !okS || !okD {
		return ""
	}
	sp, _ := src.Port(c.SourcePortID)
	tp, _ := dst.Port(c.TargetPortID)
	if len(src.Outputs) <= 1 && len(dst.Inputs) <= 1 {
		return ""
	}
	return sp.Label + " → " + tp.Label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
