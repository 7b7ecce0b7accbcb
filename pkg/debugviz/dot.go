package debugviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Options configures DOT/SVG rendering.
type Options struct {
	// Detailed includes node labels and edge weight labels when true.
	Detailed bool
}

var kindColor = map[Kind]string{
	KindCell:      "lightblue",
	KindNet:       "lightyellow",
	KindSite:      "lightgreen",
	KindSynthetic: "lightgrey",
}

// ToDOT renders g as a Graphviz DOT document. Adapted from the teacher's
// node-link DOT exporter (pkg/render/nodelink), generalized from dependency
// nodes to cell/net/site-kinded debug nodes.
func ToDOT(g *Graph, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", g.Name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.15,0.08\"];\n\n")

	for _, n := range g.Nodes() {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		color := kindColor[n.Kind]
		if color == "" {
			color = "white"
		}
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", n.ID, label, color)
		} else {
			fmt.Fprintf(&buf, "  %q [fillcolor=%q];\n", n.ID, color)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := []string{}
		if opts.Detailed {
			label := e.Label
			if label == "" && e.Weight != 0 {
				label = fmt.Sprintf("%.3g", e.Weight)
			}
			if label != "" {
				attrs = append(attrs, fmt.Sprintf("label=%q", label))
			}
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT document to SVG using goccy/go-graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("debugviz: init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("debugviz: parse dot: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("debugviz: render svg: %w", err)
	}
	return buf.Bytes(), nil
}
