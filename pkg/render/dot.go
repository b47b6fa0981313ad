// Package render generates visual output for relationship graphs: Graphviz
// DOT text plus SVG and PNG rasterizations of it, with the direct-lineage
// tree visually emphasized.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ahertel/kintrace/pkg/kin"
	"github.com/ahertel/kintrace/pkg/lineage"
)

// Options configures relationship-graph rendering.
type Options struct {
	// Root is the traced root person; its node is drawn filled.
	Root string

	// Highlight emphasizes edges on the shortest-path tree.
	// Edges not on the tree are drawn dashed and grey.
	Highlight bool
}

// ToDOT converts a relationship graph to Graphviz DOT format.
// The graph is undirected; when preds is non-empty and opts.Highlight is set,
// direct-lineage edges are drawn bold while all other edges are dimmed.
// The resulting DOT string can be rendered with [ToSVG] or [ToPNG].
func ToDOT(g *kin.Graph, preds lineage.Predecessors, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph family {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	for _, person := range g.People() {
		fmt.Fprintf(&buf, "  %q [%s];\n", person, strings.Join(nodeAttrs(person, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e[0], e[1], preds, opts)
		if attrs == "" {
			fmt.Fprintf(&buf, "  %q -- %q;\n", e[0], e[1])
		} else {
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e[0], e[1], attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(person string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", person)}
	if person == opts.Root {
		attrs = append(attrs, "fillcolor=lightblue", "penwidth=2")
	}
	return attrs
}

func edgeAttrs(a, b string, preds lineage.Predecessors, opts Options) string {
	if !opts.Highlight || len(preds) == 0 {
		return ""
	}
	if preds.Linked(a, b) {
		return "penwidth=2.5"
	}
	return "style=dashed, color=grey"
}

// ToSVG renders a DOT graph to SVG using Graphviz.
func ToSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// ToPNG renders a DOT graph to PNG using Graphviz.
func ToPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
