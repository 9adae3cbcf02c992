// Package render converts constraint graphs and pairings into Graphviz DOT
// and rasterized output, for debugging dense constraint sets.
package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/giftring/pkg/pairing"
)

// AllowedDOT converts an allowed-edge graph to Graphviz DOT. Forced edges
// (the sole remaining edge of a fixed source) are drawn bold. Node and edge
// order is sorted, so output is deterministic.
func AllowedDOT(names []string, g pairing.Allowed, fixed pairing.Fixed) string {
	var buf bytes.Buffer
	buf.WriteString("digraph allowed {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	sorted := slices.Sorted(slices.Values(names))
	for _, n := range sorted {
		fmt.Fprintf(&buf, "  %q;\n", n)
	}

	buf.WriteString("\n")
	for _, from := range sorted {
		targets := slices.Sorted(maps.Keys(g[from]))
		for _, to := range targets {
			if fixed[from] == to {
				fmt.Fprintf(&buf, "  %q -> %q [style=bold, color=firebrick];\n", from, to)
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// PairingDOT converts a final pairing to Graphviz DOT. A single-cycle
// pairing renders as one ring; a backtracking result may show several
// disjoint cycles.
func PairingDOT(names []string, p pairing.Pairing) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pairing {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, from := range slices.Sorted(slices.Values(names)) {
		fmt.Fprintf(&buf, "  %q -> %q;\n", from, p[from])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
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
