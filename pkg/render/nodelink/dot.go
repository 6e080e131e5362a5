package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/snarl/pkg/snarl"
)

// Options configures node-link diagram rendering.
type Options[T any] struct {
	// Label derives a node label from its payload. When nil, the
	// node identifier is shown.
	Label func(id snarl.NodeID, payload T) string

	// Detailed annotates edges with the output and input pin indices.
	Detailed bool
}

// ToDOT converts a board to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using
// [RenderSVG] or [RenderPNG].
//
// Collapsed nodes are rendered with dashed outlines and grey fill to
// distinguish them from open nodes. Nodes are emitted in draw order
// so the back-most node appears first in the source.
func ToDOT[T any](s *snarl.Snarl[T], opts Options[T]) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range s.DrawOrder() {
		info, _ := s.Info(id)
		payload, _ := s.Payload(id)
		label := fmtLabel(id, payload, opts)
		attrs := fmtAttrs(info, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeName(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, w := range sortedWires(s) {
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %q -> %q [taillabel=\"%d\", headlabel=\"%d\"];\n",
				nodeName(w.Out.Node), nodeName(w.In.Node), w.Out.Output, w.In.Input)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeName(w.Out.Node), nodeName(w.In.Node))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id snarl.NodeID) string {
	return fmt.Sprintf("n%d", id)
}

func fmtLabel[T any](id snarl.NodeID, payload T, opts Options[T]) string {
	if opts.Label != nil {
		return opts.Label(id, payload)
	}
	return nodeName(id)
}

func fmtAttrs(info snarl.NodeInfo, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	// Editor coordinates ride along as a pinned pos attribute; the
	// neato engine honors it, dot ignores it.
	attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", info.Pos.X, info.Pos.Y))
	if !info.Open {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// sortedWires returns the board's wires in the codec's canonical
// order so DOT output is deterministic.
func sortedWires[T any](s *snarl.Snarl[T]) []snarl.Wire {
	wires := s.Wires()
	snarl.SortWires(wires)
	return wires
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or embedding.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
