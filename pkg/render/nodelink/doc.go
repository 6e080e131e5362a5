// Package nodelink renders snarl boards as traditional node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as boxes connected by arrows. It gives a quick static picture
// of a board outside the interactive editor.
//
// # Usage
//
// Convert a board to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(board, nodelink.Options[string]{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PNG output:
//
//	png, err := nodelink.RenderPNG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Label: Custom node label from the node's payload
//   - Detailed: When true, edges are annotated with pin indices
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Collapsed nodes are drawn with dashed outlines and grey fill to
// distinguish them from open nodes.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering.
package nodelink
