// Package nodelink renders SOUP reports as node-link diagrams.
//
// # Overview
//
// A report maps manifests to the dependencies they declare. This package
// draws that mapping left to right: manifest nodes on the left, dependency
// nodes on the right, one edge per declaration. Dependencies are identified
// by name and version, so two manifests declaring the same dependency share
// a node.
//
// # Usage
//
// Convert a snapshot to DOT format, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(snap, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, dependency labels show how many metadata fields
//     have been filled in, which makes unreviewed dependencies easy to spot.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering,
// so no Graphviz installation is needed.
package nodelink
