// Package render provides visualizations of a SOUP report.
//
// The [nodelink] subpackage renders a snapshot as a directed graph with
// Graphviz: each manifest points at the dependencies it declares, and a
// dependency declared by several manifests appears once.
//
//	dot := nodelink.ToDOT(snap, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/souper/pkg/render/nodelink
package render
