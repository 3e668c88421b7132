// Package render draws stabilizer chains with Graphviz.
//
// Every chain level becomes a cluster holding its Schreier tree: one node
// per orbit point and an edge from each point's predecessor, labelled with
// the index of the generator that discovered it. The root of each tree is
// the level's base point.
//
//	dot := render.ToDOT(sys, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [ToDOT] only produces text and has no cgo or WebAssembly cost; [RenderSVG]
// runs the Graphviz layout engine through go-graphviz.
package render
