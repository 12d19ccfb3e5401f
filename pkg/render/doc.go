// Package render turns DOT documents into images.
//
// SVG output is produced in-process by Graphviz compiled to WebAssembly
// ([github.com/goccy/go-graphviz]), so no Graphviz installation is needed.
// PDF and PNG are converted from that SVG by the external rsvg-convert tool
// from librsvg:
//
//	svg, err := render.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
package render
