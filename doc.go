// Package lottiecore decodes a Lottie/Bodymovin-style JSON animation
// document and flattens it into a [Timeline] a host rasterizer can walk
// frame by frame.
//
// The package is organized around the three coupled subsystems described
// by the wire format: a [Decode]r for the typed document graph, a
// [Builder] that flattens nested precompositions into staged layers, and
// a styled-shape cascade ([StyledShapes]) that turns a shape group's
// children into (geometry, fill, stroke, transform) tuples.
//
// # Quick start
//
//	doc, err := lottiecore.Decode(data)
//	if err != nil {
//		// ...
//	}
//	b := lottiecore.NewBuilder(fontDB, lottiecore.Diagnostics{})
//	tl, err := b.Build(doc)
//	if err != nil {
//		// link/text errors are aggregated, not fatal; inspect via errors.Is/As
//	}
//	for _, layer := range tl.Layers() {
//		shapes, _ := lottiecore.StyledShapes(layer.Content.Shapes, frame)
//		_ = shapes
//	}
//
// # Scope
//
// lottiecore never touches pixels: no rasterization, no GPU, no window,
// no font-file I/O. Fonts and glyph outlines are supplied by the host
// through the [FontDB] and [FontHandle] interfaces; the sibling
// package [github.com/vectorscene/lottiecore/fontkit] offers a reference
// implementation built on golang.org/x/image/font/sfnt for hosts that
// don't want to write their own.
//
// lottiecore is single-threaded and synchronous: [Decode] and
// [Builder.Build] run to completion on the calling goroutine with no
// suspension points, and the resulting [Document] and [Timeline] are
// immutable and safe to share read-only across goroutines once built.
package lottiecore
