// Package fontkit is a reference [lottiecore.FontDB]/[lottiecore.FontHandle]
// implementation for hosts that don't want to write their own font-file
// loading and glyph-outline extraction. It is not part of the
// lottiecore core (spec Non-goal: font file I/O), and lottiecore never
// imports it.
package fontkit

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/vectorscene/lottiecore"
)

const sfntUnitsPerEm = 1000

// DB is a name-keyed collection of font byte sources, implementing
// lottiecore.FontDB. Register font bytes before building a Timeline
// that references them.
type DB struct {
	mu    sync.Mutex
	faces map[string][]byte
	cache map[string]*Handle
}

// NewDB constructs an empty font database.
func NewDB() *DB {
	return &DB{faces: map[string][]byte{}, cache: map[string]*Handle{}}
}

// Register associates raw font file bytes (TrueType/OpenType/CFF) with
// a font name, matched against a document's [lottiecore.FontDef.Name].
func (db *DB) Register(name string, data []byte) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.faces[name] = data
}

// Font implements lottiecore.FontDB.
func (db *DB) Font(lottieFont lottiecore.FontDef) (lottiecore.FontHandle, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if h, ok := db.cache[lottieFont.Name]; ok {
		return h, true
	}
	data, ok := db.faces[lottieFont.Name]
	if !ok {
		return nil, false
	}
	h := &Handle{name: lottieFont.Name, raw: data}
	db.cache[lottieFont.Name] = h
	return h, true
}

// Handle is a lazily-parsed sfnt font face.
type Handle struct {
	name string
	raw  []byte

	mu     sync.Mutex
	face   *sfnt.Font
	buf    sfnt.Buffer
	loaded bool
}

// Load parses the face's byte source. Safe to call more than once.
func (h *Handle) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.loaded {
		return nil
	}
	f, err := sfnt.Parse(h.raw)
	if err != nil {
		return fmt.Errorf("fontkit: parsing %q: %w", h.name, err)
	}
	h.face = f
	h.loaded = true
	return nil
}

// UnitsPerEm implements lottiecore.FontHandle.
func (h *Handle) UnitsPerEm() float32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.face == nil {
		return sfntUnitsPerEm
	}
	upm, err := h.face.UnitsPerEm()
	if err != nil {
		return sfntUnitsPerEm
	}
	return float32(upm)
}

// Outline implements lottiecore.FontHandle, converting the glyph's
// scaled-to-units-per-em sfnt.Segments into lottiecore's PathSegment
// vocabulary. Quadratic segments are promoted to cubic (the degree-
// elevation identity) since lottiecore's Bezier type carries only
// cubic tangents.
func (h *Handle) Outline(c rune) (lottiecore.GlyphOutline, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.face == nil {
		return lottiecore.GlyphOutline{}, fmt.Errorf("fontkit: font %q not loaded", h.name)
	}
	upmFixed, err := h.face.UnitsPerEm()
	if err != nil {
		return lottiecore.GlyphOutline{}, err
	}
	idx, err := h.face.GlyphIndex(&h.buf, c)
	if err != nil {
		return lottiecore.GlyphOutline{}, err
	}
	if idx == 0 {
		return lottiecore.GlyphOutline{}, fmt.Errorf("fontkit: %q has no glyph for %q", h.name, c)
	}
	ppem := fixed.I(int(upmFixed))
	segments, err := h.face.LoadGlyph(&h.buf, idx, ppem, nil)
	if err != nil {
		return lottiecore.GlyphOutline{}, err
	}
	advanceFixed, err := h.face.GlyphAdvance(&h.buf, idx, ppem, font.HintingNone)
	if err != nil {
		return lottiecore.GlyphOutline{}, err
	}

	var out []lottiecore.PathSegment
	var cur lottiecoreVec2
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			p := toPoint(seg.Args[0])
			out = append(out, lottiecore.PathSegment{Kind: lottiecore.SegmentMoveTo, X: p.X, Y: p.Y})
			cur = p
		case sfnt.SegmentOpLineTo:
			p := toPoint(seg.Args[0])
			out = append(out, lottiecore.PathSegment{Kind: lottiecore.SegmentLineTo, X: p.X, Y: p.Y})
			cur = p
		case sfnt.SegmentOpQuadTo:
			ctrl := toPoint(seg.Args[0])
			end := toPoint(seg.Args[1])
			c1, c2 := quadToCubicControls(cur, ctrl, end)
			out = append(out, lottiecore.PathSegment{
				Kind: lottiecore.SegmentCubicTo,
				X1: c1.X, Y1: c1.Y, X2: c2.X, Y2: c2.Y, X: end.X, Y: end.Y,
			})
			cur = end
		case sfnt.SegmentOpCubeTo:
			c1 := toPoint(seg.Args[0])
			c2 := toPoint(seg.Args[1])
			end := toPoint(seg.Args[2])
			out = append(out, lottiecore.PathSegment{
				Kind: lottiecore.SegmentCubicTo,
				X1: c1.X, Y1: c1.Y, X2: c2.X, Y2: c2.Y, X: end.X, Y: end.Y,
			})
			cur = end
		}
	}
	out = append(out, lottiecore.PathSegment{Kind: lottiecore.SegmentClose})

	return lottiecore.GlyphOutline{
		Segments: out,
		Advance:  fixedToFloat32(advanceFixed),
	}, nil
}

// Kerning implements lottiecore.FontHandle.
func (h *Handle) Kerning(prev, next rune) float32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.face == nil {
		return 0
	}
	upmFixed, err := h.face.UnitsPerEm()
	if err != nil {
		return 0
	}
	i0, err := h.face.GlyphIndex(&h.buf, prev)
	if err != nil || i0 == 0 {
		return 0
	}
	i1, err := h.face.GlyphIndex(&h.buf, next)
	if err != nil || i1 == 0 {
		return 0
	}
	k, err := h.face.Kern(&h.buf, i0, i1, fixed.I(int(upmFixed)), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat32(k)
}

type lottiecoreVec2 struct{ X, Y float32 }

func toPoint(p fixed.Point26_6) lottiecoreVec2 {
	return lottiecoreVec2{X: fixedToFloat32(p.X), Y: fixedToFloat32(p.Y)}
}

func fixedToFloat32(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// quadToCubicControls degree-elevates a quadratic bezier (start implied
// by the caller's current point, single control point ctrl, endpoint
// end) to the two cubic control points representing the same curve.
func quadToCubicControls(start, ctrl, end lottiecoreVec2) (lottiecoreVec2, lottiecoreVec2) {
	c1 := lottiecoreVec2{
		X: start.X + (2.0/3.0)*(ctrl.X-start.X),
		Y: start.Y + (2.0/3.0)*(ctrl.Y-start.Y),
	}
	c2 := lottiecoreVec2{
		X: end.X + (2.0/3.0)*(ctrl.X-end.X),
		Y: end.Y + (2.0/3.0)*(ctrl.Y-end.Y),
	}
	return c1, c2
}

// NormalizeText applies Unicode NFC normalization to text before
// shaping, matching the convention of treating combining sequences as
// their precomposed form when a font's cmap only maps precomposed
// codepoints.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}
