package lottiecore

import (
	"encoding/json"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// TextJustify selects horizontal alignment of a text document's glyph
// group relative to its anchor (spec §4.3). Values beyond Left/Center/
// Right are treated as Left, matching the upstream's unimplemented
// branch (spec §9 Open Question).
type TextJustify int

const (
	TextJustifyLeft TextJustify = iota
	TextJustifyRight
	TextJustifyCenter
)

// TextDocument is one keyframe value of a text layer's animated content:
// the string, its font reference, and its styling.
type TextDocument struct {
	Value        string
	FontName     string
	Size         float32
	FillColor    Rgba
	Justify      TextJustify
	BaselineShift float32
}

// TextAnimationData is the payload of LayerContent ty=5: an animated
// TextDocument (spec §4.3).
type TextAnimationData struct {
	Document *Animated[TextDocument]
}

// FontHandle is a loaded font face, as resolved by FontDB (spec §6).
type FontHandle interface {
	Load() error
	UnitsPerEm() float32
	// Outline returns the glyph outline for a character, in font units
	// with a standard up-positive Y axis, plus its advance width.
	Outline(c rune) (GlyphOutline, error)
	// Kerning returns the kerning adjustment in font units between a
	// glyph pair. Implementations with no kerning table return 0.
	Kerning(prev, next rune) float32
}

// GlyphOutline is a glyph's path expressed as a sequence of path
// segments plus its advance width, both in font units.
type GlyphOutline struct {
	Segments []PathSegment
	Advance  float32
}

// PathSegmentKind tags a PathSegment's variant.
type PathSegmentKind int

const (
	SegmentMoveTo PathSegmentKind = iota
	SegmentLineTo
	SegmentCubicTo
	SegmentClose
)

// PathSegment is one step of a glyph outline, mirroring the vocabulary
// a font-shaping engine emits (spec §6 OutlineProvider).
type PathSegment struct {
	Kind       PathSegmentKind
	X, Y       float32 // MoveTo, LineTo, CubicTo endpoint
	X1, Y1     float32 // CubicTo first control point
	X2, Y2     float32 // CubicTo second control point
}

// FontDB resolves a document's declared font name to a loadable
// FontHandle (spec §6).
type FontDB interface {
	Font(lottieFont FontDef) (FontHandle, bool)
}

// realizeText expands a text animation's document keyframes into a
// Group shape tree per spec §4.3, grounded on the upstream's
// TextDocumentParser::shape_layer: one outer Group per document
// keyframe, each wrapping a glyphs Group plus a justification/baseline
// Transform; each glyph is itself a Group of {Path, Fill, Transform}.
func realizeText(data TextAnimationData, fonts []FontDef, fontdb FontDB, diag Diagnostics) ([]ShapeLayer, error) {
	if data.Document == nil {
		return nil, nil
	}
	out := make([]ShapeLayer, 0, len(data.Document.Keyframes))
	for _, kf := range data.Document.Keyframes {
		group, err := realizeTextKeyframe(kf, fonts, fontdb, diag)
		if err != nil {
			return nil, err
		}
		out = append(out, group)
	}
	return out, nil
}

func realizeTextKeyframe(kf KeyFrame[TextDocument], fonts []FontDef, fontdb FontDB, diag Diagnostics) (ShapeLayer, error) {
	doc := kf.Value
	fontDef, ok := findFont(fonts, doc.FontName)
	if !ok {
		return ShapeLayer{}, &FontFamilyNotFoundError{Name: doc.FontName}
	}
	handle, ok := fontdb.Font(fontDef)
	if !ok {
		return ShapeLayer{}, &FontNotLoadedError{Name: doc.FontName}
	}
	if err := handle.Load(); err != nil {
		return ShapeLayer{}, &FontNotLoadedError{Name: doc.FontName}
	}
	units := handle.UnitsPerEm()
	if units == 0 {
		units = 1000
	}
	factor := doc.Size / units

	var glyphShapes []ShapeLayer
	var advance float32
	var prev rune
	hasPrev := false

	gr := uniseg.NewGraphemes(norm.NFC.String(doc.Value))
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 0 {
			continue
		}
		c := runes[0]
		outline, err := handle.Outline(c)
		if err != nil {
			return ShapeLayer{}, &FontGlyphNotFoundError{Name: doc.FontName, Char: c}
		}
		kerning := float32(0)
		if hasPrev {
			kerning = handle.Kerning(prev, c)
		}
		offsetX := advance

		beziers := outlineToBeziers(outline, factor)
		pathShape := ShapeLayer{Shape: PathShape{Data: staticAnimated(beziers)}}
		fillShape := ShapeLayer{Shape: Fill{
			Color:    staticAnimated(doc.FillColor),
			Opacity:  staticAnimated(alphaToOpacityPercent(doc.FillColor.A)),
			FillRule: FillNonZero,
		}}
		glyphTransform := Transform{Position: staticAnimated(Vector2D{X: offsetX, Y: 0})}
		glyphShapes = append(glyphShapes, ShapeLayer{
			Name: string(c),
			Shape: GroupShape{Shapes: []ShapeLayer{
				pathShape,
				fillShape,
				{Shape: TransformShape{Transform: *glyphTransform.normalize()}},
			}},
		})

		advance += outline.Advance*factor + kerning*factor
		prev = c
		hasPrev = true
	}

	glyphsGroup := ShapeLayer{Shape: GroupShape{Shapes: glyphShapes}}

	var shiftX float32
	switch doc.Justify {
	case TextJustifyCenter:
		shiftX = -advance / 2
	case TextJustifyRight:
		shiftX = -advance
	default:
		shiftX = 0
	}
	outerTransform := Transform{Position: staticAnimated(Vector2D{X: shiftX, Y: -doc.BaselineShift})}

	return ShapeLayer{Shape: GroupShape{Shapes: []ShapeLayer{
		glyphsGroup,
		{Shape: TransformShape{Transform: *outerTransform.normalize()}},
	}}}, nil
}

func findFont(fonts []FontDef, name string) (FontDef, bool) {
	for _, f := range fonts {
		if f.Name == name {
			return f, true
		}
	}
	return FontDef{}, false
}

func alphaToOpacityPercent(a uint8) float32 {
	return float32(a) / 255 * 100
}

// outlineToBeziers converts a glyph outline's path segments into Bezier
// paths, applying the font-to-scene Y-flip and size/units scale factor
// (spec §4.3 step 3), grounded on the upstream's PathSegment match arm
// over MoveTo/LineTo/CurveTo/ClosePath.
func outlineToBeziers(outline GlyphOutline, factor float32) []Bezier {
	var out []Bezier
	var cur Bezier
	var lastPt Vector2D
	flush := func() {
		if len(cur.Vertices) > 0 {
			cur.OutTangent = append(cur.OutTangent, Vector2D{})
			out = append(out, cur)
		}
		cur = Bezier{}
	}
	for _, seg := range outline.Segments {
		switch seg.Kind {
		case SegmentMoveTo:
			flush()
			pt := Vector2D{X: seg.X * factor, Y: -seg.Y * factor}
			cur.InTangent = append(cur.InTangent, Vector2D{})
			cur.Vertices = append(cur.Vertices, pt)
			lastPt = pt
		case SegmentLineTo:
			pt := Vector2D{X: seg.X * factor, Y: -seg.Y * factor}
			cur.OutTangent = append(cur.OutTangent, Vector2D{})
			cur.InTangent = append(cur.InTangent, Vector2D{})
			cur.Vertices = append(cur.Vertices, pt)
			lastPt = pt
		case SegmentCubicTo:
			c1 := Vector2D{X: seg.X1 * factor, Y: -seg.Y1 * factor}
			c2 := Vector2D{X: seg.X2 * factor, Y: -seg.Y2 * factor}
			pt := Vector2D{X: seg.X * factor, Y: -seg.Y * factor}
			cur.OutTangent = append(cur.OutTangent, c1.Sub(lastPt))
			cur.InTangent = append(cur.InTangent, c2.Sub(pt))
			cur.Vertices = append(cur.Vertices, pt)
			lastPt = pt
		case SegmentClose:
			cur.Closed = true
		}
	}
	flush()
	return out
}

// --- Wire decode ---

type wireTextData struct {
	Document *json.RawMessage `json:"d"`
}

type wireTextDocumentKeyframe struct {
	StartFrame *float32               `json:"t"`
	Value      wireTextDocumentValue  `json:"s"`
	EasingIn   *wireEasingControl     `json:"i"`
	EasingOut  *wireEasingControl     `json:"o"`
}

type wireTextDocumentValue struct {
	Value         string   `json:"t"`
	FontName      string   `json:"f"`
	Size          float32  `json:"s"`
	FillColor     *string  `json:"fc"`
	Justify       int      `json:"j"`
	BaselineShift float32  `json:"ls"`
}

func (wt *wireTextData) decode() (TextAnimationData, error) {
	if wt.Document == nil {
		return TextAnimationData{}, &MissingFieldError{Field: "t.d"}
	}
	trimmed := trimSpaceBytes(*wt.Document)
	var keyframes []wireTextDocumentKeyframe
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &keyframes); err != nil {
			return TextAnimationData{}, err
		}
	} else if looksLikeKeyframeObject(trimmed) {
		var single wireTextDocumentKeyframe
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return TextAnimationData{}, err
		}
		keyframes = []wireTextDocumentKeyframe{single}
	} else {
		var value wireTextDocumentValue
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return TextAnimationData{}, err
		}
		keyframes = []wireTextDocumentKeyframe{{Value: value}}
	}

	out := make([]KeyFrame[TextDocument], len(keyframes))
	for i, wk := range keyframes {
		doc, err := wk.Value.decode()
		if err != nil {
			return TextAnimationData{}, err
		}
		kf := KeyFrame[TextDocument]{Value: doc, StartFrame: wk.StartFrame}
		if wk.EasingIn != nil {
			kf.EasingIn = &EasingControl{X: float32(wk.EasingIn.X), Y: float32(wk.EasingIn.Y)}
		}
		if wk.EasingOut != nil {
			kf.EasingOut = &EasingControl{X: float32(wk.EasingOut.X), Y: float32(wk.EasingOut.Y)}
		}
		out[i] = kf
	}
	return TextAnimationData{Document: &Animated[TextDocument]{Keyframes: out}}, nil
}

func (v wireTextDocumentValue) decode() (TextDocument, error) {
	td := TextDocument{
		Value:         v.Value,
		FontName:      v.FontName,
		Size:          v.Size,
		Justify:       justifyFromInt(v.Justify),
		BaselineShift: v.BaselineShift,
	}
	if v.FillColor != nil {
		c, err := ParseColorString(*v.FillColor)
		if err != nil {
			return TextDocument{}, err
		}
		td.FillColor = c
	} else {
		td.FillColor = Rgba{A: 255}
	}
	return td, nil
}

func justifyFromInt(v int) TextJustify {
	switch v {
	case 1:
		return TextJustifyRight
	case 2:
		return TextJustifyCenter
	default:
		return TextJustifyLeft
	}
}
