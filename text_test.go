package lottiecore

import "testing"

type fakeFontHandle struct {
	unitsPerEm float32
	advance    float32
	kerning    float32
	missing    map[rune]bool
}

func (f *fakeFontHandle) Load() error          { return nil }
func (f *fakeFontHandle) UnitsPerEm() float32  { return f.unitsPerEm }
func (f *fakeFontHandle) Kerning(prev, next rune) float32 { return f.kerning }
func (f *fakeFontHandle) Outline(c rune) (GlyphOutline, error) {
	if f.missing[c] {
		return GlyphOutline{}, &FontGlyphNotFoundError{Char: c}
	}
	return GlyphOutline{
		Advance: f.advance,
		Segments: []PathSegment{
			{Kind: SegmentMoveTo, X: 0, Y: 0},
			{Kind: SegmentLineTo, X: 10, Y: 0},
			{Kind: SegmentLineTo, X: 10, Y: 10},
			{Kind: SegmentClose},
		},
	}, nil
}

type fakeFontDB struct {
	handles map[string]FontHandle
}

func (db *fakeFontDB) Font(def FontDef) (FontHandle, bool) {
	h, ok := db.handles[def.Name]
	return h, ok
}

func TestRealizeTextMissingFontFamily(t *testing.T) {
	data := TextAnimationData{Document: staticAnimated(TextDocument{Value: "A", FontName: "Helvetica"})}
	_, err := realizeText(data, nil, &fakeFontDB{}, Diagnostics{})
	if err == nil {
		t.Fatal("expected FontFamilyNotFoundError")
	}
	if _, ok := err.(*FontFamilyNotFoundError); !ok {
		t.Errorf("error type = %T, want *FontFamilyNotFoundError", err)
	}
}

func TestRealizeTextFontNotLoaded(t *testing.T) {
	fonts := []FontDef{{Name: "Helvetica"}}
	db := &fakeFontDB{handles: map[string]FontHandle{}}
	data := TextAnimationData{Document: staticAnimated(TextDocument{Value: "A", FontName: "Helvetica"})}
	_, err := realizeText(data, fonts, db, Diagnostics{})
	if err == nil {
		t.Fatal("expected FontNotLoadedError")
	}
	if _, ok := err.(*FontNotLoadedError); !ok {
		t.Errorf("error type = %T, want *FontNotLoadedError", err)
	}
}

func TestRealizeTextMissingGlyph(t *testing.T) {
	fonts := []FontDef{{Name: "Helvetica"}}
	handle := &fakeFontHandle{unitsPerEm: 1000, advance: 500, missing: map[rune]bool{'A': true}}
	db := &fakeFontDB{handles: map[string]FontHandle{"Helvetica": handle}}
	data := TextAnimationData{Document: staticAnimated(TextDocument{Value: "A", FontName: "Helvetica"})}
	_, err := realizeText(data, fonts, db, Diagnostics{})
	if err == nil {
		t.Fatal("expected FontGlyphNotFoundError")
	}
	if _, ok := err.(*FontGlyphNotFoundError); !ok {
		t.Errorf("error type = %T, want *FontGlyphNotFoundError", err)
	}
}

func TestRealizeTextProducesOneGlyphGroupPerChar(t *testing.T) {
	fonts := []FontDef{{Name: "Helvetica"}}
	handle := &fakeFontHandle{unitsPerEm: 1000, advance: 500}
	db := &fakeFontDB{handles: map[string]FontHandle{"Helvetica": handle}}
	data := TextAnimationData{Document: staticAnimated(TextDocument{
		Value: "AB", FontName: "Helvetica", Size: 100, FillColor: Rgba{R: 255, A: 255},
	})}
	out, err := realizeText(data, fonts, db, Diagnostics{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 (one group per document keyframe)", len(out))
	}
	group, ok := out[0].Shape.(GroupShape)
	if !ok {
		t.Fatalf("Shape = %T, want GroupShape", out[0].Shape)
	}
	// glyphsGroup + outer transform.
	if len(group.Shapes) != 2 {
		t.Fatalf("len(outer.Shapes) = %d, want 2", len(group.Shapes))
	}
	glyphsGroup, ok := group.Shapes[0].Shape.(GroupShape)
	if !ok {
		t.Fatalf("Shapes[0] = %T, want GroupShape", group.Shapes[0].Shape)
	}
	if len(glyphsGroup.Shapes) != 2 {
		t.Errorf("len(glyphsGroup.Shapes) = %d, want 2 (one per character)", len(glyphsGroup.Shapes))
	}
}

func TestJustifyFromIntFallback(t *testing.T) {
	if justifyFromInt(99) != TextJustifyLeft {
		t.Error("unrecognized justify value should fall back to Left")
	}
	if justifyFromInt(1) != TextJustifyRight {
		t.Error("justify 1 should decode to Right")
	}
	if justifyFromInt(2) != TextJustifyCenter {
		t.Error("justify 2 should decode to Center")
	}
}

func TestAlphaToOpacityPercent(t *testing.T) {
	if got := alphaToOpacityPercent(255); !approxEqual32(got, 100, 0.01) {
		t.Errorf("alphaToOpacityPercent(255) = %v, want ~100", got)
	}
	if got := alphaToOpacityPercent(0); got != 0 {
		t.Errorf("alphaToOpacityPercent(0) = %v, want 0", got)
	}
}
