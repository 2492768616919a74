package lottiecore

import (
	"encoding/json"
	"testing"
)

const scenarioOneDoc = `{
	"fr": 30, "ip": 0, "op": 100, "w": 512, "h": 512,
	"layers": [
		{"ty":1, "ind":0, "nm":"solid", "ip":0, "op":100, "st":0, "sc":"#ff0000", "sw":100, "sh":200},
		{"ty":4, "ind":1, "nm":"shape", "ip":0, "op":100, "st":0, "shapes":[]}
	]
}`

func TestDecodeScenarioOneDocument(t *testing.T) {
	doc, err := Decode([]byte(scenarioOneDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.FrameRate != 30 {
		t.Errorf("FrameRate = %v, want 30", doc.FrameRate)
	}
	if doc.EndFrame != 100 {
		t.Errorf("EndFrame = %v, want 100", doc.EndFrame)
	}
	if len(doc.Layers) != 2 {
		t.Fatalf("len(Layers) = %d, want 2", len(doc.Layers))
	}
	solid, ok := doc.Layers[0].Content.(SolidColor)
	if !ok {
		t.Fatalf("Layers[0].Content = %T, want SolidColor", doc.Layers[0].Content)
	}
	if solid.Color != (Rgba{R: 255, A: 255}) {
		t.Errorf("solid color = %+v, want {255 0 0 255}", solid.Color)
	}
	if solid.Width != 100 || solid.Height != 200 {
		t.Errorf("solid size = %vx%v, want 100x200", solid.Width, solid.Height)
	}
	shape, ok := doc.Layers[1].Content.(ShapeContent)
	if !ok {
		t.Fatalf("Layers[1].Content = %T, want ShapeContent", doc.Layers[1].Content)
	}
	if len(shape.Shapes) != 0 {
		t.Errorf("len(Shapes) = %d, want 0", len(shape.Shapes))
	}
}

func TestDecodeHiddenBooleanAsInt(t *testing.T) {
	raw := `{"fr":30,"ip":0,"op":10,"w":1,"h":1,"layers":[
		{"ty":4,"ip":0,"op":10,"st":0,"shapes":[
			{"ty":"fl","nm":"fill","hd":1,"c":[1,0,0],"o":100,"r":1}
		]}
	]}`
	doc, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shapes := doc.Layers[0].Content.(ShapeContent).Shapes
	if len(shapes) != 1 {
		t.Fatalf("len(shapes) = %d, want 1", len(shapes))
	}
	if !shapes[0].Hidden {
		t.Error("hd:1 should decode to Hidden=true")
	}
}

func TestDecodeUnsupportedLayerKind(t *testing.T) {
	raw := `{"fr":30,"ip":0,"op":10,"w":1,"h":1,"layers":[{"ty":99,"ip":0,"op":10,"st":0}]}`
	_, err := Decode([]byte(raw))
	if err == nil {
		t.Fatal("expected an error for an unsupported layer kind")
	}
}

// TestDecodeEncodeRoundTrip is spec §8's "Round-trip" property: decoding
// the result of Encode(doc) reproduces the same document structurally.
func TestDecodeEncodeRoundTrip(t *testing.T) {
	doc, err := Decode([]byte(scenarioOneDoc))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	encoded, err := Encode(doc)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if !json.Valid(encoded) {
		t.Fatalf("Encode produced invalid JSON: %s", encoded)
	}
	roundTripped, err := Decode(encoded)
	if err != nil {
		t.Fatalf("re-decode error: %v", err)
	}
	if roundTripped.FrameRate != doc.FrameRate || roundTripped.EndFrame != doc.EndFrame {
		t.Errorf("document-level fields did not round-trip: got fr=%v op=%v, want fr=%v op=%v",
			roundTripped.FrameRate, roundTripped.EndFrame, doc.FrameRate, doc.EndFrame)
	}
	if len(roundTripped.Layers) != len(doc.Layers) {
		t.Fatalf("len(Layers) = %d, want %d", len(roundTripped.Layers), len(doc.Layers))
	}
	rtSolid := roundTripped.Layers[0].Content.(SolidColor)
	origSolid := doc.Layers[0].Content.(SolidColor)
	if rtSolid.Color != origSolid.Color || rtSolid.Width != origSolid.Width || rtSolid.Height != origSolid.Height {
		t.Errorf("solid layer did not round-trip: got %+v, want %+v", rtSolid, origSolid)
	}
}

func TestTransformNormalizeDefaults(t *testing.T) {
	var t1 *Transform
	n := t1.normalize()
	pos, _ := n.Position.ValueAt(0)
	if pos != (Vector2D{}) {
		t.Errorf("default position = %+v, want zero", pos)
	}
	scale, _ := n.Scale.ValueAt(0)
	if scale != (Vector2D{X: 100, Y: 100}) {
		t.Errorf("default scale = %+v, want {100 100}", scale)
	}
	opacity, _ := n.Opacity.ValueAt(0)
	if opacity != 100 {
		t.Errorf("default opacity = %v, want 100", opacity)
	}
}
