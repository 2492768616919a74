package lottiecore

import (
	"encoding/json"
	"testing"
)

func approxEqual32(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

// TestAnimatedOpacityLinear is spec §8 scenario 6: keyframes
// [(f=0,v=0),(f=10,v=100)] linear; f=5 -> 50, f=-1 -> 0, f=20 -> 100.
func TestAnimatedOpacityLinear(t *testing.T) {
	zero, ten := float32(0), float32(10)
	a := &Animated[float32]{Keyframes: []KeyFrame[float32]{
		{Value: 0, StartFrame: &zero},
		{Value: 100, StartFrame: &ten},
	}}
	tests := []struct {
		frame float32
		want  float32
	}{
		{5, 50},
		{-1, 0},
		{20, 100},
		{0, 0},
		{10, 100},
	}
	for _, tt := range tests {
		got, err := a.ValueAt(tt.frame)
		if err != nil {
			t.Fatalf("ValueAt(%v) error: %v", tt.frame, err)
		}
		if !approxEqual32(got, tt.want, 0.001) {
			t.Errorf("ValueAt(%v) = %v, want %v", tt.frame, got, tt.want)
		}
	}
}

func TestAnimatedSingleKeyframeStatic(t *testing.T) {
	a := staticAnimated(float32(42))
	if a.IsAnimated() {
		t.Error("single keyframe should not be animated")
	}
	got, err := a.ValueAt(1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("ValueAt = %v, want 42", got)
	}
}

func TestDecodeAnimatedBareValue(t *testing.T) {
	a, err := decodeAnimatedFloat32(json.RawMessage(`5`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.IsAnimated() {
		t.Error("bare value should decode to a single static keyframe")
	}
	v, _ := a.ValueAt(0)
	if v != 5 {
		t.Errorf("value = %v, want 5", v)
	}
}

func TestDecodeAnimatedKeyframeArray(t *testing.T) {
	raw := json.RawMessage(`[{"t":0,"s":[0]},{"t":10,"s":[100]}]`)
	a, err := decodeAnimatedFloat32(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.IsAnimated() {
		t.Error("keyframe array should decode to an animated property")
	}
	if len(a.Keyframes) != 2 {
		t.Fatalf("len(Keyframes) = %d, want 2", len(a.Keyframes))
	}
}

// TestKeyframeFormRoundTrip is spec §8 "Keyframe form": a property with
// exactly one keyframe and no easing encodes to the bare-value form;
// decoding that bare form yields the same single-keyframe property.
func TestKeyframeFormRoundTrip(t *testing.T) {
	a := staticAnimated(float32(7.5))
	encoded := encodeAnimated(a, func(v float32) any { return v })
	raw, err := json.Marshal(encoded)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(raw) != "7.5" {
		t.Errorf("encoded bare value = %s, want 7.5", raw)
	}
	decoded, err := decodeAnimatedFloat32(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if decoded.IsAnimated() {
		t.Error("round-tripped property should still be static")
	}
	v, _ := decoded.ValueAt(0)
	if v != 7.5 {
		t.Errorf("round-tripped value = %v, want 7.5", v)
	}
}

func TestInterpolateValueBezierTopologyChange(t *testing.T) {
	a := []Bezier{{Vertices: []Vector2D{{}, {}, {}}, InTangent: make([]Vector2D, 3), OutTangent: make([]Vector2D, 3)}}
	b := []Bezier{{Vertices: []Vector2D{{}, {}}, InTangent: make([]Vector2D, 2), OutTangent: make([]Vector2D, 2)}}
	_, err := interpolateValue(a, b, 0.5)
	if err == nil {
		t.Fatal("expected ShapeTopologyChangeError, got nil")
	}
	if _, ok := err.(*ShapeTopologyChangeError); !ok {
		t.Errorf("error type = %T, want *ShapeTopologyChangeError", err)
	}
}

func TestRemapEasingLinearFallback(t *testing.T) {
	got := remapEasing(0.5, nil, nil)
	if got != 0.5 {
		t.Errorf("remapEasing with no controls = %v, want 0.5 (linear)", got)
	}
}
