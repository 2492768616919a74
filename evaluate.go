package lottiecore

import (
	"encoding/json"
	"fmt"
)

// KeyFrame is one (start-frame, value, easing) entry of an animated
// property (spec §3 "Animated<T>").
type KeyFrame[T any] struct {
	Value      T
	StartFrame *float32
	EasingIn   *EasingControl
	EasingOut  *EasingControl
}

// Animated is either a single static value or a list of keyframes sorted
// by start frame ascending (spec §3). The wire form is asymmetric: a bare
// literal implies static, an array of keyframe objects implies animated.
type Animated[T any] struct {
	Keyframes []KeyFrame[T]
}

// IsAnimated reports whether the property has more than one keyframe.
func (a *Animated[T]) IsAnimated() bool {
	return a != nil && len(a.Keyframes) > 1
}

// ValueAt evaluates the property at frame f in its own local clock
// (callers project through the frame-transform hierarchy first — see
// Timeline.ValueAtFloat32 and Timeline.ValueAtVec2). Clamps to the first/last keyframe outside the
// keyframe range (spec §4.4 "Property evaluation").
func (a *Animated[T]) ValueAt(f float32) (T, error) {
	var zero T
	if a == nil || len(a.Keyframes) == 0 {
		return zero, nil
	}
	if len(a.Keyframes) == 1 {
		return a.Keyframes[0].Value, nil
	}
	first := a.Keyframes[0]
	if first.StartFrame != nil && f <= *first.StartFrame {
		return first.Value, nil
	}
	last := a.Keyframes[len(a.Keyframes)-1]
	if last.StartFrame != nil && f >= *last.StartFrame {
		return last.Value, nil
	}
	for i := 0; i < len(a.Keyframes)-1; i++ {
		k0, k1 := a.Keyframes[i], a.Keyframes[i+1]
		if k0.StartFrame == nil || k1.StartFrame == nil {
			continue
		}
		if f < *k0.StartFrame || f > *k1.StartFrame {
			continue
		}
		span := *k1.StartFrame - *k0.StartFrame
		var t float64
		if span > 0 {
			t = float64((f - *k0.StartFrame) / span)
		}
		t = remapEasing(t, k0.EasingOut, k1.EasingIn)
		return interpolateValue(k0.Value, k1.Value, t)
	}
	return last.Value, nil
}

// remapEasing solves the cubic bezier defined by easingOut (the outgoing
// control of the first keyframe) and easingIn (the incoming control of
// the second) for the eased time at normalized time t, per spec §4.4.
// Falls back to linear if either control is absent.
func remapEasing(t float64, easingOut, easingIn *EasingControl) float64 {
	if easingOut == nil || easingIn == nil {
		return t
	}
	p1x, p1y := float64(easingOut.X), float64(easingOut.Y)
	p2x, p2y := float64(easingIn.X), float64(easingIn.Y)
	// Solve for the bezier parameter u such that bezierX(u) == t, then
	// evaluate bezierY(u). Newton-Raphson, stopping early if the
	// derivative vanishes or a step would leave [0,1]; lottie easing
	// curves are monotonic in X by convention.
	u := t
	for iter := 0; iter < 8; iter++ {
		x := bezier1D(u, p1x, p2x) - t
		dx := bezier1DDerivative(u, p1x, p2x)
		if dx == 0 {
			break
		}
		next := u - x/dx
		if next < 0 || next > 1 {
			break
		}
		u = next
	}
	if u < 0 {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	return bezier1D(u, p1y, p2y)
}

// bezier1D evaluates a cubic bezier from 0 to 1 with control points p1,p2
// on one axis (the implicit anchors are 0 and 1).
func bezier1D(u, p1, p2 float64) float64 {
	mu := 1 - u
	return 3*mu*mu*u*p1 + 3*mu*u*u*p2 + u*u*u
}

func bezier1DDerivative(u, p1, p2 float64) float64 {
	mu := 1 - u
	return 3*mu*mu*p1 + 6*mu*u*(p2-p1) + 3*u*u*(1-p2)
}

// interpolateValue linearly interpolates between two property values at
// eased time t, dispatching on the concrete type T. []Bezier keyframes
// with mismatched vertex counts fail with ShapeTopologyChangeError
// (spec §4.4).
func interpolateValue[T any](a, b T, t float64) (T, error) {
	var zero T
	switch av := any(a).(type) {
	case float32:
		bv := any(b).(float32)
		return any(av + float32(t)*(bv-av)).(T), nil
	case Vector2D:
		bv := any(b).(Vector2D)
		return any(Vector2D{
			X: av.X + float32(t)*(bv.X-av.X),
			Y: av.Y + float32(t)*(bv.Y-av.Y),
		}).(T), nil
	case Rgba:
		bv := any(b).(Rgba)
		lerp := func(x, y uint8) uint8 { return uint8(float64(x) + t*(float64(y)-float64(x))) }
		return any(Rgba{R: lerp(av.R, bv.R), G: lerp(av.G, bv.G), B: lerp(av.B, bv.B), A: lerp(av.A, bv.A)}).(T), nil
	case []Bezier:
		bv := any(b).([]Bezier)
		out, err := interpolateBezierList(av, bv, t)
		if err != nil {
			return zero, err
		}
		return any(out).(T), nil
	default:
		return zero, fmt.Errorf("lottiecore: no interpolation defined for %T", a)
	}
}

func interpolateBezierList(a, b []Bezier, t float64) ([]Bezier, error) {
	if len(a) != len(b) {
		return nil, &ShapeTopologyChangeError{From: bezierVertexCount(a), To: bezierVertexCount(b)}
	}
	out := make([]Bezier, len(a))
	for i := range a {
		bz, err := interpolateBezier(a[i], b[i], t)
		if err != nil {
			return nil, err
		}
		out[i] = bz
	}
	return out, nil
}

func bezierVertexCount(bs []Bezier) int {
	n := 0
	for _, b := range bs {
		n += len(b.Vertices)
	}
	return n
}

func interpolateBezier(a, b Bezier, t float64) (Bezier, error) {
	if len(a.Vertices) != len(b.Vertices) {
		return Bezier{}, &ShapeTopologyChangeError{From: len(a.Vertices), To: len(b.Vertices)}
	}
	out := Bezier{
		Closed:   a.Closed,
		Vertices: make([]Vector2D, len(a.Vertices)),
		InTangent: make([]Vector2D, len(a.Vertices)),
		OutTangent: make([]Vector2D, len(a.Vertices)),
	}
	lerpPt := func(x, y Vector2D) Vector2D {
		return Vector2D{
			X: x.X + float32(t)*(y.X-x.X),
			Y: x.Y + float32(t)*(y.Y-x.Y),
		}
	}
	for i := range a.Vertices {
		out.Vertices[i] = lerpPt(a.Vertices[i], b.Vertices[i])
		out.InTangent[i] = lerpPt(a.InTangent[i], b.InTangent[i])
		out.OutTangent[i] = lerpPt(a.OutTangent[i], b.OutTangent[i])
	}
	return out, nil
}

// --- Wire decode: keyframe/plain dual form (spec §4.1) ---

type wireKeyFrame struct {
	StartFrame *float32          `json:"t"`
	Value      json.RawMessage   `json:"s"`
	EasingIn   *wireEasingControl `json:"i"`
	EasingOut  *wireEasingControl `json:"o"`
}

type wireEasingControl struct {
	X firstFloat32 `json:"x"`
	Y firstFloat32 `json:"y"`
}

// firstFloat32 decodes either a bare number or a single-element array of
// numbers (both forms appear in the wild for "i"/"o" easing handles).
type firstFloat32 float32

func (f *firstFloat32) UnmarshalJSON(data []byte) error {
	var single float32
	if err := json.Unmarshal(data, &single); err == nil {
		*f = firstFloat32(single)
		return nil
	}
	var list []float32
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("lottiecore: empty easing control array")
	}
	*f = firstFloat32(list[0])
	return nil
}

func decodeAnimatedFloat32(raw json.RawMessage) (*Animated[float32], error) {
	return decodeAnimated(raw, func(v json.RawMessage) (float32, error) {
		var f float32
		if err := json.Unmarshal(v, &f); err == nil {
			return f, nil
		}
		var list []float32
		if err := json.Unmarshal(v, &list); err == nil && len(list) > 0 {
			return list[0], nil
		}
		return 0, &TypeMismatchError{Field: "scalar", Wanted: "number or [number]", Got: string(v)}
	})
}

func decodeAnimatedVec2(raw json.RawMessage) (*Animated[Vector2D], error) {
	return decodeAnimated(raw, func(v json.RawMessage) (Vector2D, error) {
		var list []float32
		if err := json.Unmarshal(v, &list); err != nil || len(list) < 2 {
			return Vector2D{}, &TypeMismatchError{Field: "vector2", Wanted: "[x,y,...]", Got: string(v)}
		}
		return Vector2D{X: list[0], Y: list[1]}, nil
	})
}

func decodeAnimatedRgba(raw json.RawMessage) (*Animated[Rgba], error) {
	return decodeAnimated(raw, func(v json.RawMessage) (Rgba, error) {
		var list []float32
		if err := json.Unmarshal(v, &list); err != nil || len(list) < 3 {
			return Rgba{}, &TypeMismatchError{Field: "color", Wanted: "[r,g,b(,a)]", Got: string(v)}
		}
		a := float32(1)
		if len(list) >= 4 {
			a = list[3]
		}
		return Rgba{
			R: byteFromFraction(float64(list[0])),
			G: byteFromFraction(float64(list[1])),
			B: byteFromFraction(float64(list[2])),
			A: byteFromFraction(float64(a)),
		}, nil
	})
}

func decodeAnimatedBeziers(raw json.RawMessage) (*Animated[[]Bezier], error) {
	return decodeAnimated(raw, decodeBezierValue)
}

// decodeAnimated implements the dual bare-value/keyframe-array wire form
// shared by every Animated<T> field (spec §4.1 "Keyframe/plain dual form").
func decodeAnimated[T any](raw json.RawMessage, parse func(json.RawMessage) (T, error)) (*Animated[T], error) {
	trimmed := trimSpaceBytes(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if trimmed[0] == '[' {
		// Could be a plain numeric array (static vector) or a keyframe
		// object array. Probe the first element.
		var probe []json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, &TypeMismatchError{Field: "animated", Wanted: "array", Got: string(trimmed)}
		}
		if len(probe) > 0 && looksLikeKeyframeObject(probe[0]) {
			var wireFrames []wireKeyFrame
			if err := json.Unmarshal(trimmed, &wireFrames); err != nil {
				return nil, err
			}
			out := make([]KeyFrame[T], len(wireFrames))
			for i, wk := range wireFrames {
				v, err := parse(wk.Value)
				if err != nil {
					return nil, err
				}
				kf := KeyFrame[T]{Value: v, StartFrame: wk.StartFrame}
				if wk.EasingIn != nil {
					kf.EasingIn = &EasingControl{X: float32(wk.EasingIn.X), Y: float32(wk.EasingIn.Y)}
				}
				if wk.EasingOut != nil {
					kf.EasingOut = &EasingControl{X: float32(wk.EasingOut.X), Y: float32(wk.EasingOut.Y)}
				}
				out[i] = kf
			}
			return &Animated[T]{Keyframes: out}, nil
		}
	}
	v, err := parse(trimmed)
	if err != nil {
		return nil, err
	}
	return &Animated[T]{Keyframes: []KeyFrame[T]{{Value: v}}}, nil
}

func looksLikeKeyframeObject(raw json.RawMessage) bool {
	var probe struct {
		StartFrame *float32 `json:"t"`
		Value      *json.RawMessage `json:"s"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.StartFrame != nil || probe.Value != nil
}

func trimSpaceBytes(b []byte) []byte {
	i, j := 0, len(b)
	for i < j && isJSONSpace(b[i]) {
		i++
	}
	for j > i && isJSONSpace(b[j-1]) {
		j--
	}
	return b[i:j]
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// --- Wire encode: keyframe/plain dual form ---

// encodeAnimated re-serializes a into the dual wire form: a single static
// keyframe with no easing round-trips to the bare value; anything else
// encodes as a keyframe array (spec §4.1, §8 "Keyframe form").
func encodeAnimated[T any](a *Animated[T], encode func(T) any) any {
	if a == nil || len(a.Keyframes) == 0 {
		return nil
	}
	if len(a.Keyframes) == 1 && a.Keyframes[0].StartFrame == nil &&
		a.Keyframes[0].EasingIn == nil && a.Keyframes[0].EasingOut == nil {
		return encode(a.Keyframes[0].Value)
	}
	frames := make([]map[string]any, len(a.Keyframes))
	for i, kf := range a.Keyframes {
		m := map[string]any{"s": encode(kf.Value)}
		if kf.StartFrame != nil {
			m["t"] = *kf.StartFrame
		}
		if kf.EasingIn != nil {
			m["i"] = map[string]float32{"x": kf.EasingIn.X, "y": kf.EasingIn.Y}
		}
		if kf.EasingOut != nil {
			m["o"] = map[string]float32{"x": kf.EasingOut.X, "y": kf.EasingOut.Y}
		}
		frames[i] = m
	}
	return frames
}
