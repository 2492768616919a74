package lottiecore

import "fmt"

// Vector2D is a 2D point or vector in document pixel space, Y down.
type Vector2D struct {
	X, Y float32
}

// Add returns the componentwise sum of v and o.
func (v Vector2D) Add(o Vector2D) Vector2D { return Vector2D{v.X + o.X, v.Y + o.Y} }

// Sub returns the componentwise difference v - o.
func (v Vector2D) Sub(o Vector2D) Vector2D { return Vector2D{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vector2D) Scale(s float32) Vector2D { return Vector2D{v.X * s, v.Y * s} }

// Rect is an axis-aligned bounding box in document pixel space.
type Rect struct {
	X, Y, W, H float32
}

// Union returns the smallest Rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return o
	}
	if o.W == 0 && o.H == 0 {
		return r
	}
	x0 := min32(r.X, o.X)
	y0 := min32(r.Y, o.Y)
	x1 := max32(r.X+r.W, o.X+o.W)
	y1 := max32(r.Y+r.H, o.Y+o.H)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Rgba is a color in [0,255] byte components, decoded from whichever
// textual convention the document uses (see ParseColorString).
type Rgba struct {
	R, G, B, A uint8
}

// String renders c in the comma-separated fractional form used by the
// "sc" field of solid-color layers in real Lottie documents, always with
// four components including alpha (opaque red is "1,0,0,1"), which is
// also this codec's canonical encode form — see ParseColorString.
func (c Rgba) String() string {
	return fmt.Sprintf("%.10g,%.10g,%.10g,%.10g",
		float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

// EasingControl is one control point ([0,1] x frame-local time, unbounded
// value axis) of a keyframe's cubic bezier easing curve.
type EasingControl struct {
	X, Y float32
}
