package lottiecore

import (
	"encoding/json"
	"math"
)

// PathBuilder is the host-provided sink geometry is emitted to (spec §6).
// The core never rasterizes; it only calls these methods in order.
type PathBuilder interface {
	Begin(pt Vector2D)
	LineTo(pt Vector2D)
	QuadraticTo(c, pt Vector2D)
	CubicTo(c1, c2, pt Vector2D)
	End(closed bool)
}

// Bezier is a cubic path: parallel arrays of vertices and in/out tangents
// (relative to their vertex), plus a closed flag (spec §3).
type Bezier struct {
	Vertices   []Vector2D
	InTangent  []Vector2D
	OutTangent []Vector2D
	Closed     bool
}

// ToPath emits this path to builder, per spec §4.3 "Bezier path":
// straight segments where both tangents are zero-length, quadratic where
// the two effective control points coincide, cubic otherwise; closed
// paths emit a final segment back to the first vertex.
func (b Bezier) ToPath(builder PathBuilder) {
	if len(b.Vertices) == 0 {
		return
	}
	builder.Begin(b.Vertices[0])
	for i := 1; i < len(b.Vertices); i++ {
		p0 := b.Vertices[i-1]
		p := b.Vertices[i]
		c1 := p0.Add(b.OutTangent[i-1])
		c2 := p.Add(b.InTangent[i])
		emitSegment(builder, p0, c1, c2, p)
	}
	if b.Closed {
		last := len(b.Vertices) - 1
		c1 := b.Vertices[last].Add(b.OutTangent[last])
		c2 := b.Vertices[0].Add(b.InTangent[0])
		emitSegment(builder, b.Vertices[last], c1, c2, b.Vertices[0])
	}
	builder.End(b.Closed)
}

func emitSegment(builder PathBuilder, p0, c1, c2, p Vector2D) {
	zero1 := c1 == p0
	zero2 := c2 == p
	switch {
	case zero1 && zero2:
		builder.LineTo(p)
	case c1 == c2:
		builder.QuadraticTo(c1, p)
	default:
		builder.CubicTo(c1, c2, p)
	}
}

// BBox returns the union of each cubic segment's bounding box, solving
// the derivative roots per spec §4.3.
func (b Bezier) BBox() Rect {
	var out Rect
	for i := 1; i < len(b.Vertices); i++ {
		out = out.Union(cubicBBox(b.Vertices[i-1], b.Vertices[i-1].Add(b.OutTangent[i-1]), b.Vertices[i].Add(b.InTangent[i]), b.Vertices[i]))
	}
	if b.Closed && len(b.Vertices) > 0 {
		last := len(b.Vertices) - 1
		out = out.Union(cubicBBox(b.Vertices[last], b.Vertices[last].Add(b.OutTangent[last]), b.Vertices[0].Add(b.InTangent[0]), b.Vertices[0]))
	}
	return out
}

func cubicBBox(p0, p1, p2, p3 Vector2D) Rect {
	xs := cubicExtrema(p0.X, p1.X, p2.X, p3.X)
	ys := cubicExtrema(p0.Y, p1.Y, p2.Y, p3.Y)
	minX, maxX := minMax(xs)
	minY, maxY := minMax(ys)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// cubicExtrema returns the endpoints plus any interior extremum found by
// solving the cubic's derivative for real roots in [0,1].
func cubicExtrema(p0, p1, p2, p3 float32) []float32 {
	out := []float32{p0, p3}
	a := float64(-p0 + 3*p1 - 3*p2 + p3)
	b := float64(2 * (p0 - 2*p1 + p2))
	c := float64(p1 - p0)
	if a == 0 {
		if b != 0 {
			t := -c / b
			if t >= 0 && t <= 1 {
				out = append(out, cubicAt(p0, p1, p2, p3, t))
			}
		}
		return out
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return out
	}
	sq := math.Sqrt(disc)
	for _, t := range []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if t >= 0 && t <= 1 {
			out = append(out, cubicAt(p0, p1, p2, p3, t))
		}
	}
	return out
}

func cubicAt(p0, p1, p2, p3 float32, t float64) float32 {
	mu := 1 - t
	return float32(mu*mu*mu*float64(p0) + 3*mu*mu*t*float64(p1) + 3*mu*t*t*float64(p2) + t*t*t*float64(p3))
}

func minMax(vs []float32) (float32, float32) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// --- Shape tagged variants ---

// ShapeDirection controls winding for Rectangle/PolyStar.
type ShapeDirection int

const (
	DirectionClockwise ShapeDirection = iota
	DirectionCounterClockwise
)

// PolyStarType selects between a Star (alternating radii) and Polygon
// (single radius, every other vertex skipped).
type PolyStarType int

const (
	PolyStarStar PolyStarType = iota
	PolyStarPolygon
)

// FillRule selects the fill algorithm for Fill/GradientFill.
type FillRule int

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// LineCap selects the stroke cap style.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin selects the stroke join style.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// Shape is the tagged-variant payload of a ShapeLayer (spec §3).
type Shape interface {
	shapeTag() string
	// IsShape reports whether this variant is a drawable primitive
	// (Rectangle, Ellipse, PolyStar, Path).
	IsShape() bool
	// IsStyle reports whether this variant is a Fill/Stroke/
	// GradientFill/GradientStroke style entry.
	IsStyle() bool
	// IsGroup reports whether this variant is a Group.
	IsGroup() bool
}

type shapeBase struct{}

func (shapeBase) IsShape() bool { return false }
func (shapeBase) IsStyle() bool { return false }
func (shapeBase) IsGroup() bool { return false }

type primitiveBase struct{ shapeBase }

func (primitiveBase) IsShape() bool { return true }

type styleBase struct{ shapeBase }

func (styleBase) IsStyle() bool { return true }

// Rectangle is Shape ty="rc".
type Rectangle struct {
	primitiveBase
	Position  *Animated[Vector2D]
	Size      *Animated[Vector2D]
	Roundness *Animated[float32]
	Direction ShapeDirection
}

func (Rectangle) shapeTag() string { return "rc" }

// Ellipse is Shape ty="el".
type Ellipse struct {
	primitiveBase
	Position  *Animated[Vector2D]
	Size      *Animated[Vector2D]
	Direction ShapeDirection
}

func (Ellipse) shapeTag() string { return "el" }

// PolyStar is Shape ty="sr".
type PolyStar struct {
	primitiveBase
	Position       *Animated[Vector2D]
	Points         *Animated[float32]
	Rotation       *Animated[float32]
	OuterRadius    *Animated[float32]
	InnerRadius    *Animated[float32]
	OuterRoundness *Animated[float32]
	InnerRoundness *Animated[float32]
	StarType       PolyStarType
	Direction      ShapeDirection
}

func (PolyStar) shapeTag() string { return "sr" }

// PathShape is Shape ty="sh": an animated collection of cubic Bezier paths.
type PathShape struct {
	primitiveBase
	Data *Animated[[]Bezier]
}

func (PathShape) shapeTag() string { return "sh" }

// Fill is Shape ty="fl".
type Fill struct {
	styleBase
	Color    *Animated[Rgba]
	Opacity  *Animated[float32]
	FillRule FillRule
	Hidden   bool
}

func (Fill) shapeTag() string { return "fl" }

// Stroke is Shape ty="st".
type Stroke struct {
	styleBase
	Color    *Animated[Rgba]
	Opacity  *Animated[float32]
	Width    *Animated[float32]
	LineCap  LineCap
	LineJoin LineJoin
}

func (Stroke) shapeTag() string { return "st" }

// GradientFill is Shape ty="gf".
type GradientFill struct {
	styleBase
	Opacity  *Animated[float32]
	FillRule FillRule
}

func (GradientFill) shapeTag() string { return "gf" }

// GradientStroke is Shape ty="gs".
type GradientStroke struct {
	styleBase
	Opacity  *Animated[float32]
	Width    *Animated[float32]
	LineCap  LineCap
	LineJoin LineJoin
}

func (GradientStroke) shapeTag() string { return "gs" }

// TransformShape is Shape ty="tr": a shape-group-local transform entry.
type TransformShape struct {
	shapeBase
	Transform Transform
}

func (TransformShape) shapeTag() string { return "tr" }

// GroupShape is Shape ty="gr": a recursive, ordered list of ShapeLayers.
type GroupShape struct {
	shapeBase
	Shapes []ShapeLayer
}

func (GroupShape) shapeTag() string { return "gr" }
func (GroupShape) IsGroup() bool    { return true }

// ShapeLayer is one entry of a style cascade: a name, a hidden flag, and
// a Shape variant (spec §3).
type ShapeLayer struct {
	Name   string
	Hidden bool
	Shape  Shape
}

// --- bbox on the Shape level ---

// ShapeBBox computes the bounding box of a primitive shape at frame f.
// Non-primitive shapes (styles, transforms, groups) return the zero Rect.
func ShapeBBox(s Shape, f float32) (Rect, error) {
	switch v := s.(type) {
	case Ellipse:
		pos, err := v.Position.ValueAt(f)
		if err != nil {
			return Rect{}, err
		}
		size, err := v.Size.ValueAt(f)
		if err != nil {
			return Rect{}, err
		}
		return Rect{X: pos.X - size.X/2, Y: pos.Y - size.Y/2, W: size.X, H: size.Y}, nil
	case Rectangle:
		pos, err := v.Position.ValueAt(f)
		if err != nil {
			return Rect{}, err
		}
		size, err := v.Size.ValueAt(f)
		if err != nil {
			return Rect{}, err
		}
		return Rect{X: pos.X - size.X/2, Y: pos.Y - size.Y/2, W: size.X, H: size.Y}, nil
	case PathShape:
		beziers, err := v.Data.ValueAt(f)
		if err != nil {
			return Rect{}, err
		}
		var out Rect
		for _, b := range beziers {
			out = out.Union(b.BBox())
		}
		return out, nil
	case PolyStar:
		beziers, err := buildPolyStarPath(v, f)
		if err != nil {
			return Rect{}, err
		}
		var out Rect
		for _, b := range beziers {
			out = out.Union(b.BBox())
		}
		return out, nil
	default:
		return Rect{}, nil
	}
}

// --- Primitive-to-path realization (spec §4.3 "Path building") ---

// primitiveBeziers converts a drawable primitive into its Bezier path(s)
// at frame f. PathShape already carries its own animated Bezier list;
// Rectangle/Ellipse/PolyStar are constructed here.
func primitiveBeziers(primitive Shape, f float32) ([]Bezier, error) {
	switch v := primitive.(type) {
	case PathShape:
		return v.Data.ValueAt(f)
	case Rectangle:
		return rectangleBeziers(v, f)
	case Ellipse:
		return ellipseBeziers(v, f)
	case PolyStar:
		return buildPolyStarPath(v, f)
	default:
		return nil, nil
	}
}

func rectangleBeziers(r Rectangle, f float32) ([]Bezier, error) {
	pos, err := r.Position.ValueAt(f)
	if err != nil {
		return nil, err
	}
	size, err := r.Size.ValueAt(f)
	if err != nil {
		return nil, err
	}
	hx, hy := size.X/2, size.Y/2
	vertices := []Vector2D{
		{X: pos.X - hx, Y: pos.Y - hy},
		{X: pos.X + hx, Y: pos.Y - hy},
		{X: pos.X + hx, Y: pos.Y + hy},
		{X: pos.X - hx, Y: pos.Y + hy},
	}
	if r.Direction == DirectionCounterClockwise {
		reverseVector2D(vertices)
	}
	n := len(vertices)
	return []Bezier{{
		Vertices:   vertices,
		InTangent:  make([]Vector2D, n),
		OutTangent: make([]Vector2D, n),
		Closed:     true,
	}}, nil
}

// ellipseCircleMagic is the standard control-point magnitude fraction
// for approximating a circular arc of one quadrant with a cubic bezier.
const ellipseCircleMagic = 0.55191

func ellipseBeziers(e Ellipse, f float32) ([]Bezier, error) {
	pos, err := e.Position.ValueAt(f)
	if err != nil {
		return nil, err
	}
	size, err := e.Size.ValueAt(f)
	if err != nil {
		return nil, err
	}
	hx, hy := size.X/2, size.Y/2
	kx, ky := hx*ellipseCircleMagic, hy*ellipseCircleMagic

	vertices := []Vector2D{
		{X: pos.X, Y: pos.Y - hy}, // top
		{X: pos.X + hx, Y: pos.Y}, // right
		{X: pos.X, Y: pos.Y + hy}, // bottom
		{X: pos.X - hx, Y: pos.Y}, // left
	}
	outTangent := []Vector2D{
		{X: kx, Y: 0},
		{X: 0, Y: ky},
		{X: -kx, Y: 0},
		{X: 0, Y: -ky},
	}
	inTangent := []Vector2D{
		{X: -kx, Y: 0},
		{X: 0, Y: -ky},
		{X: kx, Y: 0},
		{X: 0, Y: ky},
	}
	if e.Direction == DirectionCounterClockwise {
		reverseVector2D(vertices)
		reverseVector2D(inTangent)
		reverseVector2D(outTangent)
		for i := range inTangent {
			inTangent[i], outTangent[i] = outTangent[i], inTangent[i]
		}
	}
	return []Bezier{{Vertices: vertices, InTangent: inTangent, OutTangent: outTangent, Closed: true}}, nil
}

// buildPolyStarPath realizes a PolyStar primitive into a single closed
// Bezier path, per spec §4.3: num_points = points*2, starting angle =
// rotation-90deg, alternating outer/inner radius every step, straight
// segments unless both roundness values are nonzero (in which case each
// segment is a cubic with tangential control-point tangents). Polygon
// sub-type skips every inner (odd) vertex.
func buildPolyStarPath(p PolyStar, f float32) ([]Bezier, error) {
	pos, err := p.Position.ValueAt(f)
	if err != nil {
		return nil, err
	}
	points, err := p.Points.ValueAt(f)
	if err != nil {
		return nil, err
	}
	rotation, err := p.Rotation.ValueAt(f)
	if err != nil {
		return nil, err
	}
	outer, err := p.OuterRadius.ValueAt(f)
	if err != nil {
		return nil, err
	}
	inner := float32(0)
	if p.InnerRadius != nil {
		if inner, err = p.InnerRadius.ValueAt(f); err != nil {
			return nil, err
		}
	}
	outerRoundness := float32(0)
	if p.OuterRoundness != nil {
		if outerRoundness, err = p.OuterRoundness.ValueAt(f); err != nil {
			return nil, err
		}
	}
	innerRoundness := float32(0)
	if p.InnerRoundness != nil {
		if innerRoundness, err = p.InnerRoundness.ValueAt(f); err != nil {
			return nil, err
		}
	}

	dir := float32(1)
	if p.Direction == DirectionCounterClockwise {
		dir = -1
	}
	numPoints := int(points * 2)
	startAngle := float64((rotation - 90) * math.Pi / 180)
	step := 2 * math.Pi / float64(numPoints) * float64(dir)
	rounded := outerRoundness != 0 && innerRoundness != 0

	type vertex struct {
		pt     Vector2D
		radius float32
		angle  float64
		outer  bool
	}
	var verts []vertex
	for i := 0; i < numPoints; i++ {
		isOuter := i%2 == 0
		if p.StarType == PolyStarPolygon && !isOuter {
			continue
		}
		radius := inner
		if isOuter {
			radius = outer
		}
		angle := startAngle + step*float64(i)
		pt := Vector2D{
			X: pos.X + radius*float32(math.Cos(angle)),
			Y: pos.Y + radius*float32(math.Sin(angle)),
		}
		verts = append(verts, vertex{pt: pt, radius: radius, angle: angle, outer: isOuter})
	}

	n := len(verts)
	b := Bezier{
		Vertices:   make([]Vector2D, n),
		InTangent:  make([]Vector2D, n),
		OutTangent: make([]Vector2D, n),
		Closed:     true,
	}
	for i, v := range verts {
		b.Vertices[i] = v.pt
		if !rounded {
			continue
		}
		roundness := innerRoundness
		if v.outer {
			roundness = outerRoundness
		}
		mag := v.radius * (roundness / 100) * (0.47829 / 0.28) / float32(numPoints) * 2
		// Tangential direction, perpendicular to the radial vector.
		tx := float32(-math.Sin(v.angle)) * mag * dir
		ty := float32(math.Cos(v.angle)) * mag * dir
		b.OutTangent[i] = Vector2D{X: tx, Y: ty}
		b.InTangent[i] = Vector2D{X: -tx, Y: -ty}
	}
	return []Bezier{b}, nil
}

func reverseVector2D(v []Vector2D) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}

// --- JSON decode ---

func decodeShapeList(raw json.RawMessage) ([]ShapeLayer, error) {
	var rawList []json.RawMessage
	if err := json.Unmarshal(raw, &rawList); err != nil {
		return nil, &TypeMismatchError{Field: "shapes", Wanted: "array", Got: string(raw)}
	}
	out := make([]ShapeLayer, 0, len(rawList))
	for _, item := range rawList {
		sl, err := decodeShapeLayer(item)
		if err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, nil
}

func decodeShapeLayer(raw json.RawMessage) (ShapeLayer, error) {
	var probe struct {
		Ty     string          `json:"ty"`
		Name   string          `json:"nm"`
		Hidden json.RawMessage `json:"hd"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ShapeLayer{}, err
	}
	sl := ShapeLayer{Name: probe.Name}
	if len(probe.Hidden) > 0 {
		hidden, err := boolFromInt(probe.Hidden)
		if err != nil {
			return ShapeLayer{}, err
		}
		sl.Hidden = hidden
	}
	shape, err := decodeShape(probe.Ty, raw)
	if err != nil {
		return ShapeLayer{}, err
	}
	sl.Shape = shape
	return sl, nil
}

func decodeShape(ty string, raw json.RawMessage) (Shape, error) {
	switch ty {
	case "rc":
		var w struct {
			Position  *json.RawMessage `json:"p"`
			Size      *json.RawMessage `json:"s"`
			Roundness *json.RawMessage `json:"r"`
			Direction int              `json:"d"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		r := Rectangle{Direction: directionFromInt(w.Direction)}
		var err error
		if r.Position, err = optionalAnimatedVec2(w.Position); err != nil {
			return nil, err
		}
		if r.Size, err = optionalAnimatedVec2(w.Size); err != nil {
			return nil, err
		}
		if r.Roundness, err = optionalAnimatedFloat32(w.Roundness); err != nil {
			return nil, err
		}
		return r, nil
	case "el":
		var w struct {
			Position  *json.RawMessage `json:"p"`
			Size      *json.RawMessage `json:"s"`
			Direction int              `json:"d"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		e := Ellipse{Direction: directionFromInt(w.Direction)}
		var err error
		if e.Position, err = optionalAnimatedVec2(w.Position); err != nil {
			return nil, err
		}
		if e.Size, err = optionalAnimatedVec2(w.Size); err != nil {
			return nil, err
		}
		return e, nil
	case "sr":
		var w struct {
			Position       *json.RawMessage `json:"p"`
			Points         *json.RawMessage `json:"pt"`
			Rotation       *json.RawMessage `json:"r"`
			OuterRadius    *json.RawMessage `json:"or"`
			InnerRadius    *json.RawMessage `json:"ir"`
			OuterRoundness *json.RawMessage `json:"os"`
			InnerRoundness *json.RawMessage `json:"is"`
			StarType       int              `json:"sy"`
			Direction      int              `json:"d"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		ps := PolyStar{Direction: directionFromInt(w.Direction)}
		if w.StarType == 2 {
			ps.StarType = PolyStarPolygon
		}
		var err error
		if ps.Position, err = optionalAnimatedVec2(w.Position); err != nil {
			return nil, err
		}
		if ps.Points, err = optionalAnimatedFloat32(w.Points); err != nil {
			return nil, err
		}
		if ps.Rotation, err = optionalAnimatedFloat32(w.Rotation); err != nil {
			return nil, err
		}
		if ps.OuterRadius, err = optionalAnimatedFloat32(w.OuterRadius); err != nil {
			return nil, err
		}
		if ps.InnerRadius, err = optionalAnimatedFloat32(w.InnerRadius); err != nil {
			return nil, err
		}
		if ps.OuterRoundness, err = optionalAnimatedFloat32(w.OuterRoundness); err != nil {
			return nil, err
		}
		if ps.InnerRoundness, err = optionalAnimatedFloat32(w.InnerRoundness); err != nil {
			return nil, err
		}
		return ps, nil
	case "sh":
		var w struct {
			Data *json.RawMessage `json:"ks"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		data, err := optionalAnimatedBeziers(w.Data)
		if err != nil {
			return nil, err
		}
		return PathShape{Data: data}, nil
	case "fl":
		var w struct {
			Color    *json.RawMessage `json:"c"`
			Opacity  *json.RawMessage `json:"o"`
			FillRule int              `json:"r"`
			Hidden   json.RawMessage `json:"hd"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		f := Fill{}
		if len(w.Hidden) > 0 {
			hidden, err := boolFromInt(w.Hidden)
			if err != nil {
				return nil, err
			}
			f.Hidden = hidden
		}
		if w.FillRule == 2 {
			f.FillRule = FillEvenOdd
		}
		var err error
		if f.Color, err = optionalAnimatedRgba(w.Color); err != nil {
			return nil, err
		}
		if f.Opacity, err = optionalAnimatedFloat32(w.Opacity); err != nil {
			return nil, err
		}
		return f, nil
	case "st":
		var w struct {
			Color    *json.RawMessage `json:"c"`
			Opacity  *json.RawMessage `json:"o"`
			Width    *json.RawMessage `json:"w"`
			LineCap  int              `json:"lc"`
			LineJoin int              `json:"lj"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		s := Stroke{LineCap: lineCapFromInt(w.LineCap), LineJoin: lineJoinFromInt(w.LineJoin)}
		var err error
		if s.Color, err = optionalAnimatedRgba(w.Color); err != nil {
			return nil, err
		}
		if s.Opacity, err = optionalAnimatedFloat32(w.Opacity); err != nil {
			return nil, err
		}
		if s.Width, err = optionalAnimatedFloat32(w.Width); err != nil {
			return nil, err
		}
		return s, nil
	case "gf":
		var w struct {
			Opacity  *json.RawMessage `json:"o"`
			FillRule int              `json:"r"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		g := GradientFill{}
		if w.FillRule == 2 {
			g.FillRule = FillEvenOdd
		}
		var err error
		if g.Opacity, err = optionalAnimatedFloat32(w.Opacity); err != nil {
			return nil, err
		}
		return g, nil
	case "gs":
		var w struct {
			Opacity  *json.RawMessage `json:"o"`
			Width    *json.RawMessage `json:"w"`
			LineCap  int              `json:"lc"`
			LineJoin int              `json:"lj"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		g := GradientStroke{LineCap: lineCapFromInt(w.LineCap), LineJoin: lineJoinFromInt(w.LineJoin)}
		var err error
		if g.Opacity, err = optionalAnimatedFloat32(w.Opacity); err != nil {
			return nil, err
		}
		if g.Width, err = optionalAnimatedFloat32(w.Width); err != nil {
			return nil, err
		}
		return g, nil
	case "tr":
		var w wireTransform
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		t, err := w.decode()
		if err != nil {
			return nil, err
		}
		return TransformShape{Transform: *t.normalize()}, nil
	case "gr":
		var w struct {
			Shapes *json.RawMessage `json:"it"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		var shapes []ShapeLayer
		if w.Shapes != nil {
			var err error
			shapes, err = decodeShapeList(*w.Shapes)
			if err != nil {
				return nil, err
			}
		}
		return GroupShape{Shapes: shapes}, nil
	default:
		return nil, &UnsupportedShapeKindError{Ty: ty}
	}
}

func directionFromInt(d int) ShapeDirection {
	if d == 3 {
		return DirectionCounterClockwise
	}
	return DirectionClockwise
}

func lineCapFromInt(v int) LineCap {
	switch v {
	case 2:
		return LineCapRound
	case 3:
		return LineCapSquare
	default:
		return LineCapButt
	}
}

func lineJoinFromInt(v int) LineJoin {
	switch v {
	case 2:
		return LineJoinRound
	case 3:
		return LineJoinBevel
	default:
		return LineJoinMiter
	}
}

func optionalAnimatedVec2(raw *json.RawMessage) (*Animated[Vector2D], error) {
	if raw == nil {
		return nil, nil
	}
	return decodeAnimatedVec2(*raw)
}

func optionalAnimatedFloat32(raw *json.RawMessage) (*Animated[float32], error) {
	if raw == nil {
		return nil, nil
	}
	return decodeAnimatedFloat32(*raw)
}

func optionalAnimatedRgba(raw *json.RawMessage) (*Animated[Rgba], error) {
	if raw == nil {
		return nil, nil
	}
	return decodeAnimatedRgba(*raw)
}

func optionalAnimatedBeziers(raw *json.RawMessage) (*Animated[[]Bezier], error) {
	if raw == nil {
		return nil, nil
	}
	return decodeAnimatedBeziers(*raw)
}

type wireBezierPoints struct {
	Vertices   [][2]float32 `json:"v"`
	InTangent  [][2]float32 `json:"i"`
	OutTangent [][2]float32 `json:"o"`
	Closed     bool         `json:"c"`
}

func decodeBezierValue(raw json.RawMessage) ([]Bezier, error) {
	// A path value may be a single bezier object or an array of them.
	trimmed := trimSpaceBytes(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []wireBezierPoints
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, &TypeMismatchError{Field: "bezier", Wanted: "bezier or [bezier]", Got: string(trimmed)}
		}
		out := make([]Bezier, len(list))
		for i, wb := range list {
			out[i] = wireBezierToBezier(wb)
		}
		return out, nil
	}
	var wb wireBezierPoints
	if err := json.Unmarshal(trimmed, &wb); err != nil {
		return nil, &TypeMismatchError{Field: "bezier", Wanted: "bezier or [bezier]", Got: string(trimmed)}
	}
	return []Bezier{wireBezierToBezier(wb)}, nil
}

func wireBezierToBezier(wb wireBezierPoints) Bezier {
	b := Bezier{Closed: wb.Closed}
	n := len(wb.Vertices)
	b.Vertices = make([]Vector2D, n)
	b.InTangent = make([]Vector2D, n)
	b.OutTangent = make([]Vector2D, n)
	for i := 0; i < n; i++ {
		b.Vertices[i] = Vector2D{X: wb.Vertices[i][0], Y: wb.Vertices[i][1]}
		if i < len(wb.InTangent) {
			b.InTangent[i] = Vector2D{X: wb.InTangent[i][0], Y: wb.InTangent[i][1]}
		}
		if i < len(wb.OutTangent) {
			b.OutTangent[i] = Vector2D{X: wb.OutTangent[i][0], Y: wb.OutTangent[i][1]}
		}
	}
	return b
}
