package lottiecore

// StyledShape is one emission of the style cascade (spec §4.3): a
// drawable primitive paired with the fill/stroke/transform state active
// at its position in the shape list.
type StyledShape struct {
	Name      string
	Primitive Shape
	Fill      *Fill
	Stroke    *Stroke
	Transform Transform
	Beziers   []Bezier // the primitive's path(s) realized at the requested frame
}

// StyledShapes yields one StyledShape per drawable primitive (Rectangle,
// Ellipse, PolyStar, PathShape) in shapes, per the wire format's style
// cascade convention: a Fill/Stroke/Transform entry applies backward to
// every primitive sibling that precedes it, up to the previous Transform
// (spec §4.3 "Styled-shape cascade"). Groups nest independently: a
// nested group's trailing style entries never leak to the parent
// group's remaining siblings, nor vice versa.
//
// A Stroke that appears N times ahead of a primitive yields that
// primitive N times, once per stroke, matching Lottie's "multiple
// strokes on one shape" convention. A primitive with a Stroke but no
// Fill ahead of it in its own group is paired with a fully-transparent
// default fill; a primitive with neither ahead of it contributes no
// styled output at all.
func StyledShapes(shapes []ShapeLayer, f float32) ([]StyledShape, error) {
	return cascadeGroup(shapes, identityTransform(), f)
}

func cascadeGroup(shapes []ShapeLayer, parentTransform *Transform, f float32) ([]StyledShape, error) {
	var out []StyledShape

	for i, sl := range shapes {
		if sl.Hidden {
			continue
		}
		switch v := sl.Shape.(type) {
		case GroupShape:
			children, err := cascadeGroup(v.Shapes, parentTransform, f)
			if err != nil {
				return nil, err
			}
			out = append(out, children...)
		case Rectangle, Ellipse, PolyStar, PathShape:
			fill, strokes, transform := scanCascadeStyles(shapes, i+1, *parentTransform)
			if fill == nil && len(strokes) == 0 {
				// spec §4.3: neither fill nor stroke present and the
				// shape is not a Group -> contributes no styled output.
				continue
			}
			emitted, err := emitPrimitive(sl.Name, v, fill, strokes, transform, f)
			if err != nil {
				return nil, err
			}
			out = append(out, emitted...)
		default:
			// Fill/Stroke/Transform entries are consumed by the forward
			// scan of a preceding primitive (or belong to no primitive at
			// all, e.g. a trailing group transform with no sibling shape);
			// GradientFill/GradientStroke entries are ignored by the scan.
			// Encountered directly here they contribute nothing further.
		}
	}
	return out, nil
}

// scanCascadeStyles implements spec §4.3's forward scan: starting just
// past a primitive's own position, collect the first non-hidden Fill
// and every non-hidden Stroke, stopping at the first Transform entry
// (composed onto base and returned as the shape's local transform).
// Other entries encountered along the way (other primitives, groups,
// GradientFill and GradientStroke) are skipped, not stopping points: a
// gradient style never becomes a StyledShape's fill or stroke.
func scanCascadeStyles(shapes []ShapeLayer, start int, base Transform) (*Fill, []Stroke, Transform) {
	var fill *Fill
	var strokes []Stroke
	transform := base
	for j := start; j < len(shapes); j++ {
		sl := shapes[j]
		if sl.Hidden {
			continue
		}
		switch s := sl.Shape.(type) {
		case Fill:
			if fill == nil {
				ss := s
				fill = &ss
			}
		case Stroke:
			strokes = append(strokes, s)
		case TransformShape:
			transform = composeTransforms(transform, s.Transform)
			return fill, strokes, transform
		}
	}
	return fill, strokes, transform
}

func emitPrimitive(name string, primitive Shape, fill *Fill, strokes []Stroke, transform Transform, f float32) ([]StyledShape, error) {
	beziers, err := primitiveBeziers(primitive, f)
	if err != nil {
		return nil, err
	}
	effectiveFill := fill
	if effectiveFill == nil {
		effectiveFill = &Fill{Color: staticAnimated(Rgba{}), Opacity: staticAnimated(float32(0))}
	}
	if len(strokes) == 0 {
		return []StyledShape{{
			Name:      name,
			Primitive: primitive,
			Fill:      effectiveFill,
			Transform: transform,
			Beziers:   beziers,
		}}, nil
	}
	out := make([]StyledShape, len(strokes))
	for i := range strokes {
		s := strokes[i]
		out[i] = StyledShape{
			Name:      name,
			Primitive: primitive,
			Fill:      effectiveFill,
			Stroke:    &s,
			Transform: transform,
			Beziers:   beziers,
		}
	}
	return out, nil
}

// composeTransforms folds a shape-group-local TransformShape onto the
// transform accumulated from enclosing groups. Shape-group transforms
// compose by simple field overlay: a present field on child replaces the
// parent's (shape groups in Lottie describe one flat local transform per
// nesting level, not a true matrix product of animated curves), which
// matches the teacher's computeLocalTransform field-overlay convention.
func composeTransforms(parent, child Transform) Transform {
	out := parent
	if child.Position != nil {
		out.Position = child.Position
	}
	if child.Anchor != nil {
		out.Anchor = child.Anchor
	}
	if child.Scale != nil {
		out.Scale = child.Scale
	}
	if child.Rotation != nil {
		out.Rotation = child.Rotation
	}
	if child.Opacity != nil {
		out.Opacity = child.Opacity
	}
	return out
}
