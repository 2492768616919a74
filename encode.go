package lottiecore

import "encoding/json"

// Encode serializes a Document back to its wire JSON form. It is the
// inverse of Decode: decoding the result of Encode(d) reproduces d
// structurally, including keyframe ordering and the animated-vs-static
// canonical form of every property (spec §8 "Round-trip").
func Encode(doc *Document) ([]byte, error) {
	out := map[string]any{
		"fr": doc.FrameRate,
		"ip": doc.StartFrame,
		"op": doc.EndFrame,
		"w":  doc.Width,
		"h":  doc.Height,
	}
	layers := make([]any, len(doc.Layers))
	for i, l := range doc.Layers {
		layers[i] = encodeLayer(l)
	}
	out["layers"] = layers

	if len(doc.Assets) > 0 {
		assets := make([]any, len(doc.Assets))
		for i, a := range doc.Assets {
			assets[i] = encodeAsset(a)
		}
		out["assets"] = assets
	}
	if len(doc.Fonts) > 0 {
		list := make([]any, len(doc.Fonts))
		for i, f := range doc.Fonts {
			list[i] = map[string]any{
				"fName":      f.Name,
				"fFamily":    f.Family,
				"fStyle":     f.Style,
				"unitsPerEm": f.UnitsPerEm,
			}
		}
		out["fonts"] = map[string]any{"list": list}
	}
	return json.Marshal(out)
}

func encodeAsset(a Asset) map[string]any {
	m := map[string]any{"id": a.ID}
	switch a.Kind {
	case AssetPrecomposition:
		layers := make([]any, len(a.Layers))
		for i, l := range a.Layers {
			layers[i] = encodeLayer(l)
		}
		m["layers"] = layers
	case AssetMedia:
		m["w"] = a.Width
		m["h"] = a.Height
		if a.Path != "" {
			m["p"] = a.Path
		}
	case AssetAudio:
		if a.Path != "" {
			m["p"] = a.Path
		}
	}
	return m
}

func encodeLayer(l Layer) map[string]any {
	m := map[string]any{
		"nm": l.Name,
		"ip": l.StartFrame,
		"op": l.EndFrame,
		"st": l.StartTime,
	}
	if l.Index != nil {
		m["ind"] = *l.Index
	}
	if l.ParentIndex != nil {
		m["parent"] = *l.ParentIndex
	}
	if l.MatteMode != MatteNone {
		m["tt"] = int(l.MatteMode)
	}
	if l.Transform != nil {
		m["ks"] = encodeTransform(*l.Transform)
	}
	if l.TimeRemap != nil {
		m["tm"] = encodeAnimated(l.TimeRemap, func(v float32) any { return v })
	}

	switch c := l.Content.(type) {
	case PrecompositionRef:
		m["ty"] = 0
		m["refId"] = c.RefID
	case SolidColor:
		m["ty"] = 1
		m["sc"] = c.Color.String()
		m["sw"] = c.Width
		m["sh"] = c.Height
	case MediaRef:
		m["ty"] = 2
		m["refId"] = c.RefID
	case EmptyContent:
		m["ty"] = 3
	case ShapeContent:
		m["ty"] = 4
		shapes := make([]any, len(c.Shapes))
		for i, sl := range c.Shapes {
			shapes[i] = encodeShapeLayer(sl)
		}
		m["shapes"] = shapes
	case TextContent:
		m["ty"] = 5
		m["t"] = encodeTextData(c.Data)
	}
	return m
}

func encodeTransform(t Transform) map[string]any {
	m := map[string]any{}
	if t.Position != nil {
		m["p"] = encodeAnimated(t.Position, encodeVector2D)
	}
	if t.Anchor != nil {
		m["a"] = encodeAnimated(t.Anchor, encodeVector2D)
	}
	if t.Scale != nil {
		m["s"] = encodeAnimated(t.Scale, encodeVector2D)
	}
	if t.Rotation != nil {
		m["r"] = encodeAnimated(t.Rotation, func(v float32) any { return v })
	}
	if t.Opacity != nil {
		m["o"] = encodeAnimated(t.Opacity, func(v float32) any { return v })
	}
	return m
}

func encodeVector2D(v Vector2D) any {
	return []float32{v.X, v.Y}
}

func encodeRgbaFraction(c Rgba) any {
	return []float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

func encodeShapeLayer(sl ShapeLayer) map[string]any {
	m := map[string]any{
		"nm": sl.Name,
		"hd": intFromBool(sl.Hidden),
	}
	switch v := sl.Shape.(type) {
	case Rectangle:
		m["ty"] = "rc"
		m["d"] = directionToInt(v.Direction)
		if v.Position != nil {
			m["p"] = encodeAnimated(v.Position, encodeVector2D)
		}
		if v.Size != nil {
			m["s"] = encodeAnimated(v.Size, encodeVector2D)
		}
		if v.Roundness != nil {
			m["r"] = encodeAnimated(v.Roundness, func(f float32) any { return f })
		}
	case Ellipse:
		m["ty"] = "el"
		m["d"] = directionToInt(v.Direction)
		if v.Position != nil {
			m["p"] = encodeAnimated(v.Position, encodeVector2D)
		}
		if v.Size != nil {
			m["s"] = encodeAnimated(v.Size, encodeVector2D)
		}
	case PolyStar:
		m["ty"] = "sr"
		m["d"] = directionToInt(v.Direction)
		if v.StarType == PolyStarPolygon {
			m["sy"] = 2
		} else {
			m["sy"] = 1
		}
		if v.Position != nil {
			m["p"] = encodeAnimated(v.Position, encodeVector2D)
		}
		if v.Points != nil {
			m["pt"] = encodeAnimated(v.Points, func(f float32) any { return f })
		}
		if v.Rotation != nil {
			m["r"] = encodeAnimated(v.Rotation, func(f float32) any { return f })
		}
		if v.OuterRadius != nil {
			m["or"] = encodeAnimated(v.OuterRadius, func(f float32) any { return f })
		}
		if v.InnerRadius != nil {
			m["ir"] = encodeAnimated(v.InnerRadius, func(f float32) any { return f })
		}
		if v.OuterRoundness != nil {
			m["os"] = encodeAnimated(v.OuterRoundness, func(f float32) any { return f })
		}
		if v.InnerRoundness != nil {
			m["is"] = encodeAnimated(v.InnerRoundness, func(f float32) any { return f })
		}
	case PathShape:
		m["ty"] = "sh"
		if v.Data != nil {
			m["ks"] = encodeAnimated(v.Data, encodeBezierList)
		}
	case Fill:
		m["ty"] = "fl"
		m["hd"] = intFromBool(v.Hidden)
		if v.FillRule == FillEvenOdd {
			m["r"] = 2
		} else {
			m["r"] = 1
		}
		if v.Color != nil {
			m["c"] = encodeAnimated(v.Color, encodeRgbaFraction)
		}
		if v.Opacity != nil {
			m["o"] = encodeAnimated(v.Opacity, func(f float32) any { return f })
		}
	case Stroke:
		m["ty"] = "st"
		m["lc"] = lineCapToInt(v.LineCap)
		m["lj"] = lineJoinToInt(v.LineJoin)
		if v.Color != nil {
			m["c"] = encodeAnimated(v.Color, encodeRgbaFraction)
		}
		if v.Opacity != nil {
			m["o"] = encodeAnimated(v.Opacity, func(f float32) any { return f })
		}
		if v.Width != nil {
			m["w"] = encodeAnimated(v.Width, func(f float32) any { return f })
		}
	case GradientFill:
		m["ty"] = "gf"
		if v.FillRule == FillEvenOdd {
			m["r"] = 2
		} else {
			m["r"] = 1
		}
		if v.Opacity != nil {
			m["o"] = encodeAnimated(v.Opacity, func(f float32) any { return f })
		}
	case GradientStroke:
		m["ty"] = "gs"
		m["lc"] = lineCapToInt(v.LineCap)
		m["lj"] = lineJoinToInt(v.LineJoin)
		if v.Opacity != nil {
			m["o"] = encodeAnimated(v.Opacity, func(f float32) any { return f })
		}
		if v.Width != nil {
			m["w"] = encodeAnimated(v.Width, func(f float32) any { return f })
		}
	case TransformShape:
		m["ty"] = "tr"
		for k, val := range encodeTransform(v.Transform) {
			m[k] = val
		}
	case GroupShape:
		m["ty"] = "gr"
		items := make([]any, len(v.Shapes))
		for i, child := range v.Shapes {
			items[i] = encodeShapeLayer(child)
		}
		m["it"] = items
	}
	return m
}

func encodeBezierList(bs []Bezier) any {
	if len(bs) == 1 {
		return encodeBezier(bs[0])
	}
	out := make([]any, len(bs))
	for i, b := range bs {
		out[i] = encodeBezier(b)
	}
	return out
}

func encodeBezier(b Bezier) map[string]any {
	return map[string]any{
		"v": arrayFromPoints(b.Vertices),
		"i": arrayFromPoints(b.InTangent),
		"o": arrayFromPoints(b.OutTangent),
		"c": b.Closed,
	}
}

func encodeTextData(data TextAnimationData) map[string]any {
	if data.Document == nil {
		return map[string]any{}
	}
	if kfs := data.Document.Keyframes; len(kfs) == 1 && kfs[0].StartFrame == nil &&
		kfs[0].EasingIn == nil && kfs[0].EasingOut == nil {
		return map[string]any{"d": encodeTextDocumentValue(kfs[0].Value)}
	}
	frames := make([]map[string]any, len(data.Document.Keyframes))
	for i, kf := range data.Document.Keyframes {
		m := map[string]any{"s": encodeTextDocumentValue(kf.Value)}
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
	return map[string]any{"d": frames}
}

func encodeTextDocumentValue(doc TextDocument) map[string]any {
	return map[string]any{
		"t":  doc.Value,
		"f":  doc.FontName,
		"s":  doc.Size,
		"fc": doc.FillColor.String(),
		"j":  int(doc.Justify),
		"ls": doc.BaselineShift,
	}
}

func directionToInt(d ShapeDirection) int {
	if d == DirectionCounterClockwise {
		return 3
	}
	return 1
}

func lineCapToInt(c LineCap) int {
	switch c {
	case LineCapRound:
		return 2
	case LineCapSquare:
		return 3
	default:
		return 1
	}
}

func lineJoinToInt(j LineJoin) int {
	switch j {
	case LineJoinRound:
		return 2
	case LineJoinBevel:
		return 3
	default:
		return 1
	}
}
