package lottiecore

import "testing"

// TestStyledShapesScenario is spec §8 scenario 4: a shape group
// [Rect, Fill(red), Stroke(blue,w=2), Stroke(green,w=1), Transform(T)]
// yields two styled shapes: (Rect,fill=red,stroke=blue,T) then
// (Rect,fill=red,stroke=green,T).
func TestStyledShapesScenario(t *testing.T) {
	red := Rgba{R: 255, A: 255}
	blue := Rgba{B: 255, A: 255}
	green := Rgba{G: 255, A: 255}
	transformPos := Vector2D{X: 10, Y: 20}

	shapes := []ShapeLayer{
		{Name: "rect", Shape: Rectangle{
			Position: staticAnimated(Vector2D{X: 50, Y: 50}),
			Size:     staticAnimated(Vector2D{X: 100, Y: 100}),
		}},
		{Shape: Fill{Color: staticAnimated(red), Opacity: staticAnimated(float32(100))}},
		{Shape: Stroke{Color: staticAnimated(blue), Opacity: staticAnimated(float32(100)), Width: staticAnimated(float32(2))}},
		{Shape: Stroke{Color: staticAnimated(green), Opacity: staticAnimated(float32(100)), Width: staticAnimated(float32(1))}},
		{Shape: TransformShape{Transform: Transform{Position: staticAnimated(transformPos)}}},
	}

	out, err := StyledShapes(shapes, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}

	checkOne := func(ss StyledShape, wantStrokeColor Rgba) {
		t.Helper()
		if _, ok := ss.Primitive.(Rectangle); !ok {
			t.Errorf("Primitive = %T, want Rectangle", ss.Primitive)
		}
		if ss.Fill == nil {
			t.Fatal("Fill is nil")
		}
		fillColor, _ := ss.Fill.Color.ValueAt(0)
		if fillColor != red {
			t.Errorf("fill color = %+v, want %+v", fillColor, red)
		}
		if ss.Stroke == nil {
			t.Fatal("Stroke is nil")
		}
		strokeColor, _ := ss.Stroke.Color.ValueAt(0)
		if strokeColor != wantStrokeColor {
			t.Errorf("stroke color = %+v, want %+v", strokeColor, wantStrokeColor)
		}
		pos, _ := ss.Transform.Position.ValueAt(0)
		if pos != transformPos {
			t.Errorf("transform position = %+v, want %+v", pos, transformPos)
		}
	}
	checkOne(out[0], blue)
	checkOne(out[1], green)
}

// TestStyledShapesNoFillNorStrokeSkipped is spec §4.3: "If neither fill
// nor stroke is present and the shape is not a Group, the shape
// contributes no styled output" (matching the original's
// shape_index+1/next() skip in layer/shape.rs).
func TestStyledShapesNoFillNorStrokeSkipped(t *testing.T) {
	shapes := []ShapeLayer{
		{Shape: Ellipse{
			Position: staticAnimated(Vector2D{}),
			Size:     staticAnimated(Vector2D{X: 10, Y: 10}),
		}},
	}
	out, err := StyledShapes(shapes, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0 (no fill or stroke present)", len(out))
	}
}

// TestStyledShapesStrokeOnlyDefaultsTransparentFill covers the case the
// skip rule doesn't cover: a Stroke *is* present but no Fill, so the
// shape still emits, paired with a default fully-transparent fill.
func TestStyledShapesStrokeOnlyDefaultsTransparentFill(t *testing.T) {
	blue := Rgba{B: 255, A: 255}
	shapes := []ShapeLayer{
		{Shape: Ellipse{
			Position: staticAnimated(Vector2D{}),
			Size:     staticAnimated(Vector2D{X: 10, Y: 10}),
		}},
		{Shape: Stroke{Color: staticAnimated(blue), Opacity: staticAnimated(float32(100)), Width: staticAnimated(float32(1))}},
	}
	out, err := StyledShapes(shapes, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	opacity, _ := out[0].Fill.Opacity.ValueAt(0)
	if opacity != 0 {
		t.Errorf("default fill opacity = %v, want 0", opacity)
	}
	if out[0].Stroke == nil {
		t.Fatal("Stroke is nil")
	}
}

func TestStyledShapesHiddenSkipped(t *testing.T) {
	shapes := []ShapeLayer{
		{Hidden: true, Shape: Rectangle{
			Position: staticAnimated(Vector2D{}),
			Size:     staticAnimated(Vector2D{X: 10, Y: 10}),
		}},
	}
	out, err := StyledShapes(shapes, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("len(out) = %d, want 0 (hidden shape skipped)", len(out))
	}
}

func TestStyledShapesGroupIndependence(t *testing.T) {
	red := Rgba{R: 255, A: 255}
	blue := Rgba{B: 255, A: 255}
	inner := GroupShape{Shapes: []ShapeLayer{
		{Shape: Ellipse{Position: staticAnimated(Vector2D{}), Size: staticAnimated(Vector2D{X: 4, Y: 4})}},
		{Shape: Fill{Color: staticAnimated(red), Opacity: staticAnimated(float32(100))}},
	}}
	shapes := []ShapeLayer{
		{Shape: inner},
		{Shape: Rectangle{Position: staticAnimated(Vector2D{}), Size: staticAnimated(Vector2D{X: 1, Y: 1})}},
		{Shape: Stroke{Color: staticAnimated(blue), Opacity: staticAnimated(float32(100)), Width: staticAnimated(float32(1))}},
	}
	out, err := StyledShapes(shapes, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	rectFillOpacity, _ := out[1].Fill.Opacity.ValueAt(0)
	if rectFillOpacity != 0 {
		t.Errorf("outer rectangle picked up inner group's fill; opacity = %v, want 0", rectFillOpacity)
	}
}
