package lottiecore

import "testing"

func intPtr(v int) *int { return &v }

// TestBuildTwoTopLevelLayers is spec §8 scenario 1: one solid layer
// (ty=1) and one shape layer (ty=4, empty shapes), 30fps -> two staged
// layers with zindex in {0,1}.
func TestBuildTwoTopLevelLayers(t *testing.T) {
	doc := &Document{
		FrameRate:  30,
		StartFrame: 0,
		EndFrame:   100,
		Layers: []Layer{
			{
				Index:      intPtr(0),
				StartFrame: 0,
				EndFrame:   100,
				Content:    SolidColor{Color: Rgba{R: 255, A: 255}, Width: 100, Height: 200},
			},
			{
				Index:      intPtr(1),
				StartFrame: 0,
				EndFrame:   100,
				Content:    ShapeContent{},
			},
		},
	}
	b := NewBuilder(nil, Diagnostics{})
	tl, err := b.Build(doc)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	layers := tl.Layers()
	if len(layers) != 2 {
		t.Fatalf("len(layers) = %d, want 2", len(layers))
	}
	seen := map[float32]bool{}
	for _, l := range layers {
		seen[l.ZIndex] = true
	}
	if !seen[0] || !seen[1] {
		t.Errorf("zindices = %v, want {0,1}", seen)
	}
}

// TestBuildPrecomposition is spec §8 scenario 2: a precomposition with a
// 3-layer asset at doc index 0, another top layer at index 1 -> 4 staged
// layers, the 3 asset layers' zindex strictly inside (0,1) and strictly
// increasing in document order (the builder spaces them at 0.25, 0.5,
// 0.75).
func TestBuildPrecomposition(t *testing.T) {
	doc := &Document{
		FrameRate:  30,
		StartFrame: 0,
		EndFrame:   100,
		Assets: []Asset{
			{
				ID: "comp1",
				Layers: []Layer{
					{StartFrame: 0, EndFrame: 100, Content: ShapeContent{}},
					{StartFrame: 0, EndFrame: 100, Content: ShapeContent{}},
					{StartFrame: 0, EndFrame: 100, Content: ShapeContent{}},
				},
			},
		},
		Layers: []Layer{
			{StartFrame: 0, EndFrame: 100, Content: PrecompositionRef{RefID: "comp1"}},
			{StartFrame: 0, EndFrame: 100, Content: ShapeContent{}},
		},
	}
	b := NewBuilder(nil, Diagnostics{})
	tl, err := b.Build(doc)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	layers := tl.Layers()
	if len(layers) != 4 {
		t.Fatalf("len(layers) = %d, want 4", len(layers))
	}
	var assetZ []float32
	for _, l := range layers {
		if l.ZIndex > 0 && l.ZIndex < 1 {
			assetZ = append(assetZ, l.ZIndex)
		}
	}
	if len(assetZ) != 3 {
		t.Fatalf("len(assetZ) = %d, want 3 (all strictly inside (0,1))", len(assetZ))
	}
	for i := 1; i < len(assetZ); i++ {
		if assetZ[i] <= assetZ[i-1] {
			t.Errorf("asset zindices not strictly increasing: %v", assetZ)
		}
	}
}

// TestBuildParentResolution is spec §8 scenario 3: layer A (index=5)
// appears after layer B (parent_index=5) in the same composition ->
// B.Parent == A.Id after build.
func TestBuildParentResolution(t *testing.T) {
	doc := &Document{
		FrameRate:  30,
		StartFrame: 0,
		EndFrame:   100,
		Layers: []Layer{
			{
				Index:       intPtr(10),
				ParentIndex: intPtr(5),
				Name:        "B",
				StartFrame:  0,
				EndFrame:    100,
				Content:     ShapeContent{},
			},
			{
				Index:      intPtr(5),
				Name:       "A",
				StartFrame: 0,
				EndFrame:   100,
				Content:    ShapeContent{},
			},
		},
	}
	b := NewBuilder(nil, Diagnostics{})
	tl, err := b.Build(doc)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	var a, bLayer *StagedLayer
	for _, l := range tl.Layers() {
		switch {
		case l.ZIndex == 1:
			a = l
		case l.ZIndex == 0:
			bLayer = l
		}
	}
	if a == nil || bLayer == nil {
		t.Fatal("expected both layers to be staged")
	}
	if bLayer.Parent == nil || *bLayer.Parent != a.Id {
		t.Errorf("B.Parent = %v, want %v", bLayer.Parent, a.Id)
	}
}

func TestBuildUnresolvedParentReported(t *testing.T) {
	doc := &Document{
		FrameRate:  30,
		StartFrame: 0,
		EndFrame:   100,
		Layers: []Layer{
			{
				Index:       intPtr(1),
				ParentIndex: intPtr(99),
				StartFrame:  0,
				EndFrame:    100,
				Content:     ShapeContent{},
			},
		},
	}
	b := NewBuilder(nil, Diagnostics{})
	_, err := b.Build(doc)
	if err == nil {
		t.Fatal("expected a ParentNotFoundError to be aggregated")
	}
}

// TestBuildNestedMaskDropped is spec §3's "a mask-wearing layer is not
// itself masked by another mask" invariant: three layers in document
// order [M2, M1, Base], where M1 mattes against M2 and Base mattes
// against M1. M1 becomes Base's mask source (IsMask=true) but M1 was
// itself matted by M2; that inherited direct mask entry must be
// dropped rather than carried onto Base's masking chain.
func TestBuildNestedMaskDropped(t *testing.T) {
	doc := &Document{
		FrameRate:  30,
		StartFrame: 0,
		EndFrame:   100,
		Layers: []Layer{
			{Name: "M2", StartFrame: 0, EndFrame: 100, Content: ShapeContent{}},
			{Name: "M1", StartFrame: 0, EndFrame: 100, MatteMode: MatteAlpha, Content: ShapeContent{}},
			{Name: "Base", StartFrame: 0, EndFrame: 100, MatteMode: MatteAlpha, Content: ShapeContent{}},
		},
	}
	b := NewBuilder(nil, Diagnostics{})
	tl, err := b.Build(doc)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	layers := tl.Layers()
	if len(layers) != 3 {
		t.Fatalf("len(layers) = %d, want 3", len(layers))
	}
	var m1, base *StagedLayer
	for _, l := range layers {
		switch l.ZIndex {
		case 1:
			m1 = l
		case 2:
			base = l
		}
	}
	if m1 == nil || base == nil {
		t.Fatal("expected M1 and Base to be staged")
	}
	if !m1.IsMask {
		t.Fatal("M1 should be marked as a mask source for Base")
	}
	if len(m1.MaskStack) != 0 {
		t.Errorf("M1.MaskStack = %+v, want empty (nested masking dropped)", m1.MaskStack)
	}
	if len(base.MaskStack) != 1 || base.MaskStack[0].Source != m1.Id {
		t.Errorf("Base.MaskStack = %+v, want one entry sourced from M1", base.MaskStack)
	}
}

func TestBuildAssetNotFoundAggregated(t *testing.T) {
	doc := &Document{
		FrameRate:  30,
		StartFrame: 0,
		EndFrame:   100,
		Layers: []Layer{
			{StartFrame: 0, EndFrame: 100, Content: PrecompositionRef{RefID: "missing"}},
		},
	}
	b := NewBuilder(nil, Diagnostics{})
	tl, err := b.Build(doc)
	if err == nil {
		t.Fatal("expected an AssetNotFoundError to be aggregated")
	}
	if tl == nil {
		t.Fatal("timeline should still be returned alongside aggregated link errors")
	}
}
