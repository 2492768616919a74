package lottiecore

import (
	"encoding/json"
	"fmt"
)

// Document is the root of a decoded animation. It is immutable after
// Decode returns (spec §3 "Lifecycles").
type Document struct {
	FrameRate  float32
	StartFrame float32
	EndFrame   float32
	Width      int
	Height     int
	Layers     []Layer
	Assets     []Asset
	Fonts      []FontDef
}

// FontDef is one entry of the document's font list, referenced by text
// layers via FontName.
type FontDef struct {
	Name       string
	Family     string
	Style      string
	UnitsPerEm float32
}

// AssetKind dispatches an Asset's payload, decided at decode time on the
// presence of a layer list, image metadata, or sound metadata (spec §4.2).
type AssetKind int

const (
	AssetPrecomposition AssetKind = iota
	AssetMedia
	AssetAudio
)

// Asset is a precomposition or media/audio reference addressable by ID
// from a layer's ref_id.
type Asset struct {
	ID     string
	Kind   AssetKind
	Layers []Layer // populated when Kind == AssetPrecomposition
	Path   string  // populated when Kind == AssetMedia or AssetAudio
	Width  uint32
	Height uint32
}

// MatteMode names the rule by which a masking layer limits the layer
// that follows it.
type MatteMode int

const (
	MatteNone MatteMode = iota
	MatteAlpha
	MatteAlphaInverted
	MatteLuma
	MatteLumaInverted
)

// Transform is a layer or shape's affine transform properties, each
// independently animatable. Optional fields default to the identity of
// their type: zero position/rotation, scale (100,100), opacity 100
// (spec §4.2 "Compatibility rules").
type Transform struct {
	Position *Animated[Vector2D]
	Anchor   *Animated[Vector2D]
	Scale    *Animated[Vector2D]
	Rotation *Animated[float32]
	Opacity  *Animated[float32]
}

// IsIdentity reports whether every field is absent, i.e. the transform
// contributes nothing beyond the identity matrix.
func (t *Transform) IsIdentity() bool {
	if t == nil {
		return true
	}
	return t.Position == nil && t.Anchor == nil && t.Scale == nil && t.Rotation == nil && t.Opacity == nil
}

func identityTransform() *Transform {
	return &Transform{
		Position: staticAnimated(Vector2D{}),
		Anchor:   staticAnimated(Vector2D{}),
		Scale:    staticAnimated(Vector2D{X: 100, Y: 100}),
		Rotation: staticAnimated(float32(0)),
		Opacity:  staticAnimated(float32(100)),
	}
}

func staticAnimated[T any](v T) *Animated[T] {
	return &Animated[T]{Keyframes: []KeyFrame[T]{{Value: v}}}
}

// normalize fills any nil field of t with its identity default, per
// spec §4.2 "Optional fields default to the identity of their type".
func (t *Transform) normalize() *Transform {
	if t == nil {
		return identityTransform()
	}
	out := *t
	if out.Position == nil {
		out.Position = staticAnimated(Vector2D{})
	}
	if out.Anchor == nil {
		out.Anchor = staticAnimated(Vector2D{})
	}
	if out.Scale == nil {
		out.Scale = staticAnimated(Vector2D{X: 100, Y: 100})
	}
	if out.Rotation == nil {
		out.Rotation = staticAnimated(float32(0))
	}
	if out.Opacity == nil {
		out.Opacity = staticAnimated(float32(100))
	}
	return &out
}

// LayerContent is the tagged-variant payload of a Layer, dispatched on
// the wire "ty" discriminator (spec §3). Concrete types: PrecompositionRef,
// SolidColor, MediaRef, EmptyContent, ShapeContent, TextContent.
type LayerContent interface {
	layerContentTag() int
}

// PrecompositionRef is LayerContent ty=0.
type PrecompositionRef struct{ RefID string }

func (PrecompositionRef) layerContentTag() int { return 0 }

// SolidColor is LayerContent ty=1.
type SolidColor struct {
	Color  Rgba
	Width  float32
	Height float32
}

func (SolidColor) layerContentTag() int { return 1 }

// MediaRef is LayerContent ty=2.
type MediaRef struct{ RefID string }

func (MediaRef) layerContentTag() int { return 2 }

// EmptyContent is LayerContent ty=3: a null/transform-only layer.
type EmptyContent struct{}

func (EmptyContent) layerContentTag() int { return 3 }

// ShapeContent is LayerContent ty=4: the style-cascade shape list.
type ShapeContent struct{ Shapes []ShapeLayer }

func (ShapeContent) layerContentTag() int { return 4 }

// TextContent is LayerContent ty=5.
type TextContent struct{ Data TextAnimationData }

func (TextContent) layerContentTag() int { return 5 }

// Layer is a timed entity in a composition (spec §3).
type Layer struct {
	Index       *int
	ParentIndex *int
	Name        string
	StartFrame  float32
	EndFrame    float32
	StartTime   float32
	Transform   *Transform
	MatteMode   MatteMode
	TimeRemap   *Animated[float32]
	Content     LayerContent
}

// --- JSON wire decode ---

type wireDocument struct {
	FrameRate  float32           `json:"fr"`
	StartFrame float32           `json:"ip"`
	EndFrame   float32           `json:"op"`
	Width      int               `json:"w"`
	Height     int               `json:"h"`
	Layers     []json.RawMessage `json:"layers"`
	Assets     []json.RawMessage `json:"assets"`
	Fonts      *wireFontList     `json:"fonts"`
}

type wireFontList struct {
	List []wireFont `json:"list"`
}

type wireFont struct {
	Name       string  `json:"fName"`
	Family     string  `json:"fFamily"`
	Style      string  `json:"fStyle"`
	UnitsPerEm float32 `json:"unitsPerEm"`
}

// Decode parses a Lottie/Bodymovin JSON document into a typed Document
// graph. Decode errors abort the whole decode (spec §7).
func Decode(data []byte) (*Document, error) {
	var wd wireDocument
	if err := json.Unmarshal(data, &wd); err != nil {
		return nil, fmt.Errorf("lottiecore: decoding document: %w", err)
	}
	doc := &Document{
		FrameRate:  wd.FrameRate,
		StartFrame: wd.StartFrame,
		EndFrame:   wd.EndFrame,
		Width:      wd.Width,
		Height:     wd.Height,
	}
	if wd.Fonts != nil {
		for _, f := range wd.Fonts.List {
			upm := f.UnitsPerEm
			if upm == 0 {
				upm = 1000
			}
			doc.Fonts = append(doc.Fonts, FontDef{Name: f.Name, Family: f.Family, Style: f.Style, UnitsPerEm: upm})
		}
	}
	for _, raw := range wd.Assets {
		a, err := decodeAsset(raw)
		if err != nil {
			return nil, fmt.Errorf("lottiecore: decoding asset: %w", err)
		}
		doc.Assets = append(doc.Assets, a)
	}
	for _, raw := range wd.Layers {
		l, err := decodeLayer(raw)
		if err != nil {
			return nil, fmt.Errorf("lottiecore: decoding layer: %w", err)
		}
		doc.Layers = append(doc.Layers, l)
	}
	return doc, nil
}

type wireAssetProbe struct {
	ID     string            `json:"id"`
	Layers []json.RawMessage `json:"layers"`
	// Media indicators
	Width  *float64 `json:"w"`
	Height *float64 `json:"h"`
	Path   *string  `json:"u"`
	File   *string  `json:"p"`
	// Audio indicator: presence of "e" (embedded) with no layers and a
	// sound-only mime hint is approximated here by the lack of width/height.
}

func decodeAsset(raw json.RawMessage) (Asset, error) {
	var probe wireAssetProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Asset{}, err
	}
	a := Asset{ID: probe.ID}
	switch {
	case len(probe.Layers) > 0:
		a.Kind = AssetPrecomposition
		for _, lraw := range probe.Layers {
			l, err := decodeLayer(lraw)
			if err != nil {
				return Asset{}, err
			}
			a.Layers = append(a.Layers, l)
		}
	case probe.Width != nil && probe.Height != nil:
		a.Kind = AssetMedia
		a.Width = uint32(*probe.Width)
		a.Height = uint32(*probe.Height)
		if probe.File != nil {
			a.Path = *probe.File
		}
	default:
		a.Kind = AssetAudio
		if probe.File != nil {
			a.Path = *probe.File
		}
	}
	return a, nil
}

type wireLayerProbe struct {
	Ty          int              `json:"ty"`
	Ind         *int             `json:"ind"`
	Parent      *int             `json:"parent"`
	Name        string           `json:"nm"`
	StartFrame  float32          `json:"ip"`
	EndFrame    float32          `json:"op"`
	StartTime   float32          `json:"st"`
	Transform   *wireTransform   `json:"ks"`
	MatteType   *int             `json:"tt"`
	TimeRemap   *json.RawMessage `json:"tm"`
	RefID       *string          `json:"refId"`
	Shapes      *json.RawMessage `json:"shapes"`
	SolidColor  *string          `json:"sc"`
	SolidWidth  *float32         `json:"sw"`
	SolidHeight *float32         `json:"sh"`
	Text        *wireTextData    `json:"t"`
}

func decodeLayer(raw json.RawMessage) (Layer, error) {
	var p wireLayerProbe
	if err := json.Unmarshal(raw, &p); err != nil {
		return Layer{}, err
	}
	l := Layer{
		Index:       p.Ind,
		ParentIndex: p.Parent,
		Name:        p.Name,
		StartFrame:  p.StartFrame,
		EndFrame:    p.EndFrame,
		StartTime:   p.StartTime,
	}
	if p.Transform != nil {
		t, err := p.Transform.decode()
		if err != nil {
			return Layer{}, err
		}
		l.Transform = t
	}
	if p.MatteType != nil {
		l.MatteMode = MatteMode(*p.MatteType)
	}
	if p.TimeRemap != nil {
		tr, err := decodeAnimatedFloat32(*p.TimeRemap)
		if err != nil {
			return Layer{}, err
		}
		l.TimeRemap = tr
	}

	switch p.Ty {
	case 0:
		if p.RefID == nil {
			return Layer{}, &MissingFieldError{Field: "refId"}
		}
		l.Content = PrecompositionRef{RefID: *p.RefID}
	case 1:
		if p.SolidColor == nil || p.SolidWidth == nil || p.SolidHeight == nil {
			return Layer{}, &MissingFieldError{Field: "sc/sw/sh"}
		}
		c, err := ParseColorString(*p.SolidColor)
		if err != nil {
			return Layer{}, err
		}
		l.Content = SolidColor{Color: c, Width: *p.SolidWidth, Height: *p.SolidHeight}
	case 2:
		if p.RefID == nil {
			return Layer{}, &MissingFieldError{Field: "refId"}
		}
		l.Content = MediaRef{RefID: *p.RefID}
	case 3:
		l.Content = EmptyContent{}
	case 4:
		var shapes []ShapeLayer
		if p.Shapes != nil && string(*p.Shapes) != "null" {
			var err error
			shapes, err = decodeShapeList(*p.Shapes)
			if err != nil {
				return Layer{}, err
			}
		}
		l.Content = ShapeContent{Shapes: shapes}
	case 5:
		if p.Text == nil {
			return Layer{}, &MissingFieldError{Field: "t"}
		}
		td, err := p.Text.decode()
		if err != nil {
			return Layer{}, err
		}
		l.Content = TextContent{Data: td}
	default:
		return Layer{}, &UnsupportedLayerKindError{Ty: p.Ty}
	}
	return l, nil
}

type wireTransform struct {
	Position *json.RawMessage `json:"p"`
	Anchor   *json.RawMessage `json:"a"`
	Scale    *json.RawMessage `json:"s"`
	Rotation *json.RawMessage `json:"r"`
	Opacity  *json.RawMessage `json:"o"`
}

func (wt *wireTransform) decode() (*Transform, error) {
	t := &Transform{}
	var err error
	if wt.Position != nil {
		if t.Position, err = decodeAnimatedVec2(*wt.Position); err != nil {
			return nil, err
		}
	}
	if wt.Anchor != nil {
		if t.Anchor, err = decodeAnimatedVec2(*wt.Anchor); err != nil {
			return nil, err
		}
	}
	if wt.Scale != nil {
		if t.Scale, err = decodeAnimatedVec2(*wt.Scale); err != nil {
			return nil, err
		}
	}
	if wt.Rotation != nil {
		if t.Rotation, err = decodeAnimatedFloat32(*wt.Rotation); err != nil {
			return nil, err
		}
	}
	if wt.Opacity != nil {
		if t.Opacity, err = decodeAnimatedFloat32(*wt.Opacity); err != nil {
			return nil, err
		}
	}
	return t, nil
}
