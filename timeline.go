package lottiecore

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Id is an opaque, stable key identifying one staged layer within a
// built Timeline, in the spirit of the corpus's EntityID convention
// (teacher's node.go) but scoped to this package instead of bridging an
// ECS.
type Id uint32

// RenderableContent is a staged layer's drawable payload: either a
// style-cascade shape group, or a transform-only Group produced when a
// precomposition reference carries its own non-identity transform.
type RenderableContent struct {
	Shapes []ShapeLayer
	IsGroup bool
}

// MaskEntry is one ancestor contributing a matte to a staged layer.
type MaskEntry struct {
	Source Id
	Mode   MatteMode
}

// FrameTransformEntry is one ancestor's timing contribution to a staged
// layer's root-clock-to-local-clock projection.
type FrameTransformEntry struct {
	StartTime float32
	TimeRemap *Animated[float32]
}

// StagedLayer is a flattened layer with precomputed ancestor stacks,
// ready for per-frame evaluation (spec §4.4, GLOSSARY "Staged layer").
type StagedLayer struct {
	Id          Id
	ZIndex      float32
	Parent      *Id
	StartFrame  float32
	EndFrame    float32
	StartTime   float32
	FrameRate   float32
	Transform   *Transform
	MatteMode   MatteMode
	TimeRemap   *Animated[float32]
	IsMask      bool
	MaskStack   []MaskEntry
	Content     RenderableContent

	// TransformHierarchy lists this layer then its ancestors, nearest
	// first, up to the root (spec §4.4 step 5).
	TransformHierarchy []Id
	// FrameTransformHierarchy lists the root first, then descendants
	// down to this layer (spec §4.4 step 5).
	FrameTransformHierarchy []FrameTransformEntry
}

// Timeline is the flattened, per-frame-renderable scene produced by
// Builder.Build (spec §4.4).
type Timeline struct {
	startFrame float32
	endFrame   float32
	frameRate  float32
	store      map[Id]*StagedLayer
	order      []Id
}

// StartFrame returns the minimum start frame over all staged layers.
func (t *Timeline) StartFrame() float32 { return t.startFrame }

// EndFrame returns the maximum end frame over all staged layers.
func (t *Timeline) EndFrame() float32 { return t.endFrame }

// FrameRate returns the document frame rate the timeline was built with.
func (t *Timeline) FrameRate() float32 { return t.frameRate }

// Layer looks up a staged layer by id.
func (t *Timeline) Layer(id Id) (*StagedLayer, bool) {
	l, ok := t.store[id]
	return l, ok
}

// Layers returns staged layers in insertion (queue-draining) order,
// equal to top-level layer order then BFS into assets (spec §5
// "Ordering").
func (t *Timeline) Layers() []*StagedLayer {
	out := make([]*StagedLayer, len(t.order))
	for i, id := range t.order {
		out[i] = t.store[id]
	}
	return out
}

// ValueAtFloat32 evaluates an Animated[float32] property of a staged
// layer at frame f in the root clock, projecting f through the layer's
// frame-transform hierarchy first (spec §4.4 "Property evaluation").
func (t *Timeline) ValueAtFloat32(layer *StagedLayer, prop *Animated[float32], f float32) (float32, error) {
	return prop.ValueAt(t.projectFrame(layer, f))
}

// ValueAtVec2 is ValueAtFloat32 for Vector2D-valued properties.
func (t *Timeline) ValueAtVec2(layer *StagedLayer, prop *Animated[Vector2D], f float32) (Vector2D, error) {
	return prop.ValueAt(t.projectFrame(layer, f))
}

// projectFrame composes each ancestor's start-time offset and time
// remapping, root-down, per spec §4.4 step 5 "Frame-transform hierarchy".
func (t *Timeline) projectFrame(layer *StagedLayer, f float32) float32 {
	local := f
	for _, entry := range layer.FrameTransformHierarchy {
		local -= entry.StartTime
		if entry.TimeRemap != nil {
			remapped, err := entry.TimeRemap.ValueAt(local)
			if err == nil {
				local = remapped
			}
		}
	}
	return local
}

// Builder constructs a Timeline from a decoded Document, consulting a
// FontDB for text realization (spec §4.4).
type Builder struct {
	fontdb FontDB
	diag   Diagnostics
}

// NewBuilder constructs a Builder. fontdb may be nil if the document has
// no text layers; diag may be the zero Diagnostics to discard warnings.
func NewBuilder(fontdb FontDB, diag Diagnostics) *Builder {
	return &Builder{fontdb: fontdb, diag: diag}
}

type queueEntry struct {
	layer       Layer
	target      string // asset ref_id that produced this entry, "" for top-level
	zindex      float32
	window      float32
	parentID    *Id
	compositionStandby *standbyState
}

type standbyState struct {
	resolved map[int]Id
	waitList map[int][]*Id
}

func newStandbyState() *standbyState {
	return &standbyState{resolved: map[int]Id{}, waitList: map[int][]*Id{}}
}

// Build runs the breadth-first expansion algorithm of spec §4.4,
// producing a flattened Timeline. Link errors (unresolved asset
// references) are skipped rather than aborting, and are aggregated via
// multierr and returned alongside the (non-nil) Timeline.
func (b *Builder) Build(doc *Document) (*Timeline, error) {
	tl := &Timeline{store: map[Id]*StagedLayer{}, frameRate: doc.FrameRate}
	var nextID Id = 1
	var errs error
	var previousID *Id

	assetsByID := make(map[string]Asset, len(doc.Assets))
	for _, a := range doc.Assets {
		assetsByID[a.ID] = a
	}

	queue := make([]queueEntry, 0, len(doc.Layers))
	rootStandby := newStandbyState()
	standbySeen := []*standbyState{rootStandby}
	for i, l := range doc.Layers {
		queue = append(queue, queueEntry{
			layer:              l,
			zindex:             float32(i),
			window:             1.0,
			compositionStandby: rootStandby,
		})
	}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]
		l := entry.layer

		switch content := l.Content.(type) {
		case PrecompositionRef:
			asset, ok := assetsByID[content.RefID]
			if !ok {
				errs = multierr.Append(errs, &AssetNotFoundError{RefID: content.RefID})
				continue
			}
			parentID := entry.parentID
			if !l.Transform.IsIdentity() {
				id := nextID
				nextID++
				group := &StagedLayer{
					Id:         id,
					ZIndex:     entry.zindex,
					Parent:     entry.parentID,
					StartFrame: l.StartFrame,
					EndFrame:   l.EndFrame,
					StartTime:  l.StartTime,
					FrameRate:  doc.FrameRate,
					Transform:  l.Transform.normalize(),
					TimeRemap:  l.TimeRemap,
					Content:    RenderableContent{IsGroup: true},
				}
				b.resolveParentage(tl, group, &l, entry.compositionStandby, &previousID, &errs)
				tl.store[id] = group
				tl.order = append(tl.order, id)
				parentID = &id
			}
			childCount := len(asset.Layers)
			if childCount == 0 {
				continue
			}
			step := entry.window / float32(childCount+1)
			childStandby := newStandbyState()
			standbySeen = append(standbySeen, childStandby)
			for i, child := range asset.Layers {
				c := child
				c.StartFrame = min32(c.StartFrame, l.StartFrame)
				c.EndFrame = min32(c.EndFrame, l.EndFrame)
				c.StartTime += l.StartTime
				if c.StartFrame >= doc.EndFrame {
					continue
				}
				queue = append(queue, queueEntry{
					layer:              c,
					target:             content.RefID,
					zindex:             float32(i+1)*step + entry.zindex,
					window:             step,
					parentID:           parentID,
					compositionStandby: childStandby,
				})
			}
		case MediaRef:
			asset, ok := assetsByID[content.RefID]
			if !ok {
				errs = multierr.Append(errs, &AssetNotFoundError{RefID: content.RefID})
				continue
			}
			id := nextID
			nextID++
			staged := &StagedLayer{
				Id:         id,
				ZIndex:     entry.zindex + entry.window/2,
				Parent:     entry.parentID,
				StartFrame: l.StartFrame,
				EndFrame:   l.EndFrame,
				StartTime:  l.StartTime,
				FrameRate:  doc.FrameRate,
				Transform:  l.Transform.normalize(),
				TimeRemap:  l.TimeRemap,
				Content: RenderableContent{Shapes: []ShapeLayer{{Shape: Rectangle{
					Position: staticAnimated(Vector2D{X: float32(asset.Width) / 2, Y: float32(asset.Height) / 2}),
					Size:     staticAnimated(Vector2D{X: float32(asset.Width), Y: float32(asset.Height)}),
				}}}},
			}
			b.resolveParentage(tl, staged, &l, entry.compositionStandby, &previousID, &errs)
			tl.store[id] = staged
			tl.order = append(tl.order, id)
		case EmptyContent:
			continue
		default:
			id := nextID
			nextID++
			staged := &StagedLayer{
				Id:         id,
				ZIndex:     entry.zindex,
				Parent:     entry.parentID,
				StartFrame: l.StartFrame,
				EndFrame:   l.EndFrame,
				StartTime:  l.StartTime,
				FrameRate:  doc.FrameRate,
				Transform:  l.Transform.normalize(),
				MatteMode:  l.MatteMode,
				TimeRemap:  l.TimeRemap,
			}
			shapes, err := b.realizeContent(l.Content, doc)
			if err != nil {
				errs = multierr.Append(errs, err)
			}
			staged.Content = RenderableContent{Shapes: shapes}
			b.resolveParentage(tl, staged, &l, entry.compositionStandby, &previousID, &errs)
			tl.store[id] = staged
			tl.order = append(tl.order, id)
		}

	}

	for i, id := range tl.order {
		sl := tl.store[id]
		if i == 0 {
			tl.startFrame = sl.StartFrame
			tl.endFrame = sl.EndFrame
			continue
		}
		tl.startFrame = min32(tl.startFrame, sl.StartFrame)
		tl.endFrame = max32(tl.endFrame, sl.EndFrame)
	}

	for _, standby := range standbySeen {
		for idx, waiters := range standby.waitList {
			if len(waiters) > 0 {
				errs = multierr.Append(errs, &ParentNotFoundError{Index: idx})
			}
		}
	}

	b.computeHierarchies(tl)

	return tl, errs
}

func (b *Builder) realizeContent(content LayerContent, doc *Document) ([]ShapeLayer, error) {
	switch c := content.(type) {
	case ShapeContent:
		return c.Shapes, nil
	case TextContent:
		if b.fontdb == nil {
			return nil, &FontNotLoadedError{Name: ""}
		}
		return realizeText(c.Data, doc.Fonts, b.fontdb, b.diag)
	case SolidColor:
		return []ShapeLayer{{Shape: Rectangle{
			Position: staticAnimated(Vector2D{X: c.Width / 2, Y: c.Height / 2}),
			Size:     staticAnimated(Vector2D{X: c.Width, Y: c.Height}),
		}}, {Shape: Fill{Color: staticAnimated(c.Color), Opacity: staticAnimated(float32(100))}}}, nil
	default:
		return nil, nil
	}
}

// resolveParentage implements spec §4.4 steps 3-4: matte linkage against
// the previously inserted id, and index/parent_index resolution via the
// composition-local standby map.
func (b *Builder) resolveParentage(tl *Timeline, staged *StagedLayer, src *Layer, standby *standbyState, previousID **Id, errs *error) {
	if src.MatteMode != MatteNone && *previousID != nil {
		if prev, ok := tl.store[**previousID]; ok {
			if len(prev.MaskStack) > 0 {
				// spec §3: a mask-wearing layer is not itself masked by
				// another mask. prev just became a mask source; drop the
				// direct mask entry it picked up as a matted layer itself.
				b.diag.Warn("dropping nested mask: mask-wearing layer cannot itself be masked",
					zap.Uint32("layer_id", uint32(prev.Id)))
				prev.MaskStack = nil
			}
			prev.IsMask = true
			staged.MaskStack = append(staged.MaskStack, MaskEntry{Source: prev.Id, Mode: src.MatteMode})
		}
	}
	id := staged.Id
	*previousID = &id

	if src.Index != nil {
		standby.resolved[*src.Index] = staged.Id
		for _, waiter := range standby.waitList[*src.Index] {
			*waiter = staged.Id
		}
		delete(standby.waitList, *src.Index)
	}
	if src.ParentIndex != nil {
		if parentID, ok := standby.resolved[*src.ParentIndex]; ok {
			staged.Parent = &parentID
		} else {
			placeholder := new(Id)
			standby.waitList[*src.ParentIndex] = append(standby.waitList[*src.ParentIndex], placeholder)
			staged.Parent = placeholder
		}
	}
}

// computeHierarchies fills TransformHierarchy, FrameTransformHierarchy,
// and MaskStack-derived ancestor masks for every staged layer, per spec
// §4.4 step 5.
func (b *Builder) computeHierarchies(tl *Timeline) {
	for _, id := range tl.order {
		sl := tl.store[id]
		// A forward parent placeholder still at the zero value was never
		// resolved (Build has already aggregated a ParentNotFoundError
		// for it); drop the link.
		if sl.Parent != nil && *sl.Parent == 0 {
			sl.Parent = nil
		}

		chain := []Id{sl.Id}
		cur := sl
		for cur.Parent != nil {
			parent, ok := tl.store[*cur.Parent]
			if !ok {
				break
			}
			chain = append(chain, parent.Id)
			cur = parent
		}
		sl.TransformHierarchy = chain

		frameChain := make([]FrameTransformEntry, len(chain))
		for i := len(chain) - 1; i >= 0; i-- {
			anc := tl.store[chain[i]]
			frameChain[len(chain)-1-i] = FrameTransformEntry{StartTime: anc.StartTime, TimeRemap: anc.TimeRemap}
		}
		sl.FrameTransformHierarchy = frameChain

		if !sl.IsMask {
			var masks []MaskEntry
			for i := 1; i < len(chain); i++ {
				anc := tl.store[chain[i]]
				if len(anc.MaskStack) > 0 {
					masks = append(masks, anc.MaskStack[0])
				}
			}
			sl.MaskStack = append(sl.MaskStack, masks...)
		}
	}
}
