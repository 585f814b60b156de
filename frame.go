package shapes

import "github.com/bzm3r/vectorshapes/scenegraph"

// Bucket holds one render target's instance records for a single frame,
// one slice per shape kind. Within a kind, slice order is submission order;
// submission preserves it, so overlapping same-kind shapes blend in the
// order they were drawn.
type Bucket struct {
	Lines        []LineData
	Rects        []RectData
	Triangles    []TriangleData
	Ngons        []NgonData
	Discs        []DiscData
	QuadBeziers  []QuadBezierData
	CubicBeziers []CubicBezierData
	Quads        []QuadData
}

// Len returns the total record count across all kinds.
func (b *Bucket) Len() int {
	return len(b.Lines) + len(b.Rects) + len(b.Triangles) + len(b.Ngons) +
		len(b.Discs) + len(b.QuadBeziers) + len(b.CubicBeziers) + len(b.Quads)
}

// KindLen returns the record count for one kind.
func (b *Bucket) KindLen(k Kind) int {
	switch k {
	case KindLine:
		return len(b.Lines)
	case KindRect:
		return len(b.Rects)
	case KindTriangle:
		return len(b.Triangles)
	case KindNgon:
		return len(b.Ngons)
	case KindDisc:
		return len(b.Discs)
	case KindQuadBezier:
		return len(b.QuadBeziers)
	case KindCubicBezier:
		return len(b.CubicBeziers)
	case KindQuad:
		return len(b.Quads)
	default:
		return 0
	}
}

// reset empties all kind slices, keeping their capacity for the next frame.
func (b *Bucket) reset() {
	b.Lines = b.Lines[:0]
	b.Rects = b.Rects[:0]
	b.Triangles = b.Triangles[:0]
	b.Ngons = b.Ngons[:0]
	b.Discs = b.Discs[:0]
	b.QuadBeziers = b.QuadBeziers[:0]
	b.CubicBeziers = b.CubicBeziers[:0]
	b.Quads = b.Quads[:0]
}

// Frame accumulates one frame's instance records for all render targets.
// Draw calls append during the collect phase; submission seals the frame,
// drains the batches, and the frame is reset before the next collect phase.
// No record ever survives into a later frame.
//
// Cross-kind draw order within a target is fixed ascending Kind order. This
// is deterministic but chosen by the implementation; callers needing blend
// correctness across different kinds must not rely on draw-call order
// between kinds.
type Frame struct {
	main     Bucket
	canvases map[scenegraph.Entity]*Bucket
	order    []scenegraph.Entity
	sealed   bool
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{canvases: make(map[scenegraph.Entity]*Bucket)}
}

// Main returns the main-framebuffer bucket.
func (f *Frame) Main() *Bucket {
	return &f.main
}

// Canvas returns the bucket for the given canvas entity, creating it on
// first use. Whether the entity still exists is resolved at submission;
// buckets for stale targets are dropped there.
func (f *Frame) Canvas(e scenegraph.Entity) *Bucket {
	if b, ok := f.canvases[e]; ok {
		return b
	}
	b := &Bucket{}
	f.canvases[e] = b
	f.order = append(f.order, e)
	return b
}

// CanvasTargets returns the canvas entities that received draws this frame,
// in first-draw order.
func (f *Frame) CanvasTargets() []scenegraph.Entity {
	out := make([]scenegraph.Entity, len(f.order))
	copy(out, f.order)
	return out
}

// Seal marks the frame as handed to submission. Draw calls after Seal fail
// with ErrFrameSealed: submission must never race the collect phase.
func (f *Frame) Seal() {
	f.sealed = true
}

// Sealed reports whether the frame has been sealed.
func (f *Frame) Sealed() bool {
	return f.sealed
}

// Reset empties all batches and reopens the frame for the next collect
// phase. The main bucket keeps its capacity; canvas entries are dropped
// entirely so targets destroyed between frames do not linger.
func (f *Frame) Reset() {
	f.main.reset()
	clear(f.canvases)
	f.order = f.order[:0]
	f.sealed = false
}
