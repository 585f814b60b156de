package shapes

// Kind identifies a shape type. Within one render target, batches are drawn
// in ascending Kind order; this order is deterministic but is a documented
// limitation, not a blending guarantee across kinds (see Frame).
type Kind uint8

const (
	KindLine Kind = iota
	KindRect
	KindTriangle
	KindNgon
	KindDisc
	KindQuadBezier
	KindCubicBezier
	KindQuad

	// KindCount is the number of shape kinds.
	KindCount
)

var kindNames = [...]string{
	KindLine:        "Line",
	KindRect:        "Rect",
	KindTriangle:    "Triangle",
	KindNgon:        "Ngon",
	KindDisc:        "Disc",
	KindQuadBezier:  "QuadBezier",
	KindCubicBezier: "CubicBezier",
	KindQuad:        "Quad",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
