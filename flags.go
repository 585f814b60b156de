package shapes

// ThicknessType selects the space a stroke's thickness is measured in.
// Screen-space thickness is resolved by the shader using the camera
// projection at draw time, never at encode time.
type ThicknessType uint32

const (
	// ThicknessWorld measures thickness in world units.
	ThicknessWorld ThicknessType = iota
	// ThicknessScreen measures thickness as a fraction of screen height.
	ThicknessScreen
	// ThicknessPixels measures thickness in physical pixels.
	ThicknessPixels
)

// Alignment positions a stroke relative to the shape's edge.
type Alignment uint32

const (
	// AlignmentCenter straddles the stroke across the edge.
	AlignmentCenter Alignment = iota
	// AlignmentInside keeps the stroke inside the shape outline.
	AlignmentInside
	// AlignmentOutside keeps the stroke outside the shape outline.
	AlignmentOutside
)

// Cap selects the end-cap style for open strokes (lines, beziers, arcs).
type Cap uint32

const (
	// CapNone ends the stroke flush at the endpoint.
	CapNone Cap = iota
	// CapRound extends the stroke with a half-disc.
	CapRound
	// CapSquare extends the stroke with a half-square.
	CapSquare
)

// Flags is the bit-packed style field carried by every instance record.
// The packing is a wire-format contract shared with the shaders:
//
//	bits 0-1  thickness type (ThicknessType)
//	bits 2-3  alignment      (Alignment)
//	bits 4-6  cap            (Cap)
//	bit  7    hollow
//
// Remaining bits are reserved and must stay zero.
type Flags uint32

const (
	flagsThicknessShift = 0
	flagsThicknessMask  = 0x3 << flagsThicknessShift
	flagsAlignmentShift = 2
	flagsAlignmentMask  = 0x3 << flagsAlignmentShift
	flagsCapShift       = 4
	flagsCapMask        = 0x7 << flagsCapShift
	flagsHollowBit      = 1 << 7
)

// ThicknessType extracts the thickness type bits.
func (f Flags) ThicknessType() ThicknessType {
	return ThicknessType((f & flagsThicknessMask) >> flagsThicknessShift)
}

// SetThicknessType stores t into the thickness type bits.
func (f *Flags) SetThicknessType(t ThicknessType) {
	*f = (*f &^ flagsThicknessMask) | Flags(t)<<flagsThicknessShift
}

// Alignment extracts the alignment bits.
func (f Flags) Alignment() Alignment {
	return Alignment((f & flagsAlignmentMask) >> flagsAlignmentShift)
}

// SetAlignment stores a into the alignment bits.
func (f *Flags) SetAlignment(a Alignment) {
	*f = (*f &^ flagsAlignmentMask) | Flags(a)<<flagsAlignmentShift
}

// Cap extracts the cap bits.
func (f Flags) Cap() Cap {
	return Cap((f & flagsCapMask) >> flagsCapShift)
}

// SetCap stores c into the cap bits.
func (f *Flags) SetCap(c Cap) {
	*f = (*f &^ flagsCapMask) | Flags(c)<<flagsCapShift
}

// Hollow reports the hollow bit.
func (f Flags) Hollow() bool {
	return f&flagsHollowBit != 0
}

// SetHollow stores the hollow bit.
func (f *Flags) SetHollow(hollow bool) {
	if hollow {
		*f |= flagsHollowBit
	} else {
		*f &^= flagsHollowBit
	}
}

// styleFlags packs the common style fields the way every record stores them.
func styleFlags(t ThicknessType, a Alignment, c Cap, hollow bool) Flags {
	var f Flags
	f.SetThicknessType(t)
	f.SetAlignment(a)
	f.SetCap(c)
	f.SetHollow(hollow)
	return f
}
