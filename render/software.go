package render

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/bzm3r/vectorshapes"
)

// softwareAA is the anti-aliasing transition width in pixels.
const softwareAA = 1.0

// SoftwareSubmitter rasterizes shape batches on the CPU into CPU-backed
// targets. It evaluates the same signed distance fields as the shaders, so
// the two paths agree on shape coverage; textured quads composite through
// golang.org/x/image/draw.
//
// The software path exists for headless hosts and tests; it trades speed
// for zero GPU dependencies.
type SoftwareSubmitter struct {
	images *Images
}

// NewSoftwareSubmitter creates a CPU submitter. The images registry
// resolves quad image handles to pixmap targets.
func NewSoftwareSubmitter(images *Images) *SoftwareSubmitter {
	return &SoftwareSubmitter{images: images}
}

// Submit implements Submitter.
func (s *SoftwareSubmitter) Submit(batch *shapes.Bucket, target RenderTarget, cam Camera, clear shapes.RGBA) error {
	pix := target.Pixels()
	if pix == nil {
		return fmt.Errorf("render: target has no CPU pixels")
	}
	r := &softwareRaster{
		pix:    pix,
		stride: target.Stride(),
		width:  target.Width(),
		height: target.Height(),
		images: s.images,
	}
	r.clear(clear)

	// pixelFromWorld maps world space through the camera to pixel space,
	// Y down.
	w, h := float32(r.width), float32(r.height)
	pixelFromNDC := mgl32.Translate3D(w/2, h/2, 0).Mul4(mgl32.Scale3D(w/2, -h/2, 1))
	pixelFromWorld := pixelFromNDC.Mul4(cam.ViewProjection)

	for _, rec := range batch.Lines {
		r.line(rec, pixelFromWorld)
	}
	for _, rec := range batch.Rects {
		r.rect(rec, pixelFromWorld)
	}
	for _, rec := range batch.Triangles {
		r.triangle(rec, pixelFromWorld)
	}
	for _, rec := range batch.Ngons {
		r.ngon(rec, pixelFromWorld)
	}
	for _, rec := range batch.Discs {
		r.disc(rec, pixelFromWorld)
	}
	for _, rec := range batch.QuadBeziers {
		r.quadBezier(rec, pixelFromWorld)
	}
	for _, rec := range batch.CubicBeziers {
		r.cubicBezier(rec, pixelFromWorld)
	}
	for _, rec := range batch.Quads {
		r.quad(rec, pixelFromWorld)
	}
	return nil
}

var _ Submitter = (*SoftwareSubmitter)(nil)

type softwareRaster struct {
	pix    []byte
	stride int
	width  int
	height int
	images *Images
}

func (r *softwareRaster) clear(c shapes.RGBA) {
	cr, cg, cb, ca := toBytes(c)
	for y := 0; y < r.height; y++ {
		row := r.pix[y*r.stride:]
		for x := 0; x < r.width; x++ {
			row[x*4+0] = cr
			row[x*4+1] = cg
			row[x*4+2] = cb
			row[x*4+3] = ca
		}
	}
}

// affine is the 2D affine part of a model-to-pixel matrix.
type affine struct {
	a, b, c float32 // x' = a*x + b*y + c
	d, e, f float32 // y' = d*x + e*y + f
}

func affineOf(m mgl32.Mat4) affine {
	// mgl32 matrices are column-major: element (row, col) is m[col*4+row].
	return affine{
		a: m[0], b: m[4], c: m[12],
		d: m[1], e: m[5], f: m[13],
	}
}

func (t affine) apply(x, y float32) (float32, float32) {
	return t.a*x + t.b*y + t.c, t.d*x + t.e*y + t.f
}

func (t affine) det() float32 {
	return t.a*t.e - t.b*t.d
}

func (t affine) invert() (affine, bool) {
	det := t.det()
	if det == 0 {
		return affine{}, false
	}
	inv := 1 / det
	return affine{
		a: t.e * inv, b: -t.b * inv, c: (t.b*t.f - t.e*t.c) * inv,
		d: -t.d * inv, e: t.a * inv, f: (t.d*t.c - t.a*t.f) * inv,
	}, true
}

// scale returns the average length scale of the transform, used to convert
// local-space distances to pixel distances.
func (t affine) scale() float32 {
	return float32(math.Sqrt(math.Abs(float64(t.det()))))
}

// fillSDF rasterizes one shape: the local-space bounding box [lo, hi] is
// transformed to pixels and every covered pixel center is inverse-mapped to
// local space, where dist evaluates the signed distance.
func (r *softwareRaster) fillSDF(model mgl32.Mat4, pixelFromWorld mgl32.Mat4, lo, hi mgl32.Vec2, color [4]float32, dist func(x, y float32) float32) {
	t := affineOf(pixelFromWorld.Mul4(model))
	inv, ok := t.invert()
	if !ok {
		return
	}
	scale := t.scale()
	if scale == 0 {
		return
	}

	// Pixel-space bounds of the transformed local box.
	corners := [4][2]float32{{lo[0], lo[1]}, {hi[0], lo[1]}, {lo[0], hi[1]}, {hi[0], hi[1]}}
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, c := range corners {
		px, py := t.apply(c[0], c[1])
		minX, maxX = min(minX, px), max(maxX, px)
		minY, maxY = min(minY, py), max(maxY, py)
	}

	x0 := max(int(math.Floor(float64(minX))), 0)
	y0 := max(int(math.Floor(float64(minY))), 0)
	x1 := min(int(math.Ceil(float64(maxX)))+1, r.width)
	y1 := min(int(math.Ceil(float64(maxY)))+1, r.height)

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			lx, ly := inv.apply(float32(px)+0.5, float32(py)+0.5)
			d := dist(lx, ly) * scale
			alpha := coverage(d)
			if alpha <= 0 {
				continue
			}
			r.blend(px, py, color, alpha)
		}
	}
}

// coverage converts a pixel-space signed distance to blend alpha.
func coverage(d float32) float32 {
	a := 0.5 - d/softwareAA
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 1
	}
	return a
}

// blend source-over composites a straight-alpha color onto the pixel.
func (r *softwareRaster) blend(x, y int, color [4]float32, alpha float32) {
	sa := color[3] * alpha
	if sa <= 0 {
		return
	}
	i := y*r.stride + x*4
	da := float32(r.pix[i+3]) / 255
	outA := sa + da*(1-sa)
	if outA <= 0 {
		return
	}
	for c := 0; c < 3; c++ {
		sc := color[c]
		dc := float32(r.pix[i+c]) / 255
		r.pix[i+c] = byte((sc*sa+dc*da*(1-sa))/outA*255 + 0.5)
	}
	r.pix[i+3] = byte(outA*255 + 0.5)
}

func (r *softwareRaster) line(rec shapes.LineData, pixelFromWorld mgl32.Mat4) {
	start := mgl32.Vec2{rec.Start[0], rec.Start[1]}
	end := mgl32.Vec2{rec.End[0], rec.End[1]}
	halfThick := rec.Thickness / 2
	cap := rec.Flags.Cap()

	capExt := float32(0)
	if cap != shapes.CapNone {
		capExt = halfThick
	}
	pad := halfThick + capExt + softwareAA
	lo := mgl32.Vec2{min(start[0], end[0]) - pad, min(start[1], end[1]) - pad}
	hi := mgl32.Vec2{max(start[0], end[0]) + pad, max(start[1], end[1]) + pad}

	r.fillSDF(rec.Transform4(), pixelFromWorld, lo, hi, rec.Color, func(x, y float32) float32 {
		return segmentDist(mgl32.Vec2{x, y}, start, end, halfThick, cap)
	})
}

func segmentDist(p, a, b mgl32.Vec2, halfThick float32, cap shapes.Cap) float32 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	var h float32
	if lenSq > 0 {
		h = p.Sub(a).Dot(ab) / lenSq
	}
	switch cap {
	case shapes.CapRound:
		h = clampf(h, 0, 1)
		return p.Sub(a.Add(ab.Mul(h))).Len() - halfThick
	default:
		// Flush and square caps are boxes in segment space; square
		// extends the box by the half thickness.
		halfLen := float32(math.Sqrt(float64(lenSq))) / 2
		if cap == shapes.CapSquare {
			halfLen += halfThick
		}
		mid := a.Add(ab.Mul(0.5))
		rel := p.Sub(mid)
		var u, v float32
		if lenSq > 0 {
			dir := ab.Normalize()
			u = rel.Dot(dir)
			v = rel.Dot(mgl32.Vec2{-dir[1], dir[0]})
		} else {
			u, v = rel[0], rel[1]
		}
		du := absf(u) - halfLen
		dv := absf(v) - halfThick
		return max(du, dv)
	}
}

func (r *softwareRaster) rect(rec shapes.RectData, pixelFromWorld mgl32.Mat4) {
	halfW := rec.Size[0] / 2
	halfH := rec.Size[1] / 2
	pad := rec.Thickness + softwareAA
	lo := mgl32.Vec2{-halfW - pad, -halfH - pad}
	hi := mgl32.Vec2{halfW + pad, halfH + pad}
	hollow := rec.Flags.Hollow()

	r.fillSDF(rec.Transform4(), pixelFromWorld, lo, hi, rec.Color, func(x, y float32) float32 {
		d := roundedRectDist(mgl32.Vec2{x, y}, mgl32.Vec2{halfW, halfH}, rec.CornerRadii)
		if hollow {
			d = absf(d) - rec.Thickness/2
		}
		return d
	})
}

// roundedRectDist matches the shader: radii are ordered top-left,
// top-right, bottom-right, bottom-left.
func roundedRectDist(p, half mgl32.Vec2, radii [4]float32) float32 {
	var rad float32
	if p[0] >= 0 {
		if p[1] >= 0 {
			rad = radii[1]
		} else {
			rad = radii[2]
		}
	} else {
		if p[1] >= 0 {
			rad = radii[0]
		} else {
			rad = radii[3]
		}
	}
	qx := absf(p[0]) - half[0] + rad
	qy := absf(p[1]) - half[1] + rad
	outside := mgl32.Vec2{max(qx, 0), max(qy, 0)}.Len()
	return min(max(qx, qy), 0) + outside - rad
}

func (r *softwareRaster) triangle(rec shapes.TriangleData, pixelFromWorld mgl32.Mat4) {
	a := mgl32.Vec2{rec.A[0], rec.A[1]}
	b := mgl32.Vec2{rec.B[0], rec.B[1]}
	c := mgl32.Vec2{rec.C[0], rec.C[1]}
	pad := rec.Thickness + softwareAA
	lo := mgl32.Vec2{min(a[0], min(b[0], c[0])) - pad, min(a[1], min(b[1], c[1])) - pad}
	hi := mgl32.Vec2{max(a[0], max(b[0], c[0])) + pad, max(a[1], max(b[1], c[1])) + pad}
	hollow := rec.Flags.Hollow()

	r.fillSDF(rec.Transform4(), pixelFromWorld, lo, hi, rec.Color, func(x, y float32) float32 {
		d := triangleDist(mgl32.Vec2{x, y}, a, b, c)
		if hollow {
			d = absf(d) - rec.Thickness/2
		}
		return d
	})
}

func triangleDist(p, a, b, c mgl32.Vec2) float32 {
	dAB, sAB := edgeDist(p, a, b)
	dBC, sBC := edgeDist(p, b, c)
	dCA, sCA := edgeDist(p, c, a)
	winding := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	d := float32(math.Sqrt(float64(min(dAB, min(dBC, dCA)))))
	s := min(sAB, min(sBC, sCA))
	if winding < 0 {
		s = -max(sAB, max(sBC, sCA))
	}
	if s > 0 {
		return -d
	}
	return d
}

func edgeDist(p, a, b mgl32.Vec2) (distSq, side float32) {
	pa := p.Sub(a)
	ba := b.Sub(a)
	h := clampf(pa.Dot(ba)/ba.Dot(ba), 0, 1)
	d := pa.Sub(ba.Mul(h))
	return d.Dot(d), ba[0]*pa[1] - ba[1]*pa[0]
}

func (r *softwareRaster) ngon(rec shapes.NgonData, pixelFromWorld mgl32.Mat4) {
	ext := rec.Radius + rec.Roundness + rec.Thickness + softwareAA
	lo := mgl32.Vec2{-ext, -ext}
	hi := mgl32.Vec2{ext, ext}
	hollow := rec.Flags.Hollow()

	r.fillSDF(rec.Transform4(), pixelFromWorld, lo, hi, rec.Color, func(x, y float32) float32 {
		d := ngonDist(mgl32.Vec2{x, y}, rec.Sides, rec.Radius) - rec.Roundness
		if hollow {
			d = absf(d) - rec.Thickness/2
		}
		return d
	})
}

// ngonDist folds the plane into one angular sector of a regular polygon
// with a vertex on +Y.
func ngonDist(p mgl32.Vec2, sides, radius float32) float32 {
	sector := 2 * math.Pi / float64(sides)
	theta := math.Atan2(float64(p[0]), float64(p[1]))
	theta -= sector * math.Floor(theta/sector+0.5)
	l := float64(p.Len())
	qx := l * math.Sin(theta)
	qy := l * math.Cos(theta)
	halfSector := sector / 2
	return float32(qy*math.Cos(halfSector) + math.Abs(qx)*math.Sin(halfSector) - float64(radius)*math.Cos(halfSector))
}

func (r *softwareRaster) disc(rec shapes.DiscData, pixelFromWorld mgl32.Mat4) {
	ext := rec.Radius + rec.Thickness + softwareAA
	lo := mgl32.Vec2{-ext, -ext}
	hi := mgl32.Vec2{ext, ext}
	hollow := rec.Flags.Hollow()
	cap := rec.Flags.Cap()
	span := float64(rec.EndAngle - rec.StartAngle)
	full := span >= 2*math.Pi

	r.fillSDF(rec.Transform4(), pixelFromWorld, lo, hi, rec.Color, func(x, y float32) float32 {
		p := mgl32.Vec2{x, y}
		d := p.Len() - rec.Radius
		if hollow {
			d = absf(d) - rec.Thickness/2
		}
		if full {
			return d
		}

		theta := math.Atan2(float64(y), float64(x)) - float64(rec.StartAngle)
		theta -= 2 * math.Pi * math.Floor(theta/(2*math.Pi))
		if theta <= span {
			return d
		}
		if cap != shapes.CapRound {
			return softwareAA + 1 // outside, no cap closes the span
		}
		capR := rec.Thickness / 2
		p0 := mgl32.Vec2{float32(math.Cos(float64(rec.StartAngle))), float32(math.Sin(float64(rec.StartAngle)))}.Mul(rec.Radius)
		p1 := mgl32.Vec2{float32(math.Cos(float64(rec.EndAngle))), float32(math.Sin(float64(rec.EndAngle)))}.Mul(rec.Radius)
		dc := min(p.Sub(p0).Len(), p.Sub(p1).Len()) - capR
		return max(d, dc)
	})
}

func (r *softwareRaster) quadBezier(rec shapes.QuadBezierData, pixelFromWorld mgl32.Mat4) {
	p0 := mgl32.Vec2{rec.Start[0], rec.Start[1]}
	p1 := mgl32.Vec2{rec.Control[0], rec.Control[1]}
	p2 := mgl32.Vec2{rec.End[0], rec.End[1]}
	r.bezierStroke(rec.Transform4(), pixelFromWorld, rec.Color, rec.Thickness,
		[]mgl32.Vec2{p0, p1, p2},
		func(t float32) mgl32.Vec2 {
			u := 1 - t
			return p0.Mul(u * u).Add(p1.Mul(2 * u * t)).Add(p2.Mul(t * t))
		})
}

func (r *softwareRaster) cubicBezier(rec shapes.CubicBezierData, pixelFromWorld mgl32.Mat4) {
	p0 := mgl32.Vec2{rec.Start[0], rec.Start[1]}
	p1 := mgl32.Vec2{rec.Control1[0], rec.Control1[1]}
	p2 := mgl32.Vec2{rec.Control2[0], rec.Control2[1]}
	p3 := mgl32.Vec2{rec.End[0], rec.End[1]}
	r.bezierStroke(rec.Transform4(), pixelFromWorld, rec.Color, rec.Thickness,
		[]mgl32.Vec2{p0, p1, p2, p3},
		func(t float32) mgl32.Vec2 {
			u := 1 - t
			return p0.Mul(u * u * u).
				Add(p1.Mul(3 * u * u * t)).
				Add(p2.Mul(3 * u * t * t)).
				Add(p3.Mul(t * t * t))
		})
}

// bezierStroke flattens the curve into segments and takes the minimum
// segment distance, matching the shader's sampled nearest-point search.
func (r *softwareRaster) bezierStroke(model, pixelFromWorld mgl32.Mat4, color [4]float32, thickness float32, ctrl []mgl32.Vec2, at func(t float32) mgl32.Vec2) {
	const steps = 32
	pts := make([]mgl32.Vec2, steps+1)
	for i := range pts {
		pts[i] = at(float32(i) / steps)
	}

	pad := thickness + softwareAA
	lo := mgl32.Vec2{float32(math.Inf(1)), float32(math.Inf(1))}
	hi := mgl32.Vec2{float32(math.Inf(-1)), float32(math.Inf(-1))}
	for _, p := range ctrl {
		lo = mgl32.Vec2{min(lo[0], p[0]-pad), min(lo[1], p[1]-pad)}
		hi = mgl32.Vec2{max(hi[0], p[0]+pad), max(hi[1], p[1]+pad)}
	}

	halfThick := thickness / 2
	r.fillSDF(model, pixelFromWorld, lo, hi, color, func(x, y float32) float32 {
		p := mgl32.Vec2{x, y}
		best := float32(math.Inf(1))
		for i := 0; i < steps; i++ {
			d := segmentDist(p, pts[i], pts[i+1], halfThick, shapes.CapRound)
			best = min(best, d)
		}
		return best
	})
}

// quad composites a sampled image through x/image/draw with the record's
// affine pixel transform.
func (r *softwareRaster) quad(rec shapes.QuadData, pixelFromWorld mgl32.Mat4) {
	target, err := r.images.Resolve(shapes.ImageHandle(rec.Image))
	if err != nil {
		return
	}
	srcPix := target.Pixels()
	if srcPix == nil {
		return
	}
	src := &image.RGBA{
		Pix:    srcPix,
		Stride: target.Stride(),
		Rect:   image.Rect(0, 0, target.Width(), target.Height()),
	}

	// Sub-rectangle selected by the UV bounds.
	sw, sh := float64(target.Width()), float64(target.Height())
	sr := image.Rect(
		int(float64(rec.UV[0])*sw), int(float64(rec.UV[1])*sh),
		int(float64(rec.UV[2])*sw), int(float64(rec.UV[3])*sh),
	)
	if sr.Empty() {
		return
	}
	if rec.Color != [4]float32{1, 1, 1, 1} {
		src = tinted(src, sr, rec.Color)
	}

	// Maps the source rect onto the quad's local box, then to pixels.
	// Texture rows run top to bottom while local Y runs bottom to up, so
	// the V axis is negated.
	t := affineOf(pixelFromWorld.Mul4(rec.Transform4()))
	halfW, halfH := rec.Size[0]/2, rec.Size[1]/2
	sx := 2 * halfW / float32(sr.Dx())
	sy := 2 * halfH / float32(sr.Dy())

	a00, a01 := float64(t.a*sx), float64(-t.b*sy)
	a10, a11 := float64(t.d*sx), float64(-t.e*sy)
	px, py := t.apply(-halfW, halfH)
	ox, oy := float64(px), float64(py)
	m := f64.Aff3{
		a00, a01, ox - a00*float64(sr.Min.X) - a01*float64(sr.Min.Y),
		a10, a11, oy - a10*float64(sr.Min.X) - a11*float64(sr.Min.Y),
	}

	dst := &image.RGBA{Pix: r.pix, Stride: r.stride, Rect: image.Rect(0, 0, r.width, r.height)}
	xdraw.ApproxBiLinear.Transform(dst, m, src, sr, xdraw.Over, nil)
}

// tinted returns a copy of the source rect with the instance color tint
// multiplied in.
func tinted(src *image.RGBA, sr image.Rectangle, color [4]float32) *image.RGBA {
	out := image.NewRGBA(sr)
	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		si := src.PixOffset(sr.Min.X, y)
		oi := out.PixOffset(sr.Min.X, y)
		for x := sr.Min.X; x < sr.Max.X; x++ {
			for c := 0; c < 4; c++ {
				v := float32(src.Pix[si+c]) / 255 * color[c]
				out.Pix[oi+c] = byte(v*255 + 0.5)
			}
			si += 4
			oi += 4
		}
	}
	return out
}

func toBytes(c shapes.RGBA) (byte, byte, byte, byte) {
	conv := func(v float32) byte {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return byte(v*255 + 0.5)
	}
	return conv(c.R), conv(c.G), conv(c.B), conv(c.A)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
