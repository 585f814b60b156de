package render

import (
	"github.com/bzm3r/vectorshapes"
	"github.com/bzm3r/vectorshapes/scenegraph"
)

// Extract re-encodes every persistent shape entity into the frame, as if it
// had been drawn through the painter this frame. Each entity's record uses
// its composed world transform, so reparenting or moving an ancestor moves
// the shape. Shapes are masked against the camera of the pass that will
// draw them: the main camera, or the target canvas's own camera.
//
// Extraction iterates each component store in entity spawn order, so
// within a kind the draw order of persistent shapes is stable across
// frames.
func Extract(w *scenegraph.World, frame *shapes.Frame, cam Camera) {
	extractKind[shapes.Line](w, frame, cam)
	extractKind[shapes.Rect](w, frame, cam)
	extractKind[shapes.Triangle](w, frame, cam)
	extractKind[shapes.Ngon](w, frame, cam)
	extractKind[shapes.Disc](w, frame, cam)
	extractKind[shapes.QuadBezier](w, frame, cam)
	extractKind[shapes.CubicBezier](w, frame, cam)
	extractKind[shapes.Quad](w, frame, cam)
}

func extractKind[T shapes.ShapeComponent](w *scenegraph.World, frame *shapes.Frame, cam Camera) {
	scenegraph.Each(w, func(e scenegraph.Entity, c T) {
		meta, ok := scenegraph.Get[shapes.ShapeMeta](w, e)
		if !ok {
			return
		}
		passCam := cam
		if meta.Canvas.IsValid() {
			if canvas, ok := scenegraph.Get[Canvas](w, meta.Canvas); ok {
				passCam = canvas.Camera
			}
		}
		if !passCam.Sees(meta.RenderLayers) {
			return
		}
		bucket := frame.Main()
		if meta.Canvas.IsValid() {
			bucket = frame.Canvas(meta.Canvas)
		}
		shapes.AppendRecord(bucket, c, w.WorldTransform(e))
	})
}
