// Command shapesdemo renders a showcase of every shape kind with the
// software submitter and writes the result to a PNG.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bzm3r/vectorshapes"
	"github.com/bzm3r/vectorshapes/render"
	"github.com/bzm3r/vectorshapes/scenegraph"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "shapes.png", "output file")
		verbose = flag.Bool("v", false, "log render diagnostics")
	)
	flag.Parse()

	if *verbose {
		shapes.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	world := scenegraph.NewWorld()
	frame := shapes.NewFrame()
	images := render.NewImages()
	renderer := render.NewRenderer(world, frame, images, render.NewSoftwareSubmitter(images))

	p := shapes.NewPainter(frame)
	drawStrokes(p)
	drawFills(p)
	drawCurves(p)

	target := render.NewPixmapTarget(*width, *height)
	cam := render.OrthographicCamera(float32(*width), float32(*height))
	if err := renderer.RenderFrame(target, cam, shapes.White); err != nil {
		log.Fatalf("render: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %s: %v", *output, err)
	}
	defer f.Close()
	if err := png.Encode(f, target.Image()); err != nil {
		log.Fatalf("encode: %v", err)
	}
	log.Printf("demo saved to %s (%dx%d)", *output, *width, *height)
}

func drawStrokes(p *shapes.Painter) {
	p.Save()
	defer p.Restore()

	p.Translate(-250, 150, 0)
	p.SetThickness(8)

	caps := []shapes.Cap{shapes.CapNone, shapes.CapRound, shapes.CapSquare}
	for i, cap := range caps {
		p.SetCap(cap)
		p.SetColor(shapes.RGBA{R: 0.8, G: 0.2 + float32(i)*0.3, B: 0.2, A: 1})
		must(p.Line(mgl32.Vec3{-60, float32(-i) * 30, 0}, mgl32.Vec3{60, float32(-i) * 30, 0}))
	}
}

func drawFills(p *shapes.Painter) {
	p.Save()
	defer p.Restore()

	p.Translate(100, 100, 0)
	p.SetColor(shapes.RGBA{R: 0.2, G: 0.4, B: 0.9, A: 1})
	must(p.Circle(50))

	p.Translate(130, 0, 0)
	p.SetColor(shapes.RGBA{R: 0.9, G: 0.6, B: 0.1, A: 1})
	p.SetRoundness(6)
	must(p.Ngon(6, 50))
	p.SetRoundness(0)

	p.Translate(130, 0, 0)
	p.SetColor(shapes.RGBA{R: 0.3, G: 0.8, B: 0.4, A: 1})
	p.SetCornerRadii(mgl32.Vec4{20, 5, 20, 5})
	must(p.Rect(mgl32.Vec2{90, 90}))

	p.Translate(-260, -130, 0)
	p.SetColor(shapes.RGBA{R: 0.7, G: 0.3, B: 0.8, A: 1})
	must(p.Triangle(mgl32.Vec3{-45, -40, 0}, mgl32.Vec3{45, -40, 0}, mgl32.Vec3{0, 45, 0}))
}

func drawCurves(p *shapes.Painter) {
	p.Save()
	defer p.Restore()

	p.Translate(-150, -150, 0)
	p.SetThickness(5)
	p.SetColor(shapes.RGBA{R: 0.1, G: 0.1, B: 0.1, A: 1})
	must(p.QuadBezier(mgl32.Vec3{-80, 0, 0}, mgl32.Vec3{0, 90, 0}, mgl32.Vec3{80, 0, 0}))

	p.Translate(220, 0, 0)
	must(p.CubicBezier(
		mgl32.Vec3{-80, 0, 0}, mgl32.Vec3{-30, 90, 0},
		mgl32.Vec3{30, -90, 0}, mgl32.Vec3{80, 0, 0}))

	p.Translate(120, 60, 0)
	p.SetHollow(true)
	p.SetThickness(10)
	p.SetColor(shapes.RGBA{R: 0.9, G: 0.2, B: 0.3, A: 1})
	must(p.Arc(45, math.Pi/4, 7*math.Pi/4))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
