package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/actionkit/common"
)

const (
	circleSegments = 20
	crossSize      = 4
)

// drawSpace outlines every shape in space. Toggled with D.
func drawSpace(screen *ebiten.Image, space *cp.Space) {
	if space == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &spaceOutline{screen: screen})
}

type spaceOutline struct {
	screen *ebiten.Image
}

func (o *spaceOutline) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	o.ring(pos, radius, outline)
	o.line(pos, pos.Add(cp.ForAngle(angle).Mult(radius)), outline)
}

func (o *spaceOutline) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	o.line(a, b, fill)
}

func (o *spaceOutline) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	o.line(a, b, fill)
}

func (o *spaceOutline) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	o.loop(verts[:min(count, len(verts))], outline)
}

func (o *spaceOutline) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	o.line(cp.Vector{X: pos.X - crossSize, Y: pos.Y}, cp.Vector{X: pos.X + crossSize, Y: pos.Y}, fill)
	o.line(cp.Vector{X: pos.X, Y: pos.Y - crossSize}, cp.Vector{X: pos.X, Y: pos.Y + crossSize}, fill)
}

func (o *spaceOutline) Flags() uint { return cp.DRAW_SHAPES }

func (o *spaceOutline) OutlineColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.9, B: 0.2, A: 0.9}
}

func (o *spaceOutline) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.6, G: 0.6, B: 0.6, A: 0.8}
	}
	return cp.FColor{R: 1, G: 0.9, B: 0.2, A: 0.9}
}

func (o *spaceOutline) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (o *spaceOutline) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (o *spaceOutline) Data() interface{} { return nil }

func (o *spaceOutline) line(a, b cp.Vector, c cp.FColor) {
	vector.StrokeLine(o.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, toColor(c), false)
}

func (o *spaceOutline) loop(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		o.line(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (o *spaceOutline) ring(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	verts := make([]cp.Vector, circleSegments)
	for i := range verts {
		t := 2 * math.Pi * float64(i) / circleSegments
		verts[i] = cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius}
	}
	o.loop(verts, c)
}

func toColor(c cp.FColor) color.NRGBA {
	channel := func(v float32) uint8 { return uint8(common.Clamp01(float64(v)) * 255) }
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}
