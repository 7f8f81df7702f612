package brush

import "math"

// View describes how the canvas is shown on screen: the canvas is rotated
// around Pivot, then scaled by Zoom, then translated by Pan.
type View struct {
	Pan      Point   `yaml:"pan"`
	Zoom     float64 `yaml:"zoom"`
	Rotation float64 `yaml:"rotation"` // degrees, clockwise on screen
	Pivot    Point   `yaml:"pivot"`    // canvas space
	Size     Point   `yaml:"size"`     // canvas dimensions, used for clamping
}

// NewView returns the identity view of a canvas of the given size, pivoting
// around the canvas center.
func NewView(width, height int) View {
	size := Pt(float64(width), float64(height))
	return View{Zoom: 1, Pivot: size.Mul(0.5), Size: size}
}

func (v View) zoom() float64 {
	if !(v.Zoom > 0) || math.IsInf(v.Zoom, 0) {
		return 1
	}
	return v.Zoom
}

// Matrix returns the canvas-to-screen transform.
func (v View) Matrix() Matrix {
	z := v.zoom()
	return Translate(v.Pan.X, v.Pan.Y).
		Multiply(Scale(z, z)).
		Multiply(RotateAbout(v.Rotation, v.Pivot))
}

// CanvasToScreen maps a canvas point to screen space.
func (v View) CanvasToScreen(p Point) Point {
	return v.Matrix().TransformPoint(p)
}

// ScreenToCanvas maps a screen point to canvas space. With clamp set, the
// result is limited to the canvas area.
func (v View) ScreenToCanvas(p Point, clamp bool) Point {
	inv, _ := v.Matrix().Invert()
	c := inv.TransformPoint(p)
	if clamp {
		c.X = math.Max(0, math.Min(c.X, math.Max(0, v.Size.X-1)))
		c.Y = math.Max(0, math.Min(c.Y, math.Max(0, v.Size.Y-1)))
	}
	return c
}
