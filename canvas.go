package brush

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// Canvas is the single mutable raster surface strokes are composited into.
// Pixels are stored premultiplied, 4 bytes per pixel, in an *image.RGBA
// whose bounds always start at (0, 0).
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a transparent canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// CanvasFromImage creates a canvas holding a copy of img, rebased to (0, 0).
func CanvasFromImage(img image.Image) *Canvas {
	b := img.Bounds()
	c := NewCanvas(b.Dx(), b.Dy())
	draw.Draw(c.img, c.img.Bounds(), img, b.Min, draw.Src)
	return c
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int {
	return c.img.Rect.Dx()
}

// Height returns the height of the canvas.
func (c *Canvas) Height() int {
	return c.img.Rect.Dy()
}

// Size returns the canvas dimensions as a Point.
func (c *Canvas) Size() Point {
	return Pt(float64(c.Width()), float64(c.Height()))
}

// RGBA returns the underlying premultiplied buffer.
// Writes through the returned image mutate the canvas.
func (c *Canvas) RGBA() *image.RGBA {
	return c.img
}

// GetPixel returns the straight-alpha color of a single pixel.
// Out-of-bounds coordinates return Transparent.
func (c *Canvas) GetPixel(x, y int) Color {
	if !(image.Point{X: x, Y: y}).In(c.img.Rect) {
		return Transparent
	}
	return FromColor(c.img.RGBAAt(x, y))
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) SetPixel(x, y int, col Color) {
	if !(image.Point{X: x, Y: y}).In(c.img.Rect) {
		return
	}
	c.img.SetRGBA(x, y, col.Premultiplied())
}

// Clear fills the entire canvas with a color.
func (c *Canvas) Clear(col Color) {
	p := col.Premultiplied()
	pix := c.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = p.R
		pix[i+1] = p.G
		pix[i+2] = p.B
		pix[i+3] = p.A
	}
}

// Clone returns an independent copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	dup := &Canvas{img: image.NewRGBA(c.img.Rect)}
	copy(dup.img.Pix, c.img.Pix)
	return dup
}

// CopyFrom overwrites the canvas pixels with those of src.
// It returns ErrSnapshotSize if the dimensions differ.
func (c *Canvas) CopyFrom(src *image.RGBA) error {
	if src.Rect.Dx() != c.Width() || src.Rect.Dy() != c.Height() {
		return ErrSnapshotSize
	}
	copy(c.img.Pix, src.Pix)
	return nil
}

// Equal reports whether both canvases hold identical pixels.
func (c *Canvas) Equal(other *Canvas) bool {
	if c.img.Rect != other.img.Rect {
		return false
	}
	for i, v := range c.img.Pix {
		if other.img.Pix[i] != v {
			return false
		}
	}
	return true
}

// SavePNG saves the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	return c.img.At(x, y)
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Rect
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return color.RGBAModel
}
