package brushimage

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
)

// grayTolerance is the largest channel spread still treated as gray.
const grayTolerance = 2

// normalize turns a decoded image into a square tip at the origin. When
// inkOnPaper is set, an opaque grayscale image is converted to coverage.
// Tips wider than maxSize are downscaled; maxSize <= 0 disables that.
func normalize(name string, img image.Image, inkOnPaper bool, maxSize int) (Brush, error) {
	if img.Bounds().Empty() {
		return Brush{}, fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	rgba := clone.AsRGBA(img)
	if inkOnPaper && opaqueGray(rgba) {
		toCoverage(rgba)
	}
	rgba = square(rgba)
	if maxSize > 0 && rgba.Rect.Dx() > maxSize {
		rgba = transform.Resize(rgba, maxSize, maxSize, transform.Linear)
	}
	if blank(rgba) {
		return Brush{}, fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	return Brush{Name: name, Image: rgba}, nil
}

func opaqueGray(img *image.RGBA) bool {
	for i := 0; i < len(img.Pix); i += 4 {
		p := img.Pix[i : i+4 : i+4]
		if p[3] != 0xff {
			return false
		}
		lo, hi := min(p[0], p[1], p[2]), max(p[0], p[1], p[2])
		if hi-lo > grayTolerance {
			return false
		}
	}
	return true
}

// toCoverage rewrites an opaque gray image as white with alpha
// 255 - luminance, premultiplied.
func toCoverage(img *image.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		p := img.Pix[i : i+4 : i+4]
		lum := (uint32(p[0]) + uint32(p[1]) + uint32(p[2])) / 3
		a := uint8(0xff - lum)
		p[0], p[1], p[2], p[3] = a, a, a, a
	}
}

// square centers img on a transparent square canvas anchored at (0, 0).
func square(img *image.RGBA) *image.RGBA {
	b := img.Rect
	w, h := b.Dx(), b.Dy()
	if w == h && b.Min == (image.Point{}) {
		return img
	}
	side := max(w, h)
	out := image.NewRGBA(image.Rect(0, 0, side, side))
	off := image.Pt((side-w)/2, (side-h)/2)
	draw.Draw(out, image.Rectangle{Min: off, Max: off.Add(b.Size())}, img, b.Min, draw.Src)
	return out
}

func blank(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return false
		}
	}
	return true
}
