package brush

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/brush/internal/blend"
	"github.com/gogpu/brush/internal/cache"
	"github.com/gogpu/brush/internal/scratch"
)

// CompositeOptions selects how a stamp is combined with the canvas.
type CompositeOptions struct {
	Blend     BlendMode
	AlphaLock bool
	Smoothing Smoothing

	// Erase restores the canvas toward Original instead of painting.
	// A nil Original erases to transparent.
	Erase    bool
	Original *image.RGBA
}

// masked reports whether the stamp needs the per-pixel blend path.
func (o CompositeOptions) masked() bool {
	return o.Erase || o.Blend != BlendNormal || o.AlphaLock
}

// tintCacheSize bounds the number of recolored brushes kept per compositor.
const tintCacheSize = 64

// Compositor rasterizes stamps onto a canvas. It keeps a scratch buffer
// pool and an LRU cache of recolored brushes.
type Compositor struct {
	pool  *scratch.Pool
	tints *cache.Cache[tintKey, *image.RGBA]
}

type tintKey struct {
	src       *image.RGBA
	color     Color
	influence float64
}

// NewCompositor returns a compositor with its own scratch buffer pool.
func NewCompositor() *Compositor {
	return &Compositor{
		pool:  scratch.NewPool(4),
		tints: cache.New[tintKey, *image.RGBA](tintCacheSize),
	}
}

// RotationExpansion returns the factor by which the bounding box of a square
// grows when rotated by deg degrees: cos(θ mod 90°) + sin(θ mod 90°).
func RotationExpansion(deg float64) float64 {
	r := math.Mod(math.Abs(deg), 90) * math.Pi / 180
	return math.Cos(r) + math.Sin(r)
}

// StampBounds returns the canvas pixels a stamp can touch.
func StampBounds(st Stamp) image.Rectangle {
	half := st.Size / 2 * RotationExpansion(st.Rotation)
	return image.Rect(
		int(math.Floor(st.Pos.X-half))-1,
		int(math.Floor(st.Pos.Y-half))-1,
		int(math.Ceil(st.Pos.X+half))+1,
		int(math.Ceil(st.Pos.Y+half))+1,
	)
}

// Stamp composites one stamp of brush onto dst and returns the damaged
// rectangle. Degenerate stamps are skipped and return an empty rectangle.
// A nil brush uses the built-in round brush.
func (c *Compositor) Stamp(dst *image.RGBA, brush image.Image, st Stamp, opts CompositeOptions) image.Rectangle {
	if !(st.Size > 0) || math.IsInf(st.Size, 0) || !st.Pos.IsFinite() || math.IsNaN(st.Rotation) {
		return image.Rectangle{}
	}
	alpha := clampByte(st.Alpha)
	if alpha == 0 {
		return image.Rectangle{}
	}
	rect := StampBounds(st).Intersect(dst.Rect)
	if rect.Empty() {
		return image.Rectangle{}
	}

	src := c.tinted(asRGBA(brush), st.Color, st.Influence)
	if src.Rect.Empty() {
		return image.Rectangle{}
	}
	m := stampMatrix(st, src.Rect)

	var dopts *draw.Options
	if alpha < 255 {
		dopts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: alpha})}
	}
	interp := interpolator(opts.Smoothing)

	if !opts.masked() {
		interp.Transform(dst, m.Aff3(), src, src.Rect, draw.Over, dopts)
		return rect
	}

	buf := c.pool.Get(rect.Dx(), rect.Dy())
	defer c.pool.Put(buf)
	local := Translate(float64(-rect.Min.X), float64(-rect.Min.Y)).Multiply(m)
	interp.Transform(buf, local.Aff3(), src, src.Rect, draw.Src, dopts)
	c.combine(dst, buf, rect, opts)
	return rect
}

// combine applies the scratch coverage in buf to dst over rect.
func (c *Compositor) combine(dst, buf *image.RGBA, rect image.Rectangle, opts CompositeOptions) {
	var f blend.Func
	switch {
	case opts.Erase:
		f = blend.Restore.Func()
	case opts.AlphaLock:
		f = blend.LockAlpha(opts.Blend.Func())
	default:
		f = opts.Blend.Func()
	}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		so := (y - rect.Min.Y) * buf.Stride
		do := dst.PixOffset(rect.Min.X, y)
		for x := rect.Min.X; x < rect.Max.X; x, so, do = x+1, so+4, do+4 {
			mask := buf.Pix[so+3]
			if mask == 0 {
				continue
			}
			d := color.RGBA{R: dst.Pix[do], G: dst.Pix[do+1], B: dst.Pix[do+2], A: dst.Pix[do+3]}
			var s color.RGBA
			if opts.Erase {
				if opts.Original != nil && (image.Point{X: x, Y: y}).In(opts.Original.Rect) {
					s = opts.Original.RGBAAt(x, y)
				}
			} else {
				s = opaque(buf.Pix[so], buf.Pix[so+1], buf.Pix[so+2], mask)
			}
			r := f(d, s, mask)
			dst.Pix[do], dst.Pix[do+1], dst.Pix[do+2], dst.Pix[do+3] = r.R, r.G, r.B, r.A
		}
	}
}

// opaque returns the full-coverage color of a premultiplied pixel.
func opaque(r, g, b, a uint8) color.RGBA {
	un := func(v uint8) uint8 {
		if a == 255 {
			return v
		}
		return uint8(min(255, (int(v)*255+int(a)/2)/int(a)))
	}
	return color.RGBA{R: un(r), G: un(g), B: un(b), A: 255}
}

// stampMatrix maps brush image coordinates to canvas coordinates: the brush
// is centered on the stamp position, scaled so its larger side equals the
// stamp size, flipped, then rotated.
func stampMatrix(st Stamp, b image.Rectangle) Matrix {
	w, h := float64(b.Dx()), float64(b.Dy())
	s := st.Size / math.Max(w, h)
	sx, sy := s, s
	if st.FlipX {
		sx = -sx
	}
	if st.FlipY {
		sy = -sy
	}
	return Translate(st.Pos.X, st.Pos.Y).
		Multiply(Rotate(st.Rotation)).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(-float64(b.Min.X)-w/2, -float64(b.Min.Y)-h/2))
}

func interpolator(s Smoothing) draw.Interpolator {
	switch s {
	case SmoothHigh:
		return draw.CatmullRom
	case SmoothJagged:
		return draw.NearestNeighbor
	default:
		return draw.BiLinear
	}
}

// tinted returns src recolored toward col by influence percent.
func (c *Compositor) tinted(src *image.RGBA, col Color, influence float64) *image.RGBA {
	k := clamp01(influence / 100)
	if k == 0 || math.IsNaN(influence) {
		return src
	}
	return c.tints.GetOrCreate(tintKey{src: src, color: col, influence: k}, func() *image.RGBA {
		return recolor(src, col, k)
	})
}

// recolor lerps the straight color of every pixel toward col by k,
// keeping the pixel alpha.
func recolor(src *image.RGBA, col Color, k float64) *image.RGBA {
	out := image.NewRGBA(src.Rect)
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		i := src.PixOffset(src.Rect.Min.X, y)
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x, i = x+1, i+4 {
			a := src.Pix[i+3]
			if a == 0 {
				continue
			}
			o := opaque(src.Pix[i], src.Pix[i+1], src.Pix[i+2], a)
			af := float64(a) / 255
			out.Pix[i+0] = clampByte(lerp(float64(o.R), float64(col.R), k) * af)
			out.Pix[i+1] = clampByte(lerp(float64(o.G), float64(col.G), k) * af)
			out.Pix[i+2] = clampByte(lerp(float64(o.B), float64(col.B), k) * af)
			out.Pix[i+3] = a
		}
	}
	return out
}

// asRGBA returns img as *image.RGBA, converting when needed.
// A nil image yields the built-in round brush.
func asRGBA(img image.Image) *image.RGBA {
	switch v := img.(type) {
	case nil:
		return RoundBrush()
	case *image.RGBA:
		return v
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

const roundBrushDiameter = 128

var (
	roundOnce  sync.Once
	roundBrush *image.RGBA
)

// RoundBrush returns the built-in brush: a white anti-aliased disc whose
// alpha is the coverage. The image is shared and must not be modified.
func RoundBrush() *image.RGBA {
	roundOnce.Do(func() {
		roundBrush = newRoundBrush(roundBrushDiameter)
	})
	return roundBrush
}

func newRoundBrush(d int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d, d))
	r := float64(d) / 2
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dist := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
			a := clampByte((r - dist + 0.5) * 255)
			if a == 0 {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return img
}
