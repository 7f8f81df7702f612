// Package blend implements the per-pixel blend modes used when a brush stamp
// is composited through a coverage mask.
//
// All colors are premultiplied, 8 bits per channel. A Func receives the
// destination pixel, the source color at full coverage and the coverage
// (mask) of the stamp at that pixel, and returns the new destination pixel.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Mode selects how a stamp pixel is combined with the canvas.
type Mode uint8

const (
	Normal    Mode = iota // source-over
	Overwrite             // replace color and alpha where covered
	Multiply
	Additive
	ColorBurn
	ColorDodge
	Reflect
	Glow
	Overlay
	Difference
	Negation
	Lighten
	Darken
	Screen
	Xor // bitwise XOR of the color channels
	HardLight
	SoftLight
	Exclusion

	// Restore moves the destination toward the source (the original image)
	// by the mask. It backs the eraser and is not user-selectable.
	Restore
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("blend: unknown mode")

var modeNames = [...]string{
	Normal:     "normal",
	Overwrite:  "overwrite",
	Multiply:   "multiply",
	Additive:   "additive",
	ColorBurn:  "color-burn",
	ColorDodge: "color-dodge",
	Reflect:    "reflect",
	Glow:       "glow",
	Overlay:    "overlay",
	Difference: "difference",
	Negation:   "negation",
	Lighten:    "lighten",
	Darken:     "darken",
	Screen:     "screen",
	Xor:        "xor",
	HardLight:  "hard-light",
	SoftLight:  "soft-light",
	Exclusion:  "exclusion",
	Restore:    "restore",
}

// Modes returns every user-selectable mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, 0, int(Restore))
	for m := Normal; m < Restore; m++ {
		out = append(out, m)
	}
	return out
}

// String returns the lower-case, hyphenated name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode returns the user-selectable mode with the given name.
// Matching ignores case, and underscores or spaces may stand in for hyphens.
func ParseMode(name string) (Mode, error) {
	key := strings.NewReplacer("_", "-", " ", "-").Replace(strings.TrimSpace(name))
	for m := Normal; m < Restore; m++ {
		if strings.EqualFold(modeNames[m], key) {
			return m, nil
		}
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m >= Restore {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Func combines one destination pixel with the source color under a mask.
// dst and src are premultiplied; src is the color at full coverage.
type Func func(dst, src color.RGBA, mask uint8) color.RGBA

// Func returns the pixel function for m. Unknown modes fall back to source-over.
func (m Mode) Func() Func {
	switch m {
	case Overwrite:
		return overwrite
	case Restore:
		return restore
	case Multiply:
		return separable(multiply)
	case Additive:
		return separable(additive)
	case ColorBurn:
		return separable(colorBurn)
	case ColorDodge:
		return separable(colorDodge)
	case Reflect:
		return separable(reflect)
	case Glow:
		return separable(glow)
	case Overlay:
		return separable(overlay)
	case Difference:
		return separable(difference)
	case Negation:
		return separable(negation)
	case Lighten:
		return separable(lighten)
	case Darken:
		return separable(darken)
	case Screen:
		return separable(screen)
	case Xor:
		return separable(xor)
	case HardLight:
		return separable(hardLight)
	case SoftLight:
		return separable(softLight)
	case Exclusion:
		return separable(exclusion)
	default:
		return sourceOver
	}
}

// LockAlpha wraps f so the destination alpha is preserved. The color that f
// produces is re-premultiplied with the original destination alpha, so fully
// transparent pixels stay transparent.
func LockAlpha(f Func) Func {
	return func(dst, src color.RGBA, mask uint8) color.RGBA {
		if dst.A == 0 {
			return dst
		}
		r := f(dst, src, mask)
		if r.A == 0 {
			return dst
		}
		if r.A == dst.A {
			return r
		}
		return color.RGBA{
			R: rescale(r.R, r.A, dst.A),
			G: rescale(r.G, r.A, dst.A),
			B: rescale(r.B, r.A, dst.A),
			A: dst.A,
		}
	}
}

// rescale converts a channel premultiplied by from into one premultiplied by to.
func rescale(c, from, to byte) byte {
	v := (int(c)*int(to) + int(from)/2) / int(from)
	if v > int(to) {
		v = int(to)
	}
	return byte(v)
}
