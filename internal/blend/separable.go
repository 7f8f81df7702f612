package blend

import (
	"image/color"
	"math"
)

// channelFunc is a separable blend function B(Cb, Cs) over straight 0-255
// channel values.
type channelFunc func(cb, cs int) int

// separable builds a Func from a channel blend function using the W3C
// general formula on premultiplied values:
//
//	co = cs*(1-ab) + cb*(1-as) + as*ab*B(Cb, Cs)
//	ao = as + ab*(1-as)
//
// where as is the source alpha scaled by the mask.
func separable(b channelFunc) Func {
	return func(dst, src color.RGBA, mask uint8) color.RGBA {
		as := (int(src.A)*int(mask) + 127) / 255
		if as == 0 {
			return dst
		}
		ab := int(dst.A)
		ao := as + (ab*(255-as)+127)/255

		ch := func(cbP, csFull uint8) uint8 {
			csP := (int(csFull)*int(mask) + 127) / 255
			cs := unpremul(int(csFull), int(src.A))
			cb := unpremul(int(cbP), ab)
			mixed := b(cb, cs)
			if mixed < 0 {
				mixed = 0
			} else if mixed > 255 {
				mixed = 255
			}
			v := (int(cbP)*(255-as) + csP*(255-ab) + (as*ab*mixed+127)/255 + 127) / 255
			if v > ao {
				v = ao
			}
			return clamp255(v)
		}

		return color.RGBA{
			R: ch(dst.R, src.R),
			G: ch(dst.G, src.G),
			B: ch(dst.B, src.B),
			A: clamp255(ao),
		}
	}
}

// unpremul recovers the straight channel value from a premultiplied one.
func unpremul(c, a int) int {
	if a == 0 {
		return 0
	}
	if a == 255 {
		return c
	}
	v := (c*255 + a/2) / a
	if v > 255 {
		return 255
	}
	return v
}

func multiply(cb, cs int) int {
	return (cb*cs + 127) / 255
}

func screen(cb, cs int) int {
	return cb + cs - multiply(cb, cs)
}

func additive(cb, cs int) int {
	return min(255, cb+cs)
}

func colorBurn(cb, cs int) int {
	switch {
	case cb == 255:
		return 255
	case cs == 0:
		return 0
	}
	return 255 - min(255, (255-cb)*255/cs)
}

func colorDodge(cb, cs int) int {
	switch {
	case cb == 0:
		return 0
	case cs == 255:
		return 255
	}
	return min(255, cb*255/(255-cs))
}

func reflect(cb, cs int) int {
	if cs == 255 {
		return 255
	}
	return min(255, cb*cb/(255-cs))
}

// glow is reflect with the layers swapped.
func glow(cb, cs int) int {
	return reflect(cs, cb)
}

func hardLight(cb, cs int) int {
	if cs <= 127 {
		return multiply(cb, 2*cs)
	}
	return screen(cb, 2*cs-255)
}

// overlay is hard-light with the layers swapped.
func overlay(cb, cs int) int {
	return hardLight(cs, cb)
}

func softLight(cb, cs int) int {
	b := float64(cb) / 255
	s := float64(cs) / 255
	var r float64
	if s <= 0.5 {
		r = b - (1-2*s)*b*(1-b)
	} else {
		var d float64
		if b <= 0.25 {
			d = ((16*b-12)*b + 4) * b
		} else {
			d = math.Sqrt(b)
		}
		r = b + (2*s-1)*(d-b)
	}
	return int(math.Round(r * 255))
}

func difference(cb, cs int) int {
	if cb > cs {
		return cb - cs
	}
	return cs - cb
}

func negation(cb, cs int) int {
	d := 255 - cb - cs
	if d < 0 {
		d = -d
	}
	return 255 - d
}

func lighten(cb, cs int) int {
	return max(cb, cs)
}

func darken(cb, cs int) int {
	return min(cb, cs)
}

func exclusion(cb, cs int) int {
	return cb + cs - 2*multiply(cb, cs)
}

func xor(cb, cs int) int {
	return cb ^ cs
}
