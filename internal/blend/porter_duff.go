package blend

import "image/color"

// scale multiplies every channel of c by mask/255.
func scale(c color.RGBA, mask uint8) color.RGBA {
	if mask == 255 {
		return c
	}
	return color.RGBA{
		R: mulDiv255Exact(c.R, mask),
		G: mulDiv255Exact(c.G, mask),
		B: mulDiv255Exact(c.B, mask),
		A: mulDiv255Exact(c.A, mask),
	}
}

// sourceOver: S + D*(1-Sa), with S scaled by the mask.
func sourceOver(dst, src color.RGBA, mask uint8) color.RGBA {
	s := scale(src, mask)
	if s.A == 0 {
		return dst
	}
	inv := 255 - s.A
	return color.RGBA{
		R: addClamp(s.R, mulDiv255Exact(dst.R, inv)),
		G: addClamp(s.G, mulDiv255Exact(dst.G, inv)),
		B: addClamp(s.B, mulDiv255Exact(dst.B, inv)),
		A: addClamp(s.A, mulDiv255Exact(dst.A, inv)),
	}
}

// overwrite replaces the destination with S scaled by the mask wherever the
// mask is non-zero.
func overwrite(dst, src color.RGBA, mask uint8) color.RGBA {
	if mask == 0 {
		return dst
	}
	return scale(src, mask)
}

// restore moves every channel of the destination toward src by mask/255.
// A full mask yields src exactly; a destination equal to src never changes.
func restore(dst, src color.RGBA, mask uint8) color.RGBA {
	return color.RGBA{
		R: lerp255(dst.R, src.R, mask),
		G: lerp255(dst.G, src.G, mask),
		B: lerp255(dst.B, src.B, mask),
		A: lerp255(dst.A, src.A, mask),
	}
}
