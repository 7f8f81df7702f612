package blend

// div255Exact divides x by 255 exactly without using division
// (Alvy Ray Smith's formula).
func div255Exact(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255Exact multiplies two bytes and divides by 255 exactly.
func mulDiv255Exact(a, b byte) byte {
	return byte(div255Exact(uint16(a) * uint16(b)))
}

// clamp255 clamps an int to byte range [0, 255].
func clamp255(x int) byte {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return byte(x)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	return clamp255(int(a) + int(b))
}

// lerp255 moves a toward b by t/255, rounding to nearest.
// lerp255(a, a, t) == a for every t.
func lerp255(a, b, t byte) byte {
	d := (int(b) - int(a)) * int(t)
	if d >= 0 {
		return byte(int(a) + (d+127)/255)
	}
	return byte(int(a) - (-d+127)/255)
}
