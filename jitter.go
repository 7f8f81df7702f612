package brush

import (
	"math"
	"math/rand/v2"
)

// Stamp is one placement of the brush image on the canvas.
type Stamp struct {
	Pos       Point   // canvas space, stamp center
	Size      float64 // px
	Rotation  float64 // degrees
	Alpha     float64 // 0..255
	Color     Color
	Influence float64 // recolor strength, percent
	FlipX     bool
	FlipY     bool
}

// ShiftState holds the oscillation direction of the shifted settings.
// It lives with the session, next to the live settings it drives.
type ShiftState struct {
	SizeDown  bool
	AlphaDown bool
}

// Jitterer randomizes stamps and advances the per-stamp shift.
type Jitterer struct {
	rng *rand.Rand
}

// NewJitterer returns a Jitterer drawing from src. A nil src uses a randomly
// seeded PCG source.
func NewJitterer(src rand.Source) *Jitterer {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Jitterer{rng: rand.New(src)}
}

// jitter returns base - randMin + randMax, where randMin and randMax are
// uniform integers in [0, lo] and [0, hi]. Fractional bounds are floored.
func (j *Jitterer) jitter(base, lo, hi float64) float64 {
	if lo > 0 {
		base -= float64(j.draw(lo))
	}
	if hi > 0 {
		base += float64(j.draw(hi))
	}
	return base
}

// draw returns a uniform integer in [0, bound].
func (j *Jitterer) draw(bound float64) int {
	return j.rng.IntN(int(math.Min(bound, math.MaxInt32)) + 1)
}

// spread returns a uniform integer in [-bound, bound].
func (j *Jitterer) spread(bound float64) float64 {
	d := int(math.Min(bound, math.MaxInt32/2))
	return float64(j.rng.IntN(2*d+1) - d)
}

// Apply builds the stamp for pos from the live settings at the given
// pressure ratio, then advances the shift of live for the next stamp.
// canvas is the canvas size, used to scale the position jitter.
func (j *Jitterer) Apply(live *Settings, shift *ShiftState, ratio float64, pos, canvas Point) Stamp {
	r := func(f Field) float64 { return live.Resolved(f, ratio) }

	st := Stamp{
		Pos:       pos,
		Size:      fieldTable[FieldSize].clamp(j.jitter(r(FieldSize), r(FieldSizeJitterMin), r(FieldSizeJitterMax))),
		Rotation:  wrapDegrees(j.jitter(r(FieldRotation), r(FieldRotationJitterLeft), r(FieldRotationJitterRight))),
		Alpha:     fieldTable[FieldAlpha].clamp(j.jitter(r(FieldAlpha), r(FieldAlphaJitter), 0)),
		Influence: r(FieldColorInfluence),
	}

	if hs := r(FieldHorizontalShift); hs > 0 {
		st.Pos.X += j.spread(hs / 100 * canvas.X / 2)
	}
	if vs := r(FieldVerticalShift); vs > 0 {
		st.Pos.Y += j.spread(vs / 100 * canvas.Y / 2)
	}

	st.Color = j.color(live.Color, r)
	j.shift(live, shift)
	return st
}

// color applies the RGB channel jitter, then the HSV jitter when any HSV
// bound is set.
func (j *Jitterer) color(c Color, r func(Field) float64) Color {
	channel := func(v uint8, lo, hi Field) uint8 {
		return clampByte(j.jitter(float64(v), r(lo)/100*255, r(hi)/100*255))
	}
	out := Color{
		R: channel(c.R, FieldRedJitterMin, FieldRedJitterMax),
		G: channel(c.G, FieldGreenJitterMin, FieldGreenJitterMax),
		B: channel(c.B, FieldBlueJitterMin, FieldBlueJitterMax),
		A: c.A,
	}

	hLo, hHi := r(FieldHueJitterMin), r(FieldHueJitterMax)
	sLo, sHi := r(FieldSaturationJitterMin), r(FieldSaturationJitterMax)
	vLo, vHi := r(FieldValueJitterMin), r(FieldValueJitterMax)
	if hLo == 0 && hHi == 0 && sLo == 0 && sHi == 0 && vLo == 0 && vHi == 0 {
		return out
	}
	h, s, v := out.HSV()
	// Saturation and value jitter in whole percent.
	h = j.jitter(h, hLo/100*360, hHi/100*360)
	s = j.jitter(s*100, sLo, sHi) / 100
	v = j.jitter(v*100, vLo, vHi) / 100
	return FromHSV(h, s, v, out.A)
}

// shift drifts size and alpha back and forth between their bounds and
// rotates the brush, wrapping at ±180 degrees.
func (j *Jitterer) shift(live *Settings, st *ShiftState) {
	if live.SizeShift > 0 {
		live.Size, st.SizeDown = oscillate(live.Size, live.SizeShift, FieldSize, st.SizeDown)
	}
	if live.AlphaShift > 0 {
		live.Alpha, st.AlphaDown = oscillate(live.Alpha, live.AlphaShift, FieldAlpha, st.AlphaDown)
	}
	if live.RotationShift != 0 {
		live.Rotation = wrapDegrees(live.Rotation + live.RotationShift)
	}
}

func oscillate(v, delta float64, f Field, down bool) (float64, bool) {
	lo, hi := f.Range()
	if down {
		v -= delta
		if v <= lo {
			return lo, false
		}
		return v, true
	}
	v += delta
	if v >= hi {
		return hi, true
	}
	return v, false
}

// wrapDegrees maps d into [-180, 180).
func wrapDegrees(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
