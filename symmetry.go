package brush

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Symmetry replicates stamps around an origin.
type Symmetry struct {
	Mode    SymmetryMode
	Origin  Point
	Offsets []Point // SetPoints mode, view-aligned offsets from the stroke point
}

// Placement is one position produced by symmetry expansion.
type Placement struct {
	Pos   Point
	FlipX bool
	FlipY bool
}

// Apply moves st to the placement. A single mirror flip also mirrors the
// stamp rotation across the view-aligned axis. Every other copy keeps the
// size, rotation and color of st.
func (pl Placement) Apply(st Stamp, canvasRotation float64) Stamp {
	st.Pos = pl.Pos
	if pl.FlipX != pl.FlipY {
		st.Rotation = wrapDegrees(-st.Rotation - 2*canvasRotation)
	}
	st.FlipX = st.FlipX != pl.FlipX
	st.FlipY = st.FlipY != pl.FlipY
	return st
}

func vec(p Point) r2.Vec   { return r2.Vec{X: p.X, Y: p.Y} }
func point(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Expand returns the positions a stamp at p is replicated to.
// canvasRotation is the view rotation in degrees; mirror axes and set-point
// offsets follow the screen, not the canvas. The first placement is always p.
func (s Symmetry) Expand(p Point, canvasRotation float64) []Placement {
	out := []Placement{{Pos: p}}
	o := vec(s.Origin)
	theta := radians(canvasRotation)

	switch s.Mode {
	case SymmetryHorizontal, SymmetryVertical:
		// Into the view-aligned frame, reflect, and back.
		v := r2.Sub(r2.Rotate(vec(p), theta, o), o)
		if s.Mode == SymmetryHorizontal {
			v.X = -v.X
		} else {
			v.Y = -v.Y
		}
		m := r2.Rotate(r2.Add(o, v), -theta, o)
		out = append(out, Placement{
			Pos:   point(m),
			FlipX: s.Mode == SymmetryHorizontal,
			FlipY: s.Mode == SymmetryVertical,
		})

	case SymmetryStar2:
		m := r2.Sub(r2.Scale(2, o), vec(p))
		out = append(out, Placement{Pos: point(m), FlipX: true, FlipY: true})

	case SymmetrySetPoints:
		for _, off := range s.Offsets {
			d := r2.Rotate(vec(off), -theta, r2.Vec{})
			out = append(out, Placement{Pos: point(r2.Add(vec(p), d))})
		}

	default:
		n := s.Mode.Arms()
		if n < 3 {
			break
		}
		step := 360 / float64(n)
		for k := 1; k < n; k++ {
			a := float64(k) * step
			out = append(out, Placement{Pos: point(r2.Rotate(vec(p), radians(a), o))})
		}
	}
	return out
}

// AddOffset records the SetPoints offset of q relative to the origin, in the
// view-aligned frame.
func (s *Symmetry) AddOffset(q Point, canvasRotation float64) {
	d := r2.Rotate(r2.Sub(vec(q), vec(s.Origin)), radians(canvasRotation), r2.Vec{})
	s.Offsets = append(s.Offsets, point(d))
}

// Clone returns a copy that does not share the offset slice.
func (s Symmetry) Clone() Symmetry {
	s.Offsets = append([]Point(nil), s.Offsets...)
	return s
}
