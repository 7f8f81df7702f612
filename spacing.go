package brush

import "math"

// DefaultMaxStampsPerSegment bounds the number of stamps one pointer move
// can produce.
const DefaultMaxStampsPerSegment = 4096

// Spacer decides where stamps go along a pointer path.
//
// It remembers the effective previous position, which advances only by whole
// steps so the remainder of a segment carries over to the next one, and the
// position of the last stamp for the minimum draw distance gate.
type Spacer struct {
	// Snap floors stamp coordinates to whole pixels.
	Snap bool
	// MaxStamps caps the stamps of one segment; 0 uses DefaultMaxStampsPerSegment.
	MaxStamps int

	prev    Point
	anchor  Point
	started bool
}

// Start begins a stroke at p and returns the position of its first stamp.
func (s *Spacer) Start(p Point) Point {
	s.prev, s.anchor, s.started = p, p, true
	return s.snap(p)
}

// Started reports whether a stroke is in progress.
func (s *Spacer) Started() bool {
	return s.started
}

// Stop ends the stroke.
func (s *Spacer) Stop() {
	s.started = false
}

// Place returns the stamp positions for a pointer move to cur.
//
// width is the resolved brush size and density the number of stamps per
// brush width. Density 0 places exactly one stamp at cur. A positive
// minDistance skips moves closer than that to the last stamp.
func (s *Spacer) Place(cur Point, width, density, minDistance float64) []Point {
	if !cur.IsFinite() {
		return nil
	}
	if !s.started {
		return []Point{s.Start(cur)}
	}
	if minDistance > 0 && cur.Distance(s.anchor) < minDistance {
		return nil
	}
	if density <= 0 || math.IsNaN(density) {
		s.prev, s.anchor = cur, cur
		return []Point{s.snap(cur)}
	}

	step := width / density
	if !(step > 0) || math.IsInf(step, 0) {
		step = 1
	}
	seg := cur.Sub(s.prev)
	dist := seg.Length()
	if dist < step {
		return nil
	}

	limit := s.MaxStamps
	if limit <= 0 {
		limit = DefaultMaxStampsPerSegment
	}
	n := int(dist / step)
	capped := n > limit
	if capped {
		n = limit
	}

	dir := seg.Mul(1 / dist)
	out := make([]Point, 0, n)
	for k := 1; k <= n; k++ {
		out = append(out, s.snap(s.prev.Add(dir.Mul(float64(k)*step))))
	}
	if capped {
		s.prev = cur
	} else {
		s.prev = s.prev.Add(dir.Mul(float64(n) * step))
	}
	s.anchor = out[len(out)-1]
	return out
}

func (s *Spacer) snap(p Point) Point {
	if s.Snap {
		return p.Floor()
	}
	return p
}

// AutoDensity returns the stamp density used for a brush of the given size
// when automatic density is enabled. Small brushes need fewer stamps per
// width to look continuous.
func AutoDensity(size float64) float64 {
	switch {
	case size <= 2:
		return math.Max(size, 1)
	case size < 6:
		return 2
	case size < 11:
		return 3
	case size < 21:
		return 5
	default:
		return 10
	}
}
