package brush

import (
	"math"
	"testing"
)

func TestMaxScaleFactor(t *testing.T) {
	const epsilon = 1e-10

	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 1.0},
		{"pure translation", Translate(10, 20), 1.0},
		{"uniform scale 2", Scale(2, 2), 2.0},
		{"non-uniform scale 3,1", Scale(3, 1), 3.0},
		{"mirror x", Scale(-2, 1), 2.0},
		{"mirror both", Scale(-2, -3), 3.0},
		{"zero scale both", Scale(0, 0), 0.0},
		{"rotation 45deg", Rotate(45), 1.0},
		{"rotation arbitrary", Rotate(71.3), 1.0},
		{"scale 2 then rotate 45deg", Scale(2, 2).Multiply(Rotate(45)), 2.0},
		{"scale 1,4 then rotate 30deg", Scale(1, 4).Multiply(Rotate(30)), 4.0},
		{"scale + translate", Scale(3, 2).Multiply(Translate(100, 200)), 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.MaxScaleFactor()
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Matrix%+v.MaxScaleFactor() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestRotateDegrees(t *testing.T) {
	tests := []struct {
		deg  float64
		in   Point
		want Point
	}{
		{0, Pt(1, 0), Pt(1, 0)},
		{90, Pt(1, 0), Pt(0, 1)},
		{180, Pt(1, 0), Pt(-1, 0)},
		{-90, Pt(1, 0), Pt(0, -1)},
		{45, Pt(1, 1), Pt(0, math.Sqrt2)},
	}
	for _, tt := range tests {
		got := Rotate(tt.deg).TransformPoint(tt.in)
		if !pointsClose(got, tt.want, 1e-12) {
			t.Errorf("Rotate(%v).TransformPoint(%v) = %v, want %v", tt.deg, tt.in, got, tt.want)
		}
	}
}

func TestRotateAbout(t *testing.T) {
	m := RotateAbout(90, Pt(10, 10))
	got := m.TransformPoint(Pt(20, 10))
	if !pointsClose(got, Pt(10, 20), 1e-12) {
		t.Errorf("RotateAbout(90, (10,10)) maps (20,10) to %v, want (10,20)", got)
	}
	if pivot := m.TransformPoint(Pt(10, 10)); !pointsClose(pivot, Pt(10, 10), 1e-12) {
		t.Errorf("pivot moved to %v", pivot)
	}
}

func TestInvert(t *testing.T) {
	matrices := []Matrix{
		Identity(),
		Translate(5, -10),
		Scale(2, 0.5),
		Rotate(33),
		Translate(40, 30).Multiply(Scale(1.5, 1.5)).Multiply(RotateAbout(-72, Pt(100, 50))),
	}
	samples := []Point{Pt(0, 0), Pt(1, 2), Pt(-300, 250), Pt(1024, 768)}

	for _, m := range matrices {
		inv, ok := m.Invert()
		if !ok {
			t.Fatalf("Matrix%+v reported as singular", m)
		}
		for _, p := range samples {
			got := inv.TransformPoint(m.TransformPoint(p))
			if !pointsClose(got, p, 1e-9) {
				t.Errorf("Matrix%+v round trip of %v = %v", m, p, got)
			}
		}
	}
}

func TestInvertSingular(t *testing.T) {
	inv, ok := Scale(0, 1).Invert()
	if ok {
		t.Fatal("Scale(0,1).Invert() reported invertible")
	}
	if !inv.IsIdentity() {
		t.Errorf("singular Invert() = %+v, want identity", inv)
	}
}

func TestAff3Layout(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	a := m.Aff3()
	for i, want := range []float64{1, 2, 3, 4, 5, 6} {
		if a[i] != want {
			t.Errorf("Aff3()[%d] = %v, want %v", i, a[i], want)
		}
	}
}

func pointsClose(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}
