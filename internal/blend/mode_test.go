package blend

import (
	"errors"
	"image/color"
	"testing"
)

func TestModeNames(t *testing.T) {
	for _, m := range Modes() {
		t.Run(m.String(), func(t *testing.T) {
			text, err := m.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText() error = %v", err)
			}
			var got Mode
			if err := got.UnmarshalText(text); err != nil {
				t.Fatalf("UnmarshalText(%q) error = %v", text, err)
			}
			if got != m {
				t.Errorf("round trip of %v = %v", m, got)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"normal", Normal, false},
		{"Multiply", Multiply, false},
		{"COLOR_DODGE", ColorDodge, false},
		{"soft light", SoftLight, false},
		{" hard-light ", HardLight, false},
		{"restore", Normal, true},
		{"dissolve", Normal, true},
		{"", Normal, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMode) {
					t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseMode(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestRestoreNotMarshaled(t *testing.T) {
	if _, err := Restore.MarshalText(); err == nil {
		t.Error("Restore.MarshalText() succeeded, want error")
	}
}

func TestZeroMaskKeepsDestination(t *testing.T) {
	dst := color.RGBA{R: 40, G: 80, B: 120, A: 200}
	src := color.RGBA{R: 255, G: 10, B: 90, A: 255}
	for m := Normal; m <= Restore; m++ {
		t.Run(m.String(), func(t *testing.T) {
			if got := m.Func()(dst, src, 0); got != dst {
				t.Errorf("%v with mask 0 = %v, want %v", m, got, dst)
			}
		})
	}
}

func TestTransparentDestinationTakesSource(t *testing.T) {
	src := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for _, m := range Modes() {
		t.Run(m.String(), func(t *testing.T) {
			got := m.Func()(color.RGBA{}, src, 255)
			if got != src {
				t.Errorf("%v over transparent = %v, want %v", m, got, src)
			}
		})
	}
}

func TestSourceOver(t *testing.T) {
	tests := []struct {
		name string
		dst  color.RGBA
		src  color.RGBA
		mask uint8
		want color.RGBA
	}{
		{"opaque src", color.RGBA{10, 20, 30, 255}, color.RGBA{255, 0, 0, 255}, 255, color.RGBA{255, 0, 0, 255}},
		{"transparent src", color.RGBA{10, 20, 30, 255}, color.RGBA{}, 255, color.RGBA{10, 20, 30, 255}},
		{"half mask on black", color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255}, 128, color.RGBA{128, 128, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normal.Func()(tt.dst, tt.src, tt.mask)
			if !colorsClose(got, tt.want, 1) {
				t.Errorf("sourceOver = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverwrite(t *testing.T) {
	dst := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	src := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	if got := Overwrite.Func()(dst, src, 255); got != src {
		t.Errorf("overwrite full mask = %v, want %v", got, src)
	}
	got := Overwrite.Func()(dst, src, 51)
	want := color.RGBA{R: 0, G: 0, B: 51, A: 51}
	if got != want {
		t.Errorf("overwrite mask 51 = %v, want %v", got, want)
	}
}

func TestRestoreIdempotent(t *testing.T) {
	original := color.RGBA{R: 12, G: 200, B: 90, A: 255}
	painted := color.RGBA{R: 250, G: 3, B: 0, A: 255}
	f := Restore.Func()

	once := f(painted, original, 255)
	if once != original {
		t.Fatalf("restore with full mask = %v, want original %v", once, original)
	}
	if twice := f(once, original, 255); twice != original {
		t.Errorf("second restore = %v, want %v", twice, original)
	}

	// Partial masks converge monotonically and never overshoot.
	cur := painted
	for i := 0; i < 64; i++ {
		next := f(cur, original, 100)
		if dist(next, original) > dist(cur, original) {
			t.Fatalf("step %d moved away from original: %v -> %v", i, cur, next)
		}
		cur = next
	}
	for mask := 0; mask < 256; mask++ {
		if got := f(original, original, uint8(mask)); got != original {
			t.Fatalf("restore of original with mask %d = %v", mask, got)
		}
	}
}

func TestSeparableOnOpaque(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	gray := color.RGBA{128, 128, 128, 255}
	red := color.RGBA{255, 0, 0, 255}

	tests := []struct {
		mode     Mode
		dst, src color.RGBA
		want     color.RGBA
	}{
		{Multiply, white, red, red},
		{Multiply, black, red, black},
		{Screen, black, red, red},
		{Screen, white, red, white},
		{Additive, gray, gray, white},
		{Lighten, gray, red, color.RGBA{255, 128, 128, 255}},
		{Darken, gray, red, color.RGBA{128, 0, 0, 255}},
		{Difference, white, red, color.RGBA{0, 255, 255, 255}},
		{Exclusion, white, red, color.RGBA{0, 255, 255, 255}},
		{Negation, white, red, color.RGBA{0, 255, 255, 255}},
		{Negation, black, gray, gray},
		{Xor, white, red, color.RGBA{0, 255, 255, 255}},
		{ColorDodge, black, red, black},
		{ColorBurn, white, red, white},
		{Reflect, black, gray, black},
		{Glow, gray, black, black},
		{HardLight, gray, white, white},
		{Overlay, white, gray, white},
		{SoftLight, gray, gray, gray},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := tt.mode.Func()(tt.dst, tt.src, 255)
			if !colorsClose(got, tt.want, 1) {
				t.Errorf("%v(%v, %v) = %v, want %v", tt.mode, tt.dst, tt.src, got, tt.want)
			}
		})
	}
}

func TestSeparablePremultipliedValid(t *testing.T) {
	dst := color.RGBA{R: 60, G: 30, B: 90, A: 120}
	src := color.RGBA{R: 255, G: 128, B: 0, A: 255}
	for _, m := range Modes() {
		for _, mask := range []uint8{1, 64, 200, 255} {
			got := m.Func()(dst, src, mask)
			if got.R > got.A || got.G > got.A || got.B > got.A {
				t.Errorf("%v mask %d produced invalid premultiplied %v", m, mask, got)
			}
			if m != Overwrite && got.A < dst.A {
				t.Errorf("%v mask %d lowered alpha %d -> %d", m, mask, dst.A, got.A)
			}
		}
	}
}

func TestLockAlpha(t *testing.T) {
	src := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	tests := []struct {
		name string
		dst  color.RGBA
	}{
		{"transparent", color.RGBA{}},
		{"half", color.RGBA{R: 0, G: 0, B: 128, A: 128}},
		{"opaque", color.RGBA{R: 0, G: 255, B: 0, A: 255}},
	}
	for _, m := range []Mode{Normal, Multiply, Overwrite} {
		f := LockAlpha(m.Func())
		for _, tt := range tests {
			t.Run(m.String()+"/"+tt.name, func(t *testing.T) {
				got := f(tt.dst, src, 255)
				if got.A != tt.dst.A {
					t.Errorf("alpha = %d, want %d", got.A, tt.dst.A)
				}
				if got.R > got.A || got.G > got.A || got.B > got.A {
					t.Errorf("invalid premultiplied result %v", got)
				}
			})
		}
	}
}

func colorsClose(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v >= -tol && v <= tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func dist(a, b color.RGBA) int {
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(int(a.R)-int(b.R)) + abs(int(a.G)-int(b.G)) + abs(int(a.B)-int(b.B)) + abs(int(a.A)-int(b.A))
}
