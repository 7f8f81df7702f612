package brush

import (
	"errors"
	"testing"
)

func TestFieldTableComplete(t *testing.T) {
	if len(fieldOrder) != len(fieldTable) {
		t.Fatalf("fieldOrder has %d entries, fieldTable %d", len(fieldOrder), len(fieldTable))
	}
	seen := map[*float64]Field{}
	var s Settings
	for _, f := range Fields() {
		info, ok := fieldTable[f]
		if !ok {
			t.Fatalf("%q missing from fieldTable", f)
		}
		if info.min > info.max {
			t.Errorf("%q range [%v, %v] inverted", f, info.min, info.max)
		}
		p := info.ptr(&s)
		if other, dup := seen[p]; dup {
			t.Errorf("%q and %q share a struct field", f, other)
		}
		seen[p] = f
	}
}

func TestSettings_GetSetAdjust(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		name  string
		field Field
		set   float64
		want  float64
	}{
		{"size in range", FieldSize, 64, 64},
		{"size below min", FieldSize, -5, 1},
		{"size above max", FieldSize, 5000, 1000},
		{"alpha", FieldAlpha, 300, 255},
		{"rotation", FieldRotation, -200, -180},
		{"density", FieldDensity, 12.5, 12.5},
		{"hue jitter", FieldHueJitterMax, 150, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Set(tt.field, tt.set); err != nil {
				t.Fatal(err)
			}
			got, err := s.Get(tt.field)
			if err != nil || got != tt.want {
				t.Errorf("Get(%q) = %v, %v, want %v", tt.field, got, err, tt.want)
			}
		})
	}

	_ = s.Set(FieldSize, 10)
	if err := s.Adjust(FieldSize, 5); err != nil || s.Size != 15 {
		t.Errorf("Adjust(+5) size = %v, %v, want 15", s.Size, err)
	}
	_ = s.Adjust(FieldSize, -100)
	if s.Size != 1 {
		t.Errorf("Adjust(-100) size = %v, want 1", s.Size)
	}

	if _, err := s.Get("bogus"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Get(bogus) error = %v, want ErrUnknownField", err)
	}
	if err := s.Set("bogus", 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Set(bogus) error = %v, want ErrUnknownField", err)
	}
	if err := s.Adjust("bogus", 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Adjust(bogus) error = %v, want ErrUnknownField", err)
	}
}

func TestSettings_Resolved(t *testing.T) {
	s := DefaultSettings()
	s.Size = 50
	if err := s.SetMapping(FieldSize, Mapping{Method: Add, Delta: 100}); err != nil {
		t.Fatal(err)
	}

	if got := s.Resolved(FieldSize, 0); got != 50 {
		t.Errorf("Resolved(size, 0) = %v, want 50", got)
	}
	if got := s.Resolved(FieldSize, 1); got != 150 {
		t.Errorf("Resolved(size, 1) = %v, want 150", got)
	}

	// Clamped to the field range.
	_ = s.SetMapping(FieldAlpha, Mapping{Method: Add, Delta: 500})
	if got := s.Resolved(FieldAlpha, 1); got != 255 {
		t.Errorf("Resolved(alpha, 1) = %v, want 255", got)
	}

	// Percent methods use the field maximum as the range.
	_ = s.SetMapping(FieldDensity, Mapping{Method: MatchPercent, Delta: 50})
	s.Density = 0
	if got := s.Resolved(FieldDensity, 1); got != 25 {
		t.Errorf("Resolved(density, 1) = %v, want 25", got)
	}

	// Shift deltas ignore pressure.
	s.SizeShift = 3
	_ = s.SetMapping(FieldSizeShift, Mapping{Method: Add, Delta: 50})
	if _, ok := s.Pressure[FieldSizeShift]; ok {
		t.Error("mapping stored for a field that is not pressure-sensitive")
	}
	if got := s.Resolved(FieldSizeShift, 1); got != 3 {
		t.Errorf("Resolved(size_shift, 1) = %v, want 3", got)
	}

	// DoNothing removes the mapping.
	_ = s.SetMapping(FieldSize, Mapping{})
	if _, ok := s.Pressure[FieldSize]; ok {
		t.Error("DoNothing mapping still stored")
	}
	if got := s.Resolved("bogus", 1); got != 0 {
		t.Errorf("Resolved(bogus) = %v, want 0", got)
	}
}

func TestSettings_CloneAndClamp(t *testing.T) {
	s := DefaultSettings()
	_ = s.SetMapping(FieldSize, Mapping{Method: Add, Delta: 1})
	dup := s.Clone()
	dup.Pressure[FieldSize] = Mapping{Method: MatchValue, Delta: 9}
	if s.Pressure[FieldSize].Method != Add {
		t.Error("Clone shares the pressure map")
	}

	s.Size, s.Alpha, s.Density = 0, -1, 99
	s.Clamp()
	if s.Size != 1 || s.Alpha != 0 || s.Density != 50 {
		t.Errorf("Clamp() = size %v alpha %v density %v", s.Size, s.Alpha, s.Density)
	}
}

func TestEnumText(t *testing.T) {
	var sm SymmetryMode
	if err := sm.UnmarshalText([]byte("Set_Points")); err != nil || sm != SymmetrySetPoints {
		t.Errorf("UnmarshalText(Set_Points) = %v, %v", sm, err)
	}
	if err := sm.UnmarshalText([]byte("star13")); !errors.Is(err, ErrUnknownName) {
		t.Errorf("UnmarshalText(star13) error = %v, want ErrUnknownName", err)
	}

	var sp Smoothing
	if err := sp.UnmarshalText([]byte("JAGGED")); err != nil || sp != SmoothJagged {
		t.Errorf("UnmarshalText(JAGGED) = %v, %v", sp, err)
	}

	var tool Tool
	if err := tool.UnmarshalText([]byte("color picker")); err != nil || tool != ToolColorPicker {
		t.Errorf("UnmarshalText(color picker) = %v, %v", tool, err)
	}

	var b Button
	if err := b.UnmarshalText([]byte("middle")); err != nil || b != ButtonMiddle {
		t.Errorf("UnmarshalText(middle) = %v, %v", b, err)
	}

	if got := Tool(42).String(); got != "Tool(42)" {
		t.Errorf("Tool(42).String() = %q", got)
	}
}

func TestSymmetryArms(t *testing.T) {
	for n := 2; n <= 12; n++ {
		m, ok := StarSymmetry(n)
		if !ok {
			t.Fatalf("StarSymmetry(%d) not ok", n)
		}
		if m.Arms() != n {
			t.Errorf("StarSymmetry(%d).Arms() = %d", n, m.Arms())
		}
	}
	for _, n := range []int{0, 1, 13} {
		if _, ok := StarSymmetry(n); ok {
			t.Errorf("StarSymmetry(%d) ok", n)
		}
	}
	for _, m := range []SymmetryMode{SymmetryNone, SymmetryHorizontal, SymmetryVertical, SymmetrySetPoints} {
		if m.Arms() != 0 {
			t.Errorf("%v.Arms() = %d, want 0", m, m.Arms())
		}
	}
}
