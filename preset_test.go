package brush

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPresetBook_CaseFolding(t *testing.T) {
	b := NewPresetBook()
	ink := DefaultSettings()
	ink.Size = 3
	b.Put("Ink", ink)

	for _, name := range []string{"ink", "INK", "iNk"} {
		got, err := b.Get(name)
		if err != nil || got.Size != 3 {
			t.Errorf("Get(%q) = %v, %v", name, got.Size, err)
		}
	}

	// Full Unicode folding, not just ASCII.
	b.Put("Straße", DefaultSettings())
	if _, err := b.Get("STRASSE"); err != nil {
		t.Errorf("Get(STRASSE) error = %v", err)
	}

	b.Put("INK", DefaultSettings())
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if got := b.Names(); len(got) != 2 || got[0] != "INK" {
		t.Errorf("Names() = %v, want [INK Straße]", got)
	}

	if err := b.Delete("ink"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Get("Ink"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrPresetNotFound", err)
	}
	if err := b.Delete("ink"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("second Delete error = %v, want ErrPresetNotFound", err)
	}
}

func TestPresetBook_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")

	pencil := DefaultSettings()
	pencil.Size = 2
	pencil.Color = RGB(0x33, 0x33, 0x33)
	pencil.Smoothing = SmoothJagged
	pencil.AutoDensity = true

	marker := DefaultSettings()
	marker.Size = 40
	marker.Blend = BlendMultiply
	marker.Symmetry = SymmetryStar6
	marker.HueJitterMax = 12.5
	if err := marker.SetMapping(FieldSize, Mapping{Method: AddPercent, Delta: 10}); err != nil {
		t.Fatal(err)
	}

	b := NewPresetBook()
	b.Put("Pencil", pencil)
	b.Put("Marker", marker)
	if err := b.SavePresets(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d presets, want 2", loaded.Len())
	}

	got, err := loaded.Get("marker")
	if err != nil {
		t.Fatal(err)
	}
	if got.Size != 40 || got.Blend != BlendMultiply || got.Symmetry != SymmetryStar6 || got.HueJitterMax != 12.5 {
		t.Errorf("marker = %+v", got)
	}
	if m := got.Mapping(FieldSize); m != (Mapping{Method: AddPercent, Delta: 10}) {
		t.Errorf("marker size mapping = %+v", m)
	}

	got, _ = loaded.Get("PENCIL")
	if got.Color != pencil.Color || got.Smoothing != SmoothJagged || !got.AutoDensity {
		t.Errorf("pencil = %+v", got)
	}
}

func TestLoadPresets_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPresets(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
	if b, err := LoadPresetsOrEmpty(filepath.Join(dir, "missing.toml")); err != nil || b.Len() != 0 {
		t.Errorf("LoadPresetsOrEmpty(missing) = %v, %v", b, err)
	}

	tests := map[string]string{
		"bad blend":     "[[preset]]\nname = \"x\"\n[preset.settings]\nblend = \"dissolve\"\n",
		"unknown key":   "[[preset]]\nname = \"x\"\n[preset.settings]\nsparkle = 3\n",
		"unknown field": "[[preset]]\nname = \"x\"\n[preset.settings.pressure.sparkle]\nmethod = \"add\"\ndelta = 1.0\n",
		"bad color":     "[[preset]]\nname = \"x\"\n[preset.settings]\ncolor = \"#zz\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name+".toml")
			if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadPresets(p); err == nil {
				t.Error("LoadPresets succeeded")
			}
		})
	}
}

func TestLoadPresets_Clamps(t *testing.T) {
	p := filepath.Join(t.TempDir(), "p.toml")
	body := "[[preset]]\nname = \"huge\"\n[preset.settings]\nsize = 5000.0\nalpha = -3.0\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	b, err := LoadPresets(p)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := b.Get("huge")
	if got.Size != 1000 || got.Alpha != 0 {
		t.Errorf("clamped size %v alpha %v, want 1000 0", got.Size, got.Alpha)
	}
}
