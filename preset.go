package brush

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
)

// Preset is a named set of brush settings.
type Preset struct {
	Name     string   `toml:"name"`
	Settings Settings `toml:"settings"`
}

type presetFile struct {
	Presets []Preset `toml:"preset"`
}

// PresetBook is a collection of named presets. Names are compared with
// Unicode case folding, so "Ink" and "INK" name the same preset.
// A PresetBook is safe for concurrent use.
type PresetBook struct {
	mu      sync.RWMutex
	fold    cases.Caser
	presets map[string]Preset
}

// NewPresetBook returns an empty preset book.
func NewPresetBook() *PresetBook {
	return &PresetBook{fold: cases.Fold(), presets: make(map[string]Preset)}
}

func (b *PresetBook) key(name string) string {
	// A Caser keeps state between calls.
	return b.fold.String(name)
}

// Put stores settings under name, replacing any preset with the same
// folded name. The stored name keeps the spelling of the latest Put.
func (b *PresetBook) Put(name string, s Settings) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presets[b.key(name)] = Preset{Name: name, Settings: s.Clone()}
}

// Get returns the settings stored under name.
func (b *PresetBook) Get(name string) (Settings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.presets[b.key(name)]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return p.Settings.Clone(), nil
}

// Delete removes the preset stored under name.
func (b *PresetBook) Delete(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := b.key(name)
	if _, ok := b.presets[k]; !ok {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	delete(b.presets, k)
	return nil
}

// Names returns the preset names in folded order.
func (b *PresetBook) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	sorted := b.sortedLocked()
	names := make([]string, len(sorted))
	for i, p := range sorted {
		names[i] = p.Name
	}
	return names
}

// sortedLocked returns the presets ordered by folded name.
func (b *PresetBook) sortedLocked() []Preset {
	keys := make([]string, 0, len(b.presets))
	for k := range b.presets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]Preset, len(keys))
	for i, k := range keys {
		out[i] = b.presets[k]
	}
	return out
}

// Len returns the number of presets.
func (b *PresetBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.presets)
}

// LoadPresets reads a TOML preset file. Settings are clamped to their valid
// ranges. Keys the Settings type does not know are rejected.
func LoadPresets(path string) (*PresetBook, error) {
	var f presetFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("brush: load presets: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("brush: load presets: unknown key %q", undecoded[0].String())
	}

	book := NewPresetBook()
	for _, p := range f.Presets {
		for field := range p.Settings.Pressure {
			if !field.Valid() {
				return nil, fmt.Errorf("brush: load presets: preset %q: %w", p.Name, unknownField(field))
			}
		}
		p.Settings.Clamp()
		book.Put(p.Name, p.Settings)
	}
	Logger().Info("brush: presets loaded", "path", path, "count", book.Len())
	return book, nil
}

// SavePresets writes the book to a TOML file, replacing it atomically.
func (b *PresetBook) SavePresets(path string) (err error) {
	b.mu.RLock()
	f := presetFile{Presets: b.sortedLocked()}
	b.mu.RUnlock()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".presets-*.toml")
	if err != nil {
		return fmt.Errorf("brush: save presets: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if err := toml.NewEncoder(tmp).Encode(f); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("brush: save presets: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("brush: save presets: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("brush: save presets: %w", err)
	}
	Logger().Info("brush: presets saved", "path", path, "count", len(f.Presets))
	return nil
}

// LoadPresetsOrEmpty is LoadPresets that treats a missing file as an empty book.
func LoadPresetsOrEmpty(path string) (*PresetBook, error) {
	book, err := LoadPresets(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewPresetBook(), nil
	}
	return book, err
}
