package brush

import "maps"

// Settings holds every parameter of the brush engine.
//
// Settings are plain values owned by the caller. A Session works on its own
// copy and never writes back into the caller's value.
type Settings struct {
	// Brush names the brush image looked up in the session's BrushSource.
	// An empty or unknown name selects the built-in round brush.
	Brush string `toml:"brush" yaml:"brush"`

	Size            float64 `toml:"size" yaml:"size"`                           // px
	Alpha           float64 `toml:"alpha" yaml:"alpha"`                         // 0..255
	Rotation        float64 `toml:"rotation" yaml:"rotation"`                   // degrees
	Density         float64 `toml:"density" yaml:"density"`                     // stamps per brush width, 0 = one per event
	MinDrawDistance float64 `toml:"min_draw_distance" yaml:"min_draw_distance"` // px
	Color           Color   `toml:"color" yaml:"color"`
	ColorInfluence  float64 `toml:"color_influence" yaml:"color_influence"` // percent
	AutoDensity     bool    `toml:"auto_density" yaml:"auto_density"`
	AlphaLock       bool    `toml:"alpha_lock" yaml:"alpha_lock"`

	SizeJitterMin       float64 `toml:"size_jitter_min" yaml:"size_jitter_min"`
	SizeJitterMax       float64 `toml:"size_jitter_max" yaml:"size_jitter_max"`
	RotationJitterLeft  float64 `toml:"rotation_jitter_left" yaml:"rotation_jitter_left"`
	RotationJitterRight float64 `toml:"rotation_jitter_right" yaml:"rotation_jitter_right"`
	AlphaJitter         float64 `toml:"alpha_jitter" yaml:"alpha_jitter"`
	HorizontalShift     float64 `toml:"horizontal_shift" yaml:"horizontal_shift"` // percent of canvas width
	VerticalShift       float64 `toml:"vertical_shift" yaml:"vertical_shift"`     // percent of canvas height

	RedJitterMin        float64 `toml:"red_jitter_min" yaml:"red_jitter_min"`
	RedJitterMax        float64 `toml:"red_jitter_max" yaml:"red_jitter_max"`
	GreenJitterMin      float64 `toml:"green_jitter_min" yaml:"green_jitter_min"`
	GreenJitterMax      float64 `toml:"green_jitter_max" yaml:"green_jitter_max"`
	BlueJitterMin       float64 `toml:"blue_jitter_min" yaml:"blue_jitter_min"`
	BlueJitterMax       float64 `toml:"blue_jitter_max" yaml:"blue_jitter_max"`
	HueJitterMin        float64 `toml:"hue_jitter_min" yaml:"hue_jitter_min"`
	HueJitterMax        float64 `toml:"hue_jitter_max" yaml:"hue_jitter_max"`
	SaturationJitterMin float64 `toml:"saturation_jitter_min" yaml:"saturation_jitter_min"`
	SaturationJitterMax float64 `toml:"saturation_jitter_max" yaml:"saturation_jitter_max"`
	ValueJitterMin      float64 `toml:"value_jitter_min" yaml:"value_jitter_min"`
	ValueJitterMax      float64 `toml:"value_jitter_max" yaml:"value_jitter_max"`

	SizeShift     float64 `toml:"size_shift" yaml:"size_shift"`
	RotationShift float64 `toml:"rotation_shift" yaml:"rotation_shift"`
	AlphaShift    float64 `toml:"alpha_shift" yaml:"alpha_shift"`

	Blend     BlendMode    `toml:"blend" yaml:"blend"`
	Smoothing Smoothing    `toml:"smoothing" yaml:"smoothing"`
	Symmetry  SymmetryMode `toml:"symmetry" yaml:"symmetry"`

	// Pressure maps pressure-sensitive fields to their mapping.
	// Missing entries mean DoNothing.
	Pressure map[Field]Mapping `toml:"pressure,omitempty" yaml:"pressure,omitempty"`
}

// DefaultSettings returns a 20 px opaque black round brush.
func DefaultSettings() Settings {
	return Settings{
		Size:           20,
		Alpha:          255,
		Density:        10,
		Color:          Black,
		ColorInfluence: 100,
	}
}

// Clone returns a copy of s that shares no mutable state with it.
func (s Settings) Clone() Settings {
	s.Pressure = maps.Clone(s.Pressure)
	return s
}

// Clamp limits every numeric field to its valid range.
func (s *Settings) Clamp() {
	for _, f := range fieldOrder {
		p := fieldTable[f].ptr(s)
		*p = fieldTable[f].clamp(*p)
	}
}

// Mapping returns the pressure mapping of f, DoNothing if none is set.
func (s Settings) Mapping(f Field) Mapping {
	return s.Pressure[f]
}

// SetMapping binds a pressure mapping to f. A DoNothing mapping removes the entry.
func (s *Settings) SetMapping(f Field, m Mapping) error {
	info, ok := fieldTable[f]
	if !ok {
		return unknownField(f)
	}
	if !info.pressure {
		return nil
	}
	if m.Method == DoNothing {
		delete(s.Pressure, f)
		return nil
	}
	if s.Pressure == nil {
		s.Pressure = make(map[Field]Mapping)
	}
	s.Pressure[f] = m
	return nil
}

// Resolved returns the value of f modulated by the pressure ratio and
// clamped to the field range. Unknown fields resolve to 0.
func (s Settings) Resolved(f Field, ratio float64) float64 {
	info, ok := fieldTable[f]
	if !ok {
		return 0
	}
	base := *info.ptr(&s)
	if !info.pressure {
		return base
	}
	m := s.Pressure[f]
	return info.clamp(Resolve(base, m.Delta, info.max, ratio, m.Method))
}
