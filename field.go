package brush

import (
	"fmt"
	"math"
)

// Field names one numeric setting. Fields are used as pressure mapping keys,
// preset keys and shortcut targets.
type Field string

const (
	FieldSize                Field = "size"
	FieldAlpha               Field = "alpha"
	FieldRotation            Field = "rotation"
	FieldDensity             Field = "density"
	FieldMinDrawDistance     Field = "min_draw_distance"
	FieldColorInfluence      Field = "color_influence"
	FieldSizeJitterMin       Field = "size_jitter_min"
	FieldSizeJitterMax       Field = "size_jitter_max"
	FieldRotationJitterLeft  Field = "rotation_jitter_left"
	FieldRotationJitterRight Field = "rotation_jitter_right"
	FieldAlphaJitter         Field = "alpha_jitter"
	FieldHorizontalShift     Field = "horizontal_shift"
	FieldVerticalShift       Field = "vertical_shift"
	FieldRedJitterMin        Field = "red_jitter_min"
	FieldRedJitterMax        Field = "red_jitter_max"
	FieldGreenJitterMin      Field = "green_jitter_min"
	FieldGreenJitterMax      Field = "green_jitter_max"
	FieldBlueJitterMin       Field = "blue_jitter_min"
	FieldBlueJitterMax       Field = "blue_jitter_max"
	FieldHueJitterMin        Field = "hue_jitter_min"
	FieldHueJitterMax        Field = "hue_jitter_max"
	FieldSaturationJitterMin Field = "saturation_jitter_min"
	FieldSaturationJitterMax Field = "saturation_jitter_max"
	FieldValueJitterMin      Field = "value_jitter_min"
	FieldValueJitterMax      Field = "value_jitter_max"
	FieldSizeShift           Field = "size_shift"
	FieldRotationShift       Field = "rotation_shift"
	FieldAlphaShift          Field = "alpha_shift"
)

type fieldInfo struct {
	min, max float64
	pressure bool
	ptr      func(*Settings) *float64
}

func (fi fieldInfo) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return fi.min
	}
	return math.Max(fi.min, math.Min(fi.max, v))
}

var fieldTable = map[Field]fieldInfo{
	FieldSize:                {1, 1000, true, func(s *Settings) *float64 { return &s.Size }},
	FieldAlpha:               {0, 255, true, func(s *Settings) *float64 { return &s.Alpha }},
	FieldRotation:            {-180, 180, true, func(s *Settings) *float64 { return &s.Rotation }},
	FieldDensity:             {0, 50, true, func(s *Settings) *float64 { return &s.Density }},
	FieldMinDrawDistance:     {0, 500, true, func(s *Settings) *float64 { return &s.MinDrawDistance }},
	FieldColorInfluence:      {0, 100, true, func(s *Settings) *float64 { return &s.ColorInfluence }},
	FieldSizeJitterMin:       {0, 1000, true, func(s *Settings) *float64 { return &s.SizeJitterMin }},
	FieldSizeJitterMax:       {0, 1000, true, func(s *Settings) *float64 { return &s.SizeJitterMax }},
	FieldRotationJitterLeft:  {0, 180, true, func(s *Settings) *float64 { return &s.RotationJitterLeft }},
	FieldRotationJitterRight: {0, 180, true, func(s *Settings) *float64 { return &s.RotationJitterRight }},
	FieldAlphaJitter:         {0, 255, true, func(s *Settings) *float64 { return &s.AlphaJitter }},
	FieldHorizontalShift:     {0, 100, true, func(s *Settings) *float64 { return &s.HorizontalShift }},
	FieldVerticalShift:       {0, 100, true, func(s *Settings) *float64 { return &s.VerticalShift }},
	FieldRedJitterMin:        {0, 100, true, func(s *Settings) *float64 { return &s.RedJitterMin }},
	FieldRedJitterMax:        {0, 100, true, func(s *Settings) *float64 { return &s.RedJitterMax }},
	FieldGreenJitterMin:      {0, 100, true, func(s *Settings) *float64 { return &s.GreenJitterMin }},
	FieldGreenJitterMax:      {0, 100, true, func(s *Settings) *float64 { return &s.GreenJitterMax }},
	FieldBlueJitterMin:       {0, 100, true, func(s *Settings) *float64 { return &s.BlueJitterMin }},
	FieldBlueJitterMax:       {0, 100, true, func(s *Settings) *float64 { return &s.BlueJitterMax }},
	FieldHueJitterMin:        {0, 100, true, func(s *Settings) *float64 { return &s.HueJitterMin }},
	FieldHueJitterMax:        {0, 100, true, func(s *Settings) *float64 { return &s.HueJitterMax }},
	FieldSaturationJitterMin: {0, 100, true, func(s *Settings) *float64 { return &s.SaturationJitterMin }},
	FieldSaturationJitterMax: {0, 100, true, func(s *Settings) *float64 { return &s.SaturationJitterMax }},
	FieldValueJitterMin:      {0, 100, true, func(s *Settings) *float64 { return &s.ValueJitterMin }},
	FieldValueJitterMax:      {0, 100, true, func(s *Settings) *float64 { return &s.ValueJitterMax }},
	FieldSizeShift:           {0, 100, false, func(s *Settings) *float64 { return &s.SizeShift }},
	FieldRotationShift:       {0, 180, false, func(s *Settings) *float64 { return &s.RotationShift }},
	FieldAlphaShift:          {0, 255, false, func(s *Settings) *float64 { return &s.AlphaShift }},
}

// fieldOrder lists the fields in declaration order.
var fieldOrder = []Field{
	FieldSize, FieldAlpha, FieldRotation, FieldDensity, FieldMinDrawDistance, FieldColorInfluence,
	FieldSizeJitterMin, FieldSizeJitterMax, FieldRotationJitterLeft, FieldRotationJitterRight,
	FieldAlphaJitter, FieldHorizontalShift, FieldVerticalShift,
	FieldRedJitterMin, FieldRedJitterMax, FieldGreenJitterMin, FieldGreenJitterMax,
	FieldBlueJitterMin, FieldBlueJitterMax, FieldHueJitterMin, FieldHueJitterMax,
	FieldSaturationJitterMin, FieldSaturationJitterMax, FieldValueJitterMin, FieldValueJitterMax,
	FieldSizeShift, FieldRotationShift, FieldAlphaShift,
}

// Fields returns all numeric fields in declaration order.
func Fields() []Field {
	return append([]Field(nil), fieldOrder...)
}

// Valid reports whether f names a known field.
func (f Field) Valid() bool {
	_, ok := fieldTable[f]
	return ok
}

// Range returns the inclusive bounds of f. Unknown fields return (0, 0).
func (f Field) Range() (lo, hi float64) {
	info := fieldTable[f]
	return info.min, info.max
}

// PressureSensitive reports whether f accepts a pressure mapping.
func (f Field) PressureSensitive() bool {
	return fieldTable[f].pressure
}

func unknownField(f Field) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
}

// Get returns the base value of f.
func (s Settings) Get(f Field) (float64, error) {
	info, ok := fieldTable[f]
	if !ok {
		return 0, unknownField(f)
	}
	return *info.ptr(&s), nil
}

// Set assigns v to f, clamped to the field range.
func (s *Settings) Set(f Field, v float64) error {
	info, ok := fieldTable[f]
	if !ok {
		return unknownField(f)
	}
	*info.ptr(s) = info.clamp(v)
	return nil
}

// Adjust adds delta to f, clamped to the field range. It backs the
// increment and decrement keyboard shortcuts.
func (s *Settings) Adjust(f Field, delta float64) error {
	info, ok := fieldTable[f]
	if !ok {
		return unknownField(f)
	}
	p := info.ptr(s)
	*p = info.clamp(*p + delta)
	return nil
}
