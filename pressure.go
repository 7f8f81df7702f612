package brush

import (
	"math"
	"sync/atomic"
)

// PressureMethod selects how device pressure modulates a setting.
type PressureMethod uint8

const (
	// DoNothing ignores pressure.
	DoNothing PressureMethod = iota
	// Add adds delta scaled by pressure.
	Add
	// AddPercent adds delta percent of the field's range, scaled by pressure.
	AddPercent
	// AddPercentCurrent adds delta percent of the base value, scaled by pressure.
	AddPercentCurrent
	// MatchValue moves from the base value toward delta as pressure rises.
	MatchValue
	// MatchPercent moves from the base value toward delta percent of the
	// field's range as pressure rises.
	MatchPercent
)

var pressureMethodNames = enumNames{
	"do-nothing", "add", "add-percent", "add-percent-current", "match-value", "match-percent",
}

func (m PressureMethod) String() string {
	return pressureMethodNames.name("PressureMethod", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m PressureMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PressureMethod) UnmarshalText(text []byte) error {
	v, err := pressureMethodNames.parse("pressure method", string(text))
	if err != nil {
		return err
	}
	*m = PressureMethod(v)
	return nil
}

// Mapping binds a pressure method and its delta to one setting.
type Mapping struct {
	Method PressureMethod `toml:"method" yaml:"method"`
	Delta  float64        `toml:"delta" yaml:"delta"`
}

// Resolve computes the effective value of a setting for a pressure ratio.
// The ratio is clamped to [0, 1] and a NaN ratio counts as 0. valueRange is
// the upper bound of the field, used by the percent methods.
// The result is not clamped.
func Resolve(base, delta, valueRange, ratio float64, method PressureMethod) float64 {
	ratio = clampRatio(ratio)
	switch method {
	case Add:
		return base + delta*ratio
	case AddPercent:
		return base + delta/100*valueRange*ratio
	case AddPercentCurrent:
		return base + delta/100*base*ratio
	case MatchValue:
		return lerp(base, delta, ratio)
	case MatchPercent:
		return lerp(base, delta/100*valueRange, ratio)
	default:
		return base
	}
}

func clampRatio(r float64) float64 {
	if math.IsNaN(r) {
		return 0
	}
	return clamp01(r)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// PressureSource reports the current device pressure as a ratio in [0, 1].
type PressureSource interface {
	Pressure() float64
}

// PressureFeed is a PressureSource that can be written from any goroutine,
// typically a tablet driver callback.
// The zero value reports no pressure.
type PressureFeed struct {
	bits atomic.Uint64
}

// Set stores a new pressure ratio. Values are clamped to [0, 1].
func (f *PressureFeed) Set(ratio float64) {
	f.bits.Store(math.Float64bits(clampRatio(ratio)))
}

// Pressure returns the most recently stored ratio.
func (f *PressureFeed) Pressure() float64 {
	return math.Float64frombits(f.bits.Load())
}
