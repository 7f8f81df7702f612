package brush

import (
	"fmt"
	"strings"

	"github.com/gogpu/brush/internal/blend"
)

// BlendMode selects how stamps are combined with the canvas.
type BlendMode = blend.Mode

// Blend modes.
const (
	BlendNormal     = blend.Normal
	BlendOverwrite  = blend.Overwrite
	BlendMultiply   = blend.Multiply
	BlendAdditive   = blend.Additive
	BlendColorBurn  = blend.ColorBurn
	BlendColorDodge = blend.ColorDodge
	BlendReflect    = blend.Reflect
	BlendGlow       = blend.Glow
	BlendOverlay    = blend.Overlay
	BlendDifference = blend.Difference
	BlendNegation   = blend.Negation
	BlendLighten    = blend.Lighten
	BlendDarken     = blend.Darken
	BlendScreen     = blend.Screen
	BlendXor        = blend.Xor
	BlendHardLight  = blend.HardLight
	BlendSoftLight  = blend.SoftLight
	BlendExclusion  = blend.Exclusion
)

// ParseBlendMode parses a blend mode name such as "multiply" or "color-dodge".
func ParseBlendMode(name string) (BlendMode, error) {
	return blend.ParseMode(name)
}

// enumNames maps enum values to their text form.
type enumNames []string

func (n enumNames) name(kind string, v int) string {
	if v >= 0 && v < len(n) {
		return n[v]
	}
	return fmt.Sprintf("%s(%d)", kind, v)
}

func (n enumNames) parse(kind, s string) (int, error) {
	key := strings.NewReplacer("_", "-", " ", "-").Replace(strings.TrimSpace(s))
	for i, name := range n {
		if strings.EqualFold(name, key) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownName, kind, s)
}

// Smoothing selects the resampling quality of stamps.
type Smoothing uint8

const (
	SmoothNormal Smoothing = iota // bilinear
	SmoothHigh                    // Catmull-Rom
	SmoothJagged                  // nearest neighbor, integer stamp positions
)

var smoothingNames = enumNames{"normal", "high", "jagged"}

func (s Smoothing) String() string { return smoothingNames.name("Smoothing", int(s)) }

// MarshalText implements encoding.TextMarshaler.
func (s Smoothing) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Smoothing) UnmarshalText(text []byte) error {
	v, err := smoothingNames.parse("smoothing", string(text))
	if err != nil {
		return err
	}
	*s = Smoothing(v)
	return nil
}

// SymmetryMode selects how one stamp is replicated.
type SymmetryMode uint8

const (
	SymmetryNone       SymmetryMode = iota
	SymmetryHorizontal              // mirror across the vertical axis through the origin
	SymmetryVertical                // mirror across the horizontal axis through the origin
	SymmetryStar2                   // point reflection through the origin
	SymmetrySetPoints               // copies at recorded offsets
	SymmetryStar3
	SymmetryStar4
	SymmetryStar5
	SymmetryStar6
	SymmetryStar7
	SymmetryStar8
	SymmetryStar9
	SymmetryStar10
	SymmetryStar11
	SymmetryStar12
)

var symmetryNames = enumNames{
	"none", "horizontal", "vertical", "star2", "set-points",
	"star3", "star4", "star5", "star6", "star7", "star8", "star9", "star10", "star11", "star12",
}

func (m SymmetryMode) String() string { return symmetryNames.name("SymmetryMode", int(m)) }

// Arms returns the number of rotational copies for the StarN modes
// (2 for Star2) and 0 for the other modes.
func (m SymmetryMode) Arms() int {
	switch {
	case m == SymmetryStar2:
		return 2
	case m >= SymmetryStar3 && m <= SymmetryStar12:
		return int(m-SymmetryStar3) + 3
	}
	return 0
}

// StarSymmetry returns the StarN mode for n in [2, 12].
func StarSymmetry(n int) (SymmetryMode, bool) {
	switch {
	case n == 2:
		return SymmetryStar2, true
	case n >= 3 && n <= 12:
		return SymmetryStar3 + SymmetryMode(n-3), true
	}
	return SymmetryNone, false
}

// MarshalText implements encoding.TextMarshaler.
func (m SymmetryMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SymmetryMode) UnmarshalText(text []byte) error {
	v, err := symmetryNames.parse("symmetry", string(text))
	if err != nil {
		return err
	}
	*m = SymmetryMode(v)
	return nil
}

// Tool is the active pointer tool of a session.
type Tool uint8

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolColorPicker
	ToolSymmetryOrigin
)

var toolNames = enumNames{"brush", "eraser", "color-picker", "symmetry-origin"}

func (t Tool) String() string { return toolNames.name("Tool", int(t)) }

// MarshalText implements encoding.TextMarshaler.
func (t Tool) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tool) UnmarshalText(text []byte) error {
	v, err := toolNames.parse("tool", string(text))
	if err != nil {
		return err
	}
	*t = Tool(v)
	return nil
}

// Button identifies the pointer button of a press.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

var buttonNames = enumNames{"primary", "secondary", "middle"}

func (b Button) String() string { return buttonNames.name("Button", int(b)) }

// MarshalText implements encoding.TextMarshaler.
func (b Button) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Button) UnmarshalText(text []byte) error {
	v, err := buttonNames.parse("button", string(text))
	if err != nil {
		return err
	}
	*b = Button(v)
	return nil
}
