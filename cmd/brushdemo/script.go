package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/brush"
	"gopkg.in/yaml.v3"
)

// Script is a recorded drawing session.
//
//	canvas: {width: 320, height: 200, background: "#ffffff"}
//	view: {zoom: 2, rotation: 30}
//	settings: {size: 12, color: "#d03030ff", density: 8}
//	symmetry: {mode: star-6, origin: {x: 160, y: 100}}
//	events:
//	  - {op: down, x: 20, y: 20, pressure: 0.4}
//	  - {op: move, x: 120, y: 60}
//	  - {op: up}
//	  - {op: undo}
type Script struct {
	Canvas   CanvasConfig    `yaml:"canvas"`
	View     yaml.Node       `yaml:"view"`
	Settings yaml.Node       `yaml:"settings"`
	Symmetry *SymmetryConfig `yaml:"symmetry"`
	Events   []Event         `yaml:"events"`
}

// CanvasConfig describes the initial canvas.
type CanvasConfig struct {
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Background brush.Color `yaml:"background"`
}

// SymmetryConfig sets the symmetry mode and its origin.
type SymmetryConfig struct {
	Mode    brush.SymmetryMode `yaml:"mode"`
	Origin  *brush.Point       `yaml:"origin"`
	Offsets []brush.Point      `yaml:"offsets"`
}

// Event is one scripted input. Coordinates are in screen space.
type Event struct {
	Op       string       `yaml:"op"`
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Button   brush.Button `yaml:"button"`
	Pressure *float64     `yaml:"pressure"`
	Tool     brush.Tool   `yaml:"tool"`
	Field    brush.Field  `yaml:"field"`
	Value    float64      `yaml:"value"`
}

var errBadScript = errors.New("brushdemo: invalid script")

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseScript(f)
}

// ParseScript decodes a YAML script and checks the canvas size.
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Script
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", errBadScript, err)
	}
	if sc.Canvas.Width <= 0 || sc.Canvas.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", errBadScript, sc.Canvas.Width, sc.Canvas.Height)
	}
	if sc.Canvas.Background == (brush.Color{}) {
		sc.Canvas.Background = brush.White
	}
	return &sc, nil
}

// ApplySettings overlays the script's settings onto base.
// Keys the script omits keep their value from base.
func (sc *Script) ApplySettings(base brush.Settings) (brush.Settings, error) {
	st := base.Clone()
	if sc.Settings.IsZero() {
		return st, nil
	}
	if err := sc.Settings.Decode(&st); err != nil {
		return base, fmt.Errorf("%w: settings: %w", errBadScript, err)
	}
	return st, nil
}

// ApplyView overlays the script's view onto the default view of the
// canvas, which zooms 1:1 and pivots about the center.
func (sc *Script) ApplyView() (brush.View, error) {
	v := brush.NewView(sc.Canvas.Width, sc.Canvas.Height)
	if sc.View.IsZero() {
		return v, nil
	}
	if err := sc.View.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: view: %w", errBadScript, err)
	}
	return v, nil
}

// Run replays the events on s.
func (sc *Script) Run(s *brush.Session, log *slog.Logger) error {
	if sc.Symmetry != nil {
		sym := s.Symmetry()
		sym.Mode = sc.Symmetry.Mode
		if sc.Symmetry.Origin != nil {
			sym.Origin = *sc.Symmetry.Origin
		}
		sym.Offsets = sc.Symmetry.Offsets
		s.SetSymmetry(sym)
	}

	for i, ev := range sc.Events {
		if ev.Pressure != nil {
			s.SetPressure(*ev.Pressure)
		}
		p := brush.Pt(ev.X, ev.Y)

		switch ev.Op {
		case "down":
			s.PointerDown(p, ev.Button)
		case "move":
			s.PointerMove(p)
		case "up":
			s.PointerUp()
		case "undo", "redo":
			step := s.Undo
			if ev.Op == "redo" {
				step = s.Redo
			}
			ok, err := step()
			if err != nil {
				return fmt.Errorf("event %d: %s: %w", i, ev.Op, err)
			}
			if !ok {
				log.Info("nothing to "+ev.Op, "event", i)
			}
		case "tool":
			s.SetTool(ev.Tool)
		case "set":
			st := s.Settings()
			if err := st.Set(ev.Field, ev.Value); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			s.SetSettings(st)
		case "pressure":
			// Pressure alone, already applied above.
		default:
			return fmt.Errorf("%w: event %d: unknown op %q", errBadScript, i, ev.Op)
		}
	}
	s.PointerUp()
	return nil
}
