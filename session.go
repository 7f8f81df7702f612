package brush

import (
	"fmt"
	"image"
	"log/slog"
)

// BrushSource looks up brush images by name.
type BrushSource interface {
	Brush(name string) (image.Image, bool)
}

// Session is the entry point of the brush engine. It owns the canvas, a
// copy of the original image for the eraser, the live settings, the view,
// the symmetry state and the undo history, and turns pointer events into
// stamps.
//
// A Session is not safe for concurrent pointer calls. SetPressure on the
// built-in feed may be called from any goroutine.
type Session struct {
	canvas   *Canvas
	original *image.RGBA

	live  Settings
	shift ShiftState
	view  View
	tool  Tool

	symmetry Symmetry
	anchored bool // SetPoints origin placed, next clicks add offsets

	feed     PressureFeed
	pressure PressureSource
	brushes  BrushSource

	jitter  *Jitterer
	comp    *Compositor
	spacer  Spacer
	history *History

	repaint func(image.Rectangle)
	log     *slog.Logger

	down       bool
	histFailed bool
	damage     image.Rectangle
}

// NewSession creates a session painting on a copy of img.
func NewSession(img image.Image, opts ...Option) (*Session, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyCanvas
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	canvas := CanvasFromImage(img)
	s := &Session{
		canvas:   canvas,
		original: canvas.Clone().RGBA(),
		brushes:  o.brushes,
		jitter:   NewJitterer(o.rand),
		comp:     NewCompositor(),
		history:  NewHistory(o.storage),
		repaint:  o.repaint,
		log:      o.logger,
	}
	if s.log == nil {
		s.log = Logger()
	}
	s.history.SetLogger(s.log)
	s.pressure = o.pressure
	if s.pressure == nil {
		s.pressure = &s.feed
	}

	s.view = NewView(canvas.Width(), canvas.Height())
	if o.view != nil {
		s.SetView(*o.view)
	}
	s.SetSettings(o.settings)
	s.symmetry.Origin = canvas.Size().Mul(0.5)

	s.log.Debug("brush: session created", "width", canvas.Width(), "height", canvas.Height())
	return s, nil
}

// Canvas returns the canvas strokes are painted on.
func (s *Session) Canvas() *Canvas {
	return s.canvas
}

// Settings returns a copy of the live settings, including shift drift.
func (s *Session) Settings() Settings {
	return s.live.Clone()
}

// SetSettings replaces the live settings with a clamped copy of st and
// resets the shift direction.
func (s *Session) SetSettings(st Settings) {
	s.live = st.Clone()
	s.live.Clamp()
	s.shift = ShiftState{}
}

// View returns the current view.
func (s *Session) View() View {
	return s.view
}

// SetView replaces the view. A zero Size is replaced by the canvas size.
func (s *Session) SetView(v View) {
	if v.Size == (Point{}) {
		v.Size = s.canvas.Size()
	}
	s.view = v
}

// Tool returns the active tool.
func (s *Session) Tool() Tool {
	return s.tool
}

// SetTool switches the active tool, ending any stroke in progress.
func (s *Session) SetTool(t Tool) {
	s.endStroke()
	s.tool = t
}

// Symmetry returns the symmetry state, with the mode taken from the live
// settings.
func (s *Session) Symmetry() Symmetry {
	sym := s.symmetry.Clone()
	sym.Mode = s.live.Symmetry
	return sym
}

// SetSymmetry replaces the symmetry mode, origin and offsets.
func (s *Session) SetSymmetry(sym Symmetry) {
	s.live.Symmetry = sym.Mode
	s.symmetry = sym.Clone()
	s.anchored = sym.Mode == SymmetrySetPoints && len(sym.Offsets) > 0
}

// SetPressure stores the pressure ratio in the session's built-in feed.
// It has no effect on a source installed with WithPressureSource.
func (s *Session) SetPressure(ratio float64) {
	s.feed.Set(ratio)
}

// PointerDown handles a button press at screen position p. Only the
// primary button acts.
func (s *Session) PointerDown(p Point, b Button) {
	if b != ButtonPrimary || !p.IsFinite() {
		return
	}
	c := s.view.ScreenToCanvas(p, false)

	switch s.tool {
	case ToolColorPicker:
		px := s.view.ScreenToCanvas(p, true).Image()
		col := s.canvas.GetPixel(px.X, px.Y)
		col.A = 255
		s.live.Color = col
		s.log.Debug("brush: color picked", "color", col.Hex())
		return

	case ToolSymmetryOrigin:
		if s.live.Symmetry == SymmetrySetPoints && s.anchored {
			s.symmetry.AddOffset(c, s.view.Rotation)
			return
		}
		s.symmetry.Origin = c
		s.symmetry.Offsets = nil
		s.anchored = s.live.Symmetry == SymmetrySetPoints
		return
	}

	s.down = true
	s.damage = image.Rectangle{}
	width := s.live.Resolved(FieldSize, s.pressure.Pressure())
	s.spacer.Snap = s.snap(width)
	s.log.Debug("brush: stroke begin", "tool", s.tool, "masked", s.compositeOptions().masked())
	s.stampAt(s.spacer.Start(c))
	s.flush()
}

// PointerMove handles pointer motion to screen position p.
func (s *Session) PointerMove(p Point) {
	if !s.down || !p.IsFinite() {
		return
	}
	c := s.view.ScreenToCanvas(p, false)
	ratio := s.pressure.Pressure()

	width := s.live.Resolved(FieldSize, ratio)
	density := s.live.Resolved(FieldDensity, ratio)
	if s.live.AutoDensity {
		density = AutoDensity(width)
	}
	s.spacer.Snap = s.snap(width)

	s.damage = image.Rectangle{}
	for _, pos := range s.spacer.Place(c, width, density, s.live.Resolved(FieldMinDrawDistance, ratio)) {
		s.stampAt(pos)
	}
	s.flush()
}

// PointerUp ends the current stroke.
func (s *Session) PointerUp() {
	if s.down {
		s.log.Debug("brush: stroke end")
	}
	s.endStroke()
}

func (s *Session) endStroke() {
	s.down = false
	s.spacer.Stop()
	s.history.EndStroke()
}

func (s *Session) snap(width float64) bool {
	return s.live.Smoothing == SmoothJagged || (s.live.AutoDensity && width == 1)
}

func (s *Session) compositeOptions() CompositeOptions {
	return CompositeOptions{
		Blend:     s.live.Blend,
		AlphaLock: s.live.AlphaLock,
		Smoothing: s.live.Smoothing,
		Erase:     s.tool == ToolEraser,
		Original:  s.original,
	}
}

// stampAt places one stamp and its symmetry copies at canvas position pos.
func (s *Session) stampAt(pos Point) {
	if !s.history.InStroke() {
		if err := s.history.BeginStroke(s.canvas); err != nil {
			// Keep painting; the stroke just cannot be undone.
			if !s.histFailed {
				s.log.Warn("brush: history snapshot failed", "err", err)
			}
			s.histFailed = true
		} else {
			s.histFailed = false
		}
	}

	st := s.jitter.Apply(&s.live, &s.shift, s.pressure.Pressure(), pos, s.canvas.Size())
	st.Rotation -= s.view.Rotation

	sym := s.Symmetry()
	img := s.brush()
	opts := s.compositeOptions()
	for _, pl := range sym.Expand(st.Pos, s.view.Rotation) {
		r := s.comp.Stamp(s.canvas.RGBA(), img, pl.Apply(st, s.view.Rotation), opts)
		s.damage = s.damage.Union(r)
	}
}

func (s *Session) brush() image.Image {
	if s.live.Brush != "" && s.brushes != nil {
		if img, ok := s.brushes.Brush(s.live.Brush); ok {
			return img
		}
	}
	return nil
}

func (s *Session) flush() {
	if s.repaint != nil && !s.damage.Empty() {
		s.repaint(s.damage)
	}
	s.damage = image.Rectangle{}
}

// CanUndo reports whether there is a stroke to undo.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether there is a stroke to redo.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Undo reverts the last stroke, aborting a stroke in progress first.
// It reports whether the canvas changed.
func (s *Session) Undo() (bool, error) {
	return s.step(s.history.Undo, "undo")
}

// Redo reapplies the last undone stroke.
func (s *Session) Redo() (bool, error) {
	return s.step(s.history.Redo, "redo")
}

func (s *Session) step(fn func(*Canvas) (bool, error), op string) (bool, error) {
	s.endStroke()
	ok, err := fn(s.canvas)
	if err != nil {
		s.log.Warn("brush: history "+op+" failed", "err", err)
		return false, err
	}
	if ok && s.repaint != nil {
		s.repaint(s.canvas.Bounds())
	}
	return ok, nil
}

// Close releases the history snapshots.
func (s *Session) Close() error {
	s.endStroke()
	if err := s.history.Close(); err != nil {
		return fmt.Errorf("brush: close session: %w", err)
	}
	return nil
}
