package brush

import (
	"image"
	"log/slog"
	"math/rand/v2"
)

// Option configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	// Default round brush, in-memory history
//	s, err := brush.NewSession(img)
//
//	// Tablet pressure and brushes from a collection
//	s, err := brush.NewSession(img,
//	    brush.WithBrushSource(collection),
//	    brush.WithPressureSource(tablet),
//	)
type Option func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	settings Settings
	view     *View
	brushes  BrushSource
	pressure PressureSource
	storage  Storage
	rand     rand.Source
	repaint  func(image.Rectangle)
	logger   *slog.Logger
}

// defaultOptions returns the default session options.
func defaultOptions() sessionOptions {
	return sessionOptions{
		settings: DefaultSettings(),
		storage:  nil, // MemoryStorage
		rand:     nil, // randomly seeded PCG
	}
}

// WithSettings sets the initial brush settings. The session keeps its own
// copy, clamped to the valid field ranges.
func WithSettings(s Settings) Option {
	return func(o *sessionOptions) {
		o.settings = s
	}
}

// WithView sets the initial view. A zero Size is replaced by the canvas size.
func WithView(v View) Option {
	return func(o *sessionOptions) {
		o.view = &v
	}
}

// WithBrushSource sets where brush images are looked up by Settings.Brush.
func WithBrushSource(b BrushSource) Option {
	return func(o *sessionOptions) {
		o.brushes = b
	}
}

// WithPressureSource replaces the session's PressureFeed as the source of
// the pressure ratio read for every stamp.
func WithPressureSource(p PressureSource) Option {
	return func(o *sessionOptions) {
		o.pressure = p
	}
}

// WithHistoryStorage sets the snapshot storage of the undo history.
// The session takes ownership and closes it on Close.
//
// Example:
//
//	st, err := brush.NewFileStorage("")
//	if err != nil {
//	    return err
//	}
//	s, err := brush.NewSession(img, brush.WithHistoryStorage(st))
func WithHistoryStorage(st Storage) Option {
	return func(o *sessionOptions) {
		o.storage = st
	}
}

// WithRand sets the random source used for jitter. Tests use a seeded
// source for reproducible strokes.
func WithRand(src rand.Source) Option {
	return func(o *sessionOptions) {
		o.rand = src
	}
}

// WithRepaint registers a callback that receives the canvas-space rectangle
// damaged by each pointer event.
func WithRepaint(fn func(image.Rectangle)) Option {
	return func(o *sessionOptions) {
		o.repaint = fn
	}
}

// WithLogger overrides the package logger for this session.
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = l
	}
}
