// Package brush provides a freehand brush-stroke engine for raster canvases.
//
// # Overview
//
// brush turns a stream of pointer positions into repeated stamps of a brush
// image on a single flattened canvas. Every stamp is modulated by device
// pressure, bounded random jitter, persistent shift drift and symmetry
// replication, and then composited with one of several blend modes.
//
// # Quick Start
//
//	import "github.com/gogpu/brush"
//
//	src := image.NewRGBA(image.Rect(0, 0, 800, 600))
//	s, err := brush.NewSession(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.PointerDown(brush.Pt(100, 100), brush.ButtonPrimary)
//	s.PointerMove(brush.Pt(300, 120))
//	s.PointerUp()
//
//	_ = s.Canvas().SavePNG("out.png")
//
// # Pipeline
//
// A pointer event flows through the following stages:
//   - View maps screen coordinates to canvas pixels (pan, zoom, rotation).
//   - Spacer decides how many stamps to place along the segment.
//   - Settings.Resolved applies the pressure mapping of every field.
//   - Jitterer perturbs the stamp and advances the shift values.
//   - Symmetry expands one stamp into its mirrored or radial copies.
//   - Compositor draws each copy onto the canvas.
//
// History snapshots bracket whole strokes, not stamps.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left of the canvas
//   - X increases right, Y increases down
//   - Rotations are in degrees and positive angles turn clockwise on screen
//
// # Concurrency
//
// A Session is driven from a single goroutine (the UI event loop). The pressure
// feed may be written from any goroutine. Brush import in package brushimage runs
// on worker goroutines.
package brush

// Version is the current version of the library.
const Version = "0.1.0"
