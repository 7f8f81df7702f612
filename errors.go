package brush

import "errors"

var (
	// ErrInvalidColor is returned when a hex color string cannot be parsed.
	ErrInvalidColor = errors.New("brush: invalid color")

	// ErrEmptyCanvas is returned when a session is created from an empty image.
	ErrEmptyCanvas = errors.New("brush: canvas has no pixels")

	// ErrUnknownName is returned when an enum name cannot be parsed.
	ErrUnknownName = errors.New("brush: unknown name")

	// ErrUnknownField is returned for a field identifier missing from the field table.
	ErrUnknownField = errors.New("brush: unknown settings field")

	// ErrSnapshotMissing is returned when a history snapshot no longer exists in storage.
	ErrSnapshotMissing = errors.New("brush: history snapshot missing")

	// ErrSnapshotSize is returned when a snapshot does not match the canvas dimensions.
	ErrSnapshotSize = errors.New("brush: snapshot size does not match canvas")

	// ErrStorageClosed is returned by storage operations after Close.
	ErrStorageClosed = errors.New("brush: history storage closed")

	// ErrPresetNotFound is returned when a named preset does not exist.
	ErrPresetNotFound = errors.New("brush: preset not found")
)
