package brushimage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// DefaultMaxSize is the largest side, in pixels, of a decoded brush tip.
// Larger tips are downscaled.
const DefaultMaxSize = 256

var (
	// ErrUnsupported is returned for content that is neither a known image
	// format nor a GIMP brush.
	ErrUnsupported = errors.New("brushimage: unsupported format")

	// ErrCorrupt is returned for a malformed .gbr or .gih file.
	ErrCorrupt = errors.New("brushimage: corrupt brush file")

	// ErrEmpty is returned when a file is empty or its tip has no coverage.
	ErrEmpty = errors.New("brushimage: empty brush")
)

// Brush is a decoded, normalized brush tip.
type Brush struct {
	Name  string
	Image *image.RGBA
}

// Decode reads one brush file. name is used to pick a format when sniffing
// is inconclusive and as the brush name when the file carries none.
// Image pipes yield one Brush per cell.
func Decode(r io.Reader, name string) ([]Brush, error) {
	return decode(r, name, DefaultMaxSize)
}

// DecodeFile opens path and decodes it with Decode.
func DecodeFile(path string) ([]Brush, error) {
	return decodeFile(path, DefaultMaxSize)
}

func decodeFile(path string, maxSize int) ([]Brush, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f, filepath.Base(path), maxSize)
}

func decode(r io.Reader, name string, maxSize int) ([]Brush, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, name)
	}

	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	switch sniff(data, name) {
	case formatGBR:
		tipName, img, err := readGBR(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if tipName == "" {
			tipName = stem
		}
		b, err := normalize(tipName, img, false, maxSize)
		if err != nil {
			return nil, err
		}
		return []Brush{b}, nil

	case formatGIH:
		cells, err := readGIH(bytes.NewReader(data), stem)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out := make([]Brush, 0, len(cells))
		for _, c := range cells {
			b, err := normalize(c.name, c.img, false, maxSize)
			if errors.Is(err, ErrEmpty) {
				continue
			}
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmpty, name)
		}
		return out, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsupported, name, err)
	}
	b, err := normalize(stem, img, true, maxSize)
	if err != nil {
		return nil, err
	}
	return []Brush{b}, nil
}
