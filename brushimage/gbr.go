package brushimage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"
)

const (
	gbrMagic     = "GIMP"
	gbrV1Header  = 20
	gbrV2Header  = 28
	maxNameBytes = 1024
	maxGBRSide   = 8192
	maxGIHCells  = 256
)

// gbrHeader is the part of the header shared by versions 1 and 2.
// All fields are big-endian.
type gbrHeader struct {
	HeaderSize uint32
	Version    uint32
	Width      uint32
	Height     uint32
	Depth      uint32
}

func validSide(n uint32) bool {
	return n > 0 && n <= maxGBRSide
}

func corrupt(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %w", ErrCorrupt, err)
}

// readGBR reads one GIMP brush from r. Grayscale brushes store coverage, so
// they come back as white with the stored value as alpha.
func readGBR(r io.Reader) (string, image.Image, error) {
	var h gbrHeader
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return "", nil, corrupt(err)
	}

	fixed := uint32(gbrV1Header)
	switch h.Version {
	case 1:
	case 2:
		var ext struct {
			Magic   [4]byte
			Spacing uint32
		}
		if err := binary.Read(r, binary.BigEndian, &ext); err != nil {
			return "", nil, corrupt(err)
		}
		if string(ext.Magic[:]) != gbrMagic {
			return "", nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, ext.Magic[:])
		}
		fixed = gbrV2Header
	default:
		return "", nil, fmt.Errorf("%w: version %d", ErrCorrupt, h.Version)
	}

	if h.HeaderSize < fixed || h.HeaderSize-fixed > maxNameBytes {
		return "", nil, fmt.Errorf("%w: header size %d", ErrCorrupt, h.HeaderSize)
	}
	if !validSide(h.Width) || !validSide(h.Height) {
		return "", nil, fmt.Errorf("%w: size %dx%d", ErrCorrupt, h.Width, h.Height)
	}
	if h.Depth != 1 && h.Depth != 4 {
		return "", nil, fmt.Errorf("%w: depth %d", ErrCorrupt, h.Depth)
	}

	raw := make([]byte, h.HeaderSize-fixed)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", nil, corrupt(err)
	}
	name := strings.ToValidUTF8(strings.TrimRight(string(raw), "\x00"), "")

	w, ht := int(h.Width), int(h.Height)
	pix := make([]byte, w*ht*int(h.Depth))
	if _, err := io.ReadFull(r, pix); err != nil {
		return "", nil, corrupt(err)
	}

	rect := image.Rect(0, 0, w, ht)
	if h.Depth == 4 {
		return name, &image.NRGBA{Pix: pix, Stride: w * 4, Rect: rect}, nil
	}
	img := image.NewNRGBA(rect)
	for i, v := range pix {
		o := img.Pix[i*4 : i*4+4 : i*4+4]
		o[0], o[1], o[2], o[3] = 0xff, 0xff, 0xff, v
	}
	return name, img, nil
}

type gihCell struct {
	name string
	img  image.Image
}

// readGIH reads an image pipe: a name line, a parameter line whose first
// field is the cell count, then that many GBR brushes. Cells are named
// after the pipe and numbered from 1.
func readGIH(r io.Reader, fallback string) ([]gihCell, error) {
	br := bufio.NewReader(r)

	name, err := br.ReadString('\n')
	if err != nil {
		return nil, corrupt(err)
	}
	name = strings.TrimSpace(strings.ToValidUTF8(name, ""))
	if name == "" {
		name = fallback
	}

	params, err := br.ReadString('\n')
	if err != nil {
		return nil, corrupt(err)
	}
	fields := strings.Fields(params)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: missing cell count", ErrCorrupt)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 || n > maxGIHCells {
		return nil, fmt.Errorf("%w: cell count %q", ErrCorrupt, fields[0])
	}

	cells := make([]gihCell, 0, n)
	for i := range n {
		_, img, err := readGBR(br)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i+1, err)
		}
		cells = append(cells, gihCell{name: fmt.Sprintf("%s %d", name, i+1), img: img})
	}
	return cells, nil
}
