package brushimage

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// gbr builds a GIMP brush file. version 1 omits the magic and spacing.
func gbr(version uint32, name string, w, h, depth int, pix []byte) []byte {
	var buf bytes.Buffer
	fixed := gbrV2Header
	if version == 1 {
		fixed = gbrV1Header
	}
	nameBytes := append([]byte(name), 0)
	be := binary.BigEndian
	_ = binary.Write(&buf, be, uint32(fixed+len(nameBytes)))
	_ = binary.Write(&buf, be, version)
	_ = binary.Write(&buf, be, uint32(w))
	_ = binary.Write(&buf, be, uint32(h))
	_ = binary.Write(&buf, be, uint32(depth))
	if version == 2 {
		buf.WriteString(gbrMagic)
		_ = binary.Write(&buf, be, uint32(25))
	}
	buf.Write(nameBytes)
	buf.Write(pix)
	return buf.Bytes()
}

func filled(n int, v byte) []byte {
	return bytes.Repeat([]byte{v}, n)
}

// encodePNG encodes img and fails the test on error.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// inkDot is a white opaque gray image with a single black pixel at (x, y).
func inkDot(w, h, x, y int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetGray(x, y, color.Gray{Y: 0})
	return img
}
