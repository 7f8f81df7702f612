package brushimage

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

type format uint8

const (
	formatRaster format = iota
	formatGBR
	formatGIH
)

var (
	gbrType = filetype.NewType("gbr", "image/x-gimp-gbr")
	gihType = filetype.NewType("gih", "image/x-gimp-gih")
)

func init() {
	filetype.AddMatcher(gbrType, matchGBR)
	filetype.AddMatcher(gihType, matchGIH)
}

// sniff classifies data by content, falling back to the extension of name.
// Anything that is not a GIMP brush is handed to image.Decode.
func sniff(data []byte, name string) format {
	kind, _ := filetype.Match(data)
	switch kind {
	case gbrType:
		return formatGBR
	case gihType:
		return formatGIH
	case filetype.Unknown:
		switch strings.ToLower(filepath.Ext(name)) {
		case ".gbr":
			return formatGBR
		case ".gih":
			return formatGIH
		}
	}
	return formatRaster
}

// matchGBR recognizes version 2 brushes by their magic and version 1
// brushes by a plausible header.
func matchGBR(buf []byte) bool {
	if len(buf) < gbrV1Header {
		return false
	}
	be := binary.BigEndian
	size, version := be.Uint32(buf), be.Uint32(buf[4:])
	switch version {
	case 2:
		return len(buf) >= gbrV2Header && size >= gbrV2Header &&
			string(buf[20:24]) == gbrMagic
	case 1:
		w, h, depth := be.Uint32(buf[8:]), be.Uint32(buf[12:]), be.Uint32(buf[16:])
		return size >= gbrV1Header && size-gbrV1Header <= maxNameBytes &&
			validSide(w) && validSide(h) && (depth == 1 || depth == 4)
	}
	return false
}

// matchGIH recognizes the two text lines that open an image pipe: a name
// and a parameter line starting with the cell count.
func matchGIH(buf []byte) bool {
	head := buf[:min(len(buf), 512)]
	nl := bytes.IndexByte(head, '\n')
	if nl < 0 || bytes.IndexByte(head[:nl], 0) >= 0 {
		return false
	}
	rest := head[nl+1:]
	nl = bytes.IndexByte(rest, '\n')
	if nl <= 0 {
		return false
	}
	line := rest[:nl]
	return line[0] >= '0' && line[0] <= '9' && bytes.Contains(line, []byte("ncells:"))
}
