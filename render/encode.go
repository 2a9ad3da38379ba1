package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"
)

// Supported container formats
const (
	FormatPNG = "png"
	FormatQOI = "qoi"
)

// UnsupportedFormatError is returned for an unknown container format.
type UnsupportedFormatError string

func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("render: unsupported format: %q", string(e))
}

// FormatFromFilename guesses the container format from the extension of
// file, defaulting to FormatPNG.
func FormatFromFilename(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".qoi":
		return FormatQOI
	}
	return FormatPNG
}

// Encode writes m to w in the named container format.
func Encode(w io.Writer, m image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatPNG:
		return png.Encode(w, m)
	case FormatQOI:
		return qoi.Encode(w, m)
	}
	return UnsupportedFormatError(format)
}
