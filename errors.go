package ocif

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSignature is returned when the data does not start with
	// Signature
	ErrInvalidSignature = errors.New("ocif: invalid signature")
	// ErrNotEnough is returned when the data ends before the image does
	ErrNotEnough = errors.New("ocif: not enough image data")
	// ErrTooLarge is returned when the size of an image, or the number of
	// distinct cell attributes, does not fit the chosen encoding method
	ErrTooLarge = errors.New("ocif: image too large for encoding method")
	// ErrCellCount is returned when encoding an image whose cells do not
	// match its width and height
	ErrCellCount = errors.New("ocif: cell count does not match image size")
	// ErrEmpty is returned when encoding an image with no cells using a
	// method that cannot represent it
	ErrEmpty = errors.New("ocif: image has no cells")
)

// UnsupportedMethodError is returned for an encoding method other than 5,
// 6, 7 or 8.
type UnsupportedMethodError int

func (e UnsupportedMethodError) Error() string {
	return fmt.Sprintf("ocif: unsupported encoding method: %d", int(e))
}
