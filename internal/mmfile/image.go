// Package mmfile maps saved heap images read-only.
package mmfile

import (
	"errors"
	"fmt"

	"github.com/joshuapare/segheap/internal/format"
)

// ErrImageSize is returned for a file whose length cannot be a heap image.
var ErrImageSize = errors.New("mmfile: bad heap image size")

// checkImageSize rejects empty files and lengths off the double-word grid.
// A heap always ends on an epilogue header that closes a double-word.
func checkImageSize(path string, size int64) error {
	if size == 0 || size%format.DoubleWordSize != 0 {
		return fmt.Errorf("%w: %s is %d bytes, want a non-zero multiple of %d",
			ErrImageSize, path, size, format.DoubleWordSize)
	}
	if size > int64(^uint(0)>>1) {
		return fmt.Errorf("%w: %s too large to map (%d bytes)", ErrImageSize, path, size)
	}
	return nil
}
