//go:build !unix

package mmfile

import "os"

// Map reads the heap image at path where mmap is not available. Sizes are
// checked as on unix.
func Map(path string) ([]byte, func() error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if err := checkImageSize(path, info.Size()); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
