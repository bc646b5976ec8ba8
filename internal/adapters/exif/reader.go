package exif

import (
	"io"

	goexif "github.com/rwcarlsen/goexif/exif"

	"phototransfer/internal/ports"
)

// Reader extracts capture dates from embedded EXIF metadata.
type Reader struct{}

// Ensure Reader implements MetadataReader
var _ ports.MetadataReader = (*Reader)(nil)

// NewReader creates a new EXIF metadata reader
func NewReader() *Reader {
	return &Reader{}
}

// CaptureDate returns the raw DateTimeOriginal tag value. Bytes without
// EXIF data, or with EXIF data lacking the tag, report ok=false.
func (r *Reader) CaptureDate(rd io.Reader) (string, bool) {
	x, err := goexif.Decode(rd)
	if err != nil {
		return "", false
	}

	tag, err := x.Get(goexif.DateTimeOriginal)
	if err != nil {
		return "", false
	}

	raw, err := tag.StringVal()
	if err != nil {
		return "", false
	}
	return raw, true
}
