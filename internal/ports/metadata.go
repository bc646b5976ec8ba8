package ports

import "io"

// MetadataReader extracts the raw capture-date tag from media file bytes.
type MetadataReader interface {
	// CaptureDate returns the raw DateTimeOriginal value, or ok=false when
	// the bytes carry no readable capture date. A malformed value is
	// returned verbatim with ok=true; parsing is the caller's concern.
	CaptureDate(r io.Reader) (raw string, ok bool)
}
