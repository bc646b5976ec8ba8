package domain

import (
	"strconv"
	"time"
)

// CaptureDateLayout is the timestamp format carried by the EXIF
// DateTimeOriginal tag.
const CaptureDateLayout = "2006:01:02 15:04:05"

// ResolvedDate is the outcome of resolving a file's original date.
// FromMetadata is true when the date came from the embedded capture
// timestamp rather than the file modification time.
type ResolvedDate struct {
	Time         time.Time
	FromMetadata bool
}

// ParseCaptureDate parses a raw capture-date tag value.
func ParseCaptureDate(raw string) (time.Time, error) {
	return time.Parse(CaptureDateLayout, raw)
}

// DateSegments returns the year/month/day path segments for a date as
// unpadded decimal strings (month 3, not 03).
func DateSegments(t time.Time) [3]string {
	return [3]string{
		strconv.Itoa(t.Year()),
		strconv.Itoa(int(t.Month())),
		strconv.Itoa(t.Day()),
	}
}
