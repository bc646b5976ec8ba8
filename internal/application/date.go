package application

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"phototransfer/internal/domain"
	"phototransfer/internal/ports"
)

// DateResolver determines the original date of a media file: the embedded
// capture date when present and well formed, the file modification time
// otherwise.
type DateResolver struct {
	fs   afero.Fs
	meta ports.MetadataReader
	log  *logrus.Logger
}

// NewDateResolver creates a new DateResolver
func NewDateResolver(fs afero.Fs, meta ports.MetadataReader, log *logrus.Logger) *DateResolver {
	return &DateResolver{fs: fs, meta: meta, log: log}
}

// Resolve never leaves a readable file dateless: an absent or malformed
// capture date falls back to the modification time, and a malformed value
// is additionally surfaced as a warning naming the file and the raw value.
// Only I/O errors on the file itself propagate.
func (r *DateResolver) Resolve(path string) (domain.ResolvedDate, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return domain.ResolvedDate{}, fmt.Errorf("failed to open %s: %w", path, err)
	}

	raw, ok := r.meta.CaptureDate(f)
	f.Close()

	if ok {
		t, err := domain.ParseCaptureDate(raw)
		if err == nil {
			return domain.ResolvedDate{Time: t, FromMetadata: true}, nil
		}
		r.log.Warnf("file %s has invalid capture date [%s]", path, raw)
	}

	info, err := r.fs.Stat(path)
	if err != nil {
		return domain.ResolvedDate{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return domain.ResolvedDate{Time: info.ModTime()}, nil
}
