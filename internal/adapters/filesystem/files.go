package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"phototransfer/internal/domain"
)

// ListFiles walks root and returns every regular file underneath it in walk
// order. Entries that cannot be read are skipped rather than aborting the
// whole walk.
func ListFiles(fs afero.Fs, root string) ([]string, error) {
	var files []string

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

// EnsureDateDir builds root/<year>/<month>/<day> for date, creating each
// missing segment in order, and returns the leaf directory. Segments that
// already exist as directories are fine; a segment occupied by a
// non-directory is an error.
func EnsureDateDir(fs afero.Fs, root string, date time.Time) (string, error) {
	path := root
	for _, segment := range domain.DateSegments(date) {
		path = filepath.Join(path, segment)

		info, err := fs.Stat(path)
		switch {
		case err == nil && info.IsDir():
			continue
		case err == nil:
			return "", fmt.Errorf("%s exists and is not a directory", path)
		case os.IsNotExist(err):
			if err := fs.Mkdir(path, 0755); err != nil {
				return "", fmt.Errorf("failed to create %s: %w", path, err)
			}
		default:
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}
	return path, nil
}

// CopyFile copies src to dst byte for byte and carries the source
// modification time over to the copy.
func CopyFile(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := fs.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	return fs.Chtimes(dst, time.Now(), info.ModTime())
}

// Exists reports whether any filesystem entry is present at path.
func Exists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether path exists and is a directory.
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}
