package domain

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var versionSuffix = regexp.MustCompile(`\((\d+)\)$`)

// NextVersionedName returns the next candidate path for a destination that
// is already occupied. A trailing "(n)" on the base name is incremented,
// otherwise "(1)" is appended before the extension. The extension is the
// substring after the final dot, empty when there is none.
//
// The function is pure: it never consults the filesystem, so callers must
// re-check existence of the returned path and call it again if needed.
func NextVersionedName(path string) string {
	dir, name := filepath.Split(path)

	ext := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i:]
		name = name[:i]
	}

	version := 1
	if m := versionSuffix.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			version = n + 1
			name = name[:len(name)-len(m[0])]
		}
	}

	return filepath.Join(dir, name+"("+strconv.Itoa(version)+")"+ext)
}
