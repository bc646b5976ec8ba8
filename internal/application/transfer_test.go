package application

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"

	"phototransfer/internal/adapters/sqlite"
	"phototransfer/internal/ports"
)

// stubMetadata treats file content starting with "EXIF:" as carrying that
// raw capture-date value, mirroring the extract(bytes) -> optional<string>
// collaborator contract without needing real image fixtures.
type stubMetadata struct{}

func (stubMetadata) CaptureDate(r io.Reader) (string, bool) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", false
	}
	if content, found := strings.CutPrefix(string(b), "EXIF:"); found {
		return content, true
	}
	return "", false
}

func setupTransfer(t *testing.T) (afero.Fs, ports.TransferLedger, *logrus.Logger, *test.Hook) {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/in", 0755); err != nil {
		t.Fatalf("failed to create input root: %v", err)
	}
	if err := fs.MkdirAll("/out", 0755); err != nil {
		t.Fatalf("failed to create output root: %v", err)
	}

	ledger := sqlite.NewLedger()
	if err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db")); err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	t.Cleanup(func() { ledger.Close() })

	logger, hook := test.NewNullLogger()
	return fs, ledger, logger, hook
}

func writeSource(t *testing.T, fs afero.Fs, path, content string, mtime time.Time) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	if err := fs.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set mtime on %s: %v", path, err)
	}
}

func runTransfer(t *testing.T, fs afero.Fs, ledger ports.TransferLedger, logger *logrus.Logger) *TransferResult {
	t.Helper()
	cmd := NewTransferCommand(fs, stubMetadata{}, ledger, logger, "/in", "/out")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	return result
}

func mustExist(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	if ok, _ := afero.Exists(fs, path); !ok {
		t.Errorf("expected %s to exist", path)
	}
}

func TestTransfer_EndToEnd(t *testing.T) {
	fs, ledger, logger, _ := setupTransfer(t)

	writeSource(t, fs, "/in/a/img1.jpg", "EXIF:2001:11:19 14:00:00", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	writeSource(t, fs, "/in/b/img1.jpg", "no metadata here", time.Date(2010, 3, 5, 9, 0, 0, 0, time.UTC))

	result := runTransfer(t, fs, ledger, logger)

	if result.Discovered != 2 || result.Transferred != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 discovered, 2 transferred, 0 failed", result)
	}

	// Capture date wins for a/img1.jpg, modification time for b/img1.jpg.
	mustExist(t, fs, "/out/2001/11/19/img1.jpg")
	mustExist(t, fs, "/out/2010/3/5/img1.jpg")

	for _, original := range []string{"/in/a/img1.jpg", "/in/b/img1.jpg"} {
		done, err := ledger.AlreadyTransferred(original, "/out")
		if err != nil {
			t.Fatalf("AlreadyTransferred failed: %v", err)
		}
		if !done {
			t.Errorf("%s missing from ledger", original)
		}
	}
}

func TestTransfer_Idempotent(t *testing.T) {
	fs, ledger, logger, _ := setupTransfer(t)

	writeSource(t, fs, "/in/a/img1.jpg", "EXIF:2001:11:19 14:00:00", time.Now())
	writeSource(t, fs, "/in/b/img2.jpg", "plain", time.Date(2010, 3, 5, 0, 0, 0, 0, time.UTC))

	first := runTransfer(t, fs, ledger, logger)
	if first.Transferred != 2 {
		t.Fatalf("first run transferred %d files, want 2", first.Transferred)
	}

	before := countOutputFiles(t, fs)

	second := runTransfer(t, fs, ledger, logger)
	if second.Discovered != 2 {
		t.Errorf("second run discovered %d files, want 2", second.Discovered)
	}
	if second.Transferred != 0 {
		t.Errorf("second run transferred %d files, want 0", second.Transferred)
	}
	if after := countOutputFiles(t, fs); after != before {
		t.Errorf("output tree changed on second run: %d -> %d files", before, after)
	}
}

func countOutputFiles(t *testing.T, fs afero.Fs) int {
	t.Helper()
	count := 0
	err := afero.Walk(fs, "/out", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk output: %v", err)
	}
	return count
}

func TestTransfer_CollisionChain(t *testing.T) {
	fs, ledger, logger, hook := setupTransfer(t)

	// Three distinct files sharing a name and, via mtime fallback, a date.
	date := time.Date(2001, 11, 19, 12, 0, 0, 0, time.UTC)
	writeSource(t, fs, "/in/a/photo.jpg", "first", date)
	writeSource(t, fs, "/in/b/photo.jpg", "second", date)
	writeSource(t, fs, "/in/c/photo.jpg", "third", date)

	result := runTransfer(t, fs, ledger, logger)
	if result.Transferred != 3 {
		t.Fatalf("transferred %d files, want 3", result.Transferred)
	}

	mustExist(t, fs, "/out/2001/11/19/photo.jpg")
	mustExist(t, fs, "/out/2001/11/19/photo(1).jpg")
	mustExist(t, fs, "/out/2001/11/19/photo(2).jpg")

	var warned int
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "will be renamed") {
			warned++
		}
	}
	// One warning for the second file, two for the third stepping past
	// photo.jpg and photo(1).jpg.
	if warned != 3 {
		t.Errorf("got %d rename warnings, want 3", warned)
	}
}

func TestTransfer_MalformedMetadataFallsBackToModTime(t *testing.T) {
	fs, ledger, logger, hook := setupTransfer(t)

	mtime := time.Date(2010, 3, 5, 9, 0, 0, 0, time.UTC)
	writeSource(t, fs, "/in/bad.jpg", "EXIF:19.11.2001", mtime)

	result := runTransfer(t, fs, ledger, logger)
	if result.Transferred != 1 || result.Failed != 0 {
		t.Fatalf("result = %+v, want 1 transferred, 0 failed", result)
	}

	mustExist(t, fs, "/out/2010/3/5/bad.jpg")

	var found bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel &&
			strings.Contains(entry.Message, "/in/bad.jpg") &&
			strings.Contains(entry.Message, "19.11.2001") {
			found = true
		}
	}
	if !found {
		t.Error("expected a warning naming the file and the malformed value")
	}
}

func TestTransfer_PartialDestinationGetsVersioned(t *testing.T) {
	fs, ledger, logger, _ := setupTransfer(t)

	date := time.Date(2001, 11, 19, 12, 0, 0, 0, time.UTC)
	writeSource(t, fs, "/in/a/img.jpg", "fresh bytes", date)

	// An unrecorded file already sits at the natural destination, e.g.
	// from an interrupted earlier run. It must never be overwritten.
	if err := afero.WriteFile(fs, "/out/2001/11/19/img.jpg", []byte("partial"), 0644); err != nil {
		t.Fatalf("failed to plant existing file: %v", err)
	}

	result := runTransfer(t, fs, ledger, logger)
	if result.Transferred != 1 {
		t.Fatalf("transferred %d files, want 1", result.Transferred)
	}

	planted, err := afero.ReadFile(fs, "/out/2001/11/19/img.jpg")
	if err != nil {
		t.Fatalf("failed to read planted file: %v", err)
	}
	if string(planted) != "partial" {
		t.Error("existing destination file was overwritten")
	}
	mustExist(t, fs, "/out/2001/11/19/img(1).jpg")
}

func TestTransfer_UnreadableFileIsLoggedAndSkipped(t *testing.T) {
	fs, ledger, logger, hook := setupTransfer(t)

	writeSource(t, fs, "/in/good.jpg", "EXIF:2001:11:19 14:00:00", time.Now())
	writeSource(t, fs, "/in/doomed.jpg", "whatever", time.Now())

	// Wrap the filesystem so the doomed file fails to open after discovery.
	cmd := NewTransferCommand(failingOpenFs{fs, "/in/doomed.jpg"}, stubMetadata{}, ledger, logger, "/in", "/out")
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Discovered != 2 || result.Transferred != 1 || result.Failed != 1 {
		t.Errorf("result = %+v, want 2 discovered, 1 transferred, 1 failed", result)
	}

	var logged bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel && strings.Contains(entry.Message, "/in/doomed.jpg") {
			logged = true
		}
	}
	if !logged {
		t.Error("expected an error entry naming the unreadable file")
	}

	done, err := ledger.AlreadyTransferred("/in/doomed.jpg", "/out")
	if err != nil {
		t.Fatalf("AlreadyTransferred failed: %v", err)
	}
	if done {
		t.Error("failed file must not be recorded, so a later run retries it")
	}
}

func TestTransfer_ValidateRejectsMissingDirs(t *testing.T) {
	fs, ledger, logger, _ := setupTransfer(t)

	tests := []struct {
		name   string
		input  string
		output string
	}{
		{name: "missing input", input: "/nope", output: "/out"},
		{name: "missing output", input: "/in", output: "/nope"},
		{name: "input is a file", input: "/in/file.jpg", output: "/out"},
		{name: "empty input", input: "", output: "/out"},
	}
	writeSource(t, fs, "/in/file.jpg", "x", time.Now())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewTransferCommand(fs, stubMetadata{}, ledger, logger, tt.input, tt.output)
			if _, err := cmd.Execute(context.Background()); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestTransfer_EmptyInputCompletesCleanly(t *testing.T) {
	fs, ledger, logger, _ := setupTransfer(t)

	result := runTransfer(t, fs, ledger, logger)
	if result.Discovered != 0 || result.Transferred != 0 || result.Failed != 0 {
		t.Errorf("result = %+v, want all zero counters", result)
	}
}

func TestTransfer_SecondRootTransfersAgain(t *testing.T) {
	fs, ledger, logger, _ := setupTransfer(t)
	if err := fs.MkdirAll("/backup", 0755); err != nil {
		t.Fatalf("failed to create second root: %v", err)
	}

	writeSource(t, fs, "/in/img.jpg", "EXIF:2001:11:19 14:00:00", time.Now())

	first := runTransfer(t, fs, ledger, logger)
	if first.Transferred != 1 {
		t.Fatalf("first run transferred %d files, want 1", first.Transferred)
	}

	cmd := NewTransferCommand(fs, stubMetadata{}, ledger, logger, "/in", "/backup")
	second, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute into second root failed: %v", err)
	}
	if second.Transferred != 1 {
		t.Errorf("second root transferred %d files, want 1", second.Transferred)
	}
	mustExist(t, fs, "/backup/2001/11/19/img.jpg")
}

// failingOpenFs denies Open on one path, simulating a file that is listed
// but unreadable.
type failingOpenFs struct {
	afero.Fs
	deny string
}

func (f failingOpenFs) Open(name string) (afero.File, error) {
	if name == f.deny {
		return nil, fmt.Errorf("open %s: permission denied", name)
	}
	return f.Fs.Open(name)
}
