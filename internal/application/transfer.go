package application

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"phototransfer/internal/adapters/filesystem"
	"phototransfer/internal/domain"
	"phototransfer/internal/ports"
)

// TransferResult contains the counters of one completed run
type TransferResult struct {
	RunID       string
	Discovered  int
	Transferred int
	Failed      int
	Elapsed     time.Duration
}

// TransferCommand walks InputRoot and copies every file not yet recorded
// for OutputRoot into OutputRoot/year/month/day, renaming around occupied
// destination names and recording each completed copy in the ledger.
// Re-running it over an unchanged input transfers nothing.
type TransferCommand struct {
	fs     afero.Fs
	meta   ports.MetadataReader
	ledger ports.TransferLedger
	log    *logrus.Logger

	InputRoot  string
	OutputRoot string

	// Progress, when set, is called once per discovered file.
	Progress func()
}

// NewTransferCommand creates a new TransferCommand
func NewTransferCommand(fs afero.Fs, meta ports.MetadataReader, ledger ports.TransferLedger, log *logrus.Logger, inputRoot, outputRoot string) *TransferCommand {
	return &TransferCommand{
		fs:         fs,
		meta:       meta,
		ledger:     ledger,
		log:        log,
		InputRoot:  inputRoot,
		OutputRoot: outputRoot,
	}
}

// Validate checks that both roots are existing directories
func (c *TransferCommand) Validate() error {
	if c.InputRoot == "" {
		return &ValidationError{Field: "input", Message: "input path is required"}
	}
	if c.OutputRoot == "" {
		return &ValidationError{Field: "output", Message: "output path is required"}
	}
	if !filesystem.IsDir(c.fs, c.InputRoot) {
		return &ValidationError{Field: "input", Message: fmt.Sprintf("%s is not an existing directory", c.InputRoot)}
	}
	if !filesystem.IsDir(c.fs, c.OutputRoot) {
		return &ValidationError{Field: "output", Message: fmt.Sprintf("%s is not an existing directory", c.OutputRoot)}
	}
	return nil
}

// Execute runs the transfer. Files are processed strictly one after
// another; a failure on one file is logged and the run moves on. Only
// context cancellation aborts the run early.
func (c *TransferCommand) Execute(ctx context.Context) (*TransferResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &TransferResult{RunID: uuid.NewString()}
	resolver := NewDateResolver(c.fs, c.meta, c.log)

	c.log.Infof("### start parsing path: %s (run %s)", c.InputRoot, result.RunID)

	files, err := filesystem.ListFiles(c.fs, c.InputRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to list input files: %w", err)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.Discovered++
		if c.Progress != nil {
			c.Progress()
		}
		c.log.Infof("check file %s", path)

		done, err := c.ledger.AlreadyTransferred(path, c.OutputRoot)
		if err != nil {
			result.Failed++
			c.log.Errorf("failed to query ledger for %s: %v", path, err)
			continue
		}
		if done {
			continue
		}

		if err := c.transferOne(resolver, path, result.RunID); err != nil {
			result.Failed++
			c.log.Errorf("%v", err)
			continue
		}
		result.Transferred++
	}

	result.Elapsed = time.Since(start)
	c.log.Infof("### finished parsing path: %s", c.InputRoot)
	c.log.Infof("### checked %d files, copied %d files in %s", result.Discovered, result.Transferred, result.Elapsed)

	return result, nil
}

// transferOne runs the per-file pipeline: resolve the date, derive the
// dated destination directory, step past occupied names, copy, record.
func (c *TransferCommand) transferOne(resolver *DateResolver, path, runID string) error {
	resolved, err := resolver.Resolve(path)
	if err != nil {
		return err
	}
	c.log.Infof("select file %s date = %s metadata = %t",
		path, resolved.Time.Format(time.RFC3339), resolved.FromMetadata)

	destDir, err := filesystem.EnsureDateDir(c.fs, c.OutputRoot, resolved.Time)
	if err != nil {
		return &DestinationError{OriginalPath: path, Destination: c.OutputRoot, Err: err}
	}

	candidate := filepath.Join(destDir, filepath.Base(path))
	for {
		occupied, err := filesystem.Exists(c.fs, candidate)
		if err != nil {
			return &DestinationError{OriginalPath: path, Destination: candidate, Err: err}
		}
		if !occupied {
			break
		}
		next := domain.NextVersionedName(candidate)
		c.log.Warnf("file %s already exists in destination, will be renamed to %s", path, next)
		candidate = next
	}

	if err := filesystem.CopyFile(c.fs, path, candidate); err != nil {
		return &DestinationError{OriginalPath: path, Destination: candidate, Err: err}
	}

	err = c.ledger.Record(domain.TransferRecord{
		OriginalPath: path,
		CopyPath:     candidate,
		OutputRoot:   c.OutputRoot,
		RunID:        runID,
	})
	if err != nil {
		// The copy is already on disk; without a record a later run will
		// re-copy it under a versioned name.
		return fmt.Errorf("failed to record %s after copy to %s: %w", path, candidate, err)
	}

	c.log.Infof("copied file %s to %s", filepath.Base(path), destDir)
	return nil
}
