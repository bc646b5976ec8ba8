package application

import "fmt"

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DestinationError reports a per-file failure preparing or writing the
// destination. It aborts only the file it names, never the run; the file is
// not recorded, so a later run retries it.
type DestinationError struct {
	OriginalPath string
	Destination  string
	Err          error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("cannot transfer %s to %s: %v", e.OriginalPath, e.Destination, e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}
