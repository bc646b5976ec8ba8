package ports

import (
	"errors"

	"phototransfer/internal/domain"
)

// Sentinel errors for ledger conditions
var (
	// ErrLedgerUnavailable means the persisted store cannot be opened or
	// initialized. This is fatal for a run: no progress can be tracked.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrDuplicateRecord means a record already exists for the same source
	// file and output root.
	ErrDuplicateRecord = errors.New("transfer already recorded")
)

// TransferLedger is the persisted record of source to destination transfers.
// A source file is tracked once per output root, so the same file may be
// legitimately transferred to several distinct roots. Implementations must
// commit every mutating call durably before returning.
type TransferLedger interface {
	// Open opens the store at path, creating it with the required schema
	// when absent. Failure wraps ErrLedgerUnavailable.
	Open(path string) error
	Close() error

	// AlreadyTransferred reports whether originalPath has a recorded copy
	// under outputRoot.
	AlreadyTransferred(originalPath, outputRoot string) (bool, error)

	// Record appends rec, stamping it with the current time when
	// TransferredAt is zero. A row already present for the same source and
	// output root reports ErrDuplicateRecord.
	Record(rec domain.TransferRecord) error

	// History returns up to limit records, newest first, across all roots.
	History(limit int) ([]domain.TransferRecord, error)

	// HistoryFor returns every record of one source file, newest first.
	HistoryFor(originalPath string) ([]domain.TransferRecord, error)

	// Transfers returns every record whose destination is under outputRoot.
	Transfers(outputRoot string) ([]domain.TransferRecord, error)

	// Stats summarizes the transfers recorded for outputRoot.
	Stats(outputRoot string) (*domain.LedgerStats, error)
}
