package domain

import "time"

// TransferRecord is one row of the transfer ledger: a source file that was
// copied into an output root, with the destination path actually written
// after collision resolution. Records are created once, when a copy
// completes, and never mutated.
type TransferRecord struct {
	OriginalPath  string
	CopyPath      string
	OutputRoot    string
	RunID         string
	TransferredAt time.Time
}

// YearCount is the number of transfers whose destination falls under one
// year directory of an output root.
type YearCount struct {
	Year  string
	Count int
}

// LedgerStats summarizes the transfers recorded for one output root.
type LedgerStats struct {
	OutputRoot     string
	TotalTransfers int
	FirstTransfer  time.Time
	LastTransfer   time.Time
	ByYear         []YearCount
}
