package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"phototransfer/internal/domain"
	"phototransfer/internal/ports"
)

// Ledger implements ports.TransferLedger on SQLite. Each insert commits on
// its own, so a crash can lose at most the file being copied, never prior
// history.
type Ledger struct {
	db   *sql.DB
	path string
}

// Ensure Ledger implements TransferLedger
var _ ports.TransferLedger = (*Ledger)(nil)

// NewLedger creates a new SQLite ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Open opens the ledger database at path, creating it with the required
// schema when absent.
func (l *Ledger) Open(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrLedgerUnavailable, err)
	}

	// Pragmas and schema in a single batch. Synchronous FULL keeps every
	// insert durable on its own.
	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = FULL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS transfers (
			original_path  TEXT NOT NULL,
			copy_path      TEXT NOT NULL,
			output_root    TEXT NOT NULL,
			run_id         TEXT NOT NULL,
			transferred_at TEXT NOT NULL,
			PRIMARY KEY (original_path, output_root)
		);
		CREATE INDEX IF NOT EXISTS idx_transfers_original ON transfers(original_path);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("%w: %v", ports.ErrLedgerUnavailable, err)
	}

	l.db = db
	l.path = path
	return nil
}

// Close closes the database connection
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// AlreadyTransferred reports whether originalPath has a recorded copy under
// outputRoot.
func (l *Ledger) AlreadyTransferred(originalPath, outputRoot string) (bool, error) {
	var n int
	err := l.db.QueryRow(`
		SELECT COUNT(*) FROM transfers
		WHERE original_path = ? AND output_root = ?
	`, originalPath, outputRoot).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query ledger: %w", err)
	}
	return n > 0, nil
}

// Record inserts rec, stamping it with the current time when TransferredAt
// is zero. A row already present for the same source and output root
// reports ports.ErrDuplicateRecord.
func (l *Ledger) Record(rec domain.TransferRecord) error {
	if rec.TransferredAt.IsZero() {
		rec.TransferredAt = time.Now()
	}

	_, err := l.db.Exec(`
		INSERT INTO transfers (original_path, copy_path, output_root, run_id, transferred_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.OriginalPath, rec.CopyPath, rec.OutputRoot, rec.RunID,
		rec.TransferredAt.Format(time.RFC3339))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%s under %s: %w", rec.OriginalPath, rec.OutputRoot, ports.ErrDuplicateRecord)
		}
		return fmt.Errorf("failed to record transfer: %w", err)
	}
	return nil
}

// History returns up to limit records, newest first, across all roots.
func (l *Ledger) History(limit int) ([]domain.TransferRecord, error) {
	rows, err := l.db.Query(`
		SELECT original_path, copy_path, output_root, run_id, transferred_at
		FROM transfers
		ORDER BY transferred_at DESC, original_path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return scanRecords(rows)
}

// HistoryFor returns every record of one source file, newest first.
func (l *Ledger) HistoryFor(originalPath string) ([]domain.TransferRecord, error) {
	rows, err := l.db.Query(`
		SELECT original_path, copy_path, output_root, run_id, transferred_at
		FROM transfers
		WHERE original_path = ?
		ORDER BY transferred_at DESC
	`, originalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return scanRecords(rows)
}

// Transfers returns every record whose destination is under outputRoot.
func (l *Ledger) Transfers(outputRoot string) ([]domain.TransferRecord, error) {
	rows, err := l.db.Query(`
		SELECT original_path, copy_path, output_root, run_id, transferred_at
		FROM transfers
		WHERE output_root = ?
		ORDER BY copy_path
	`, outputRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	return scanRecords(rows)
}

// Stats summarizes the transfers recorded for outputRoot. Year buckets come
// from the first path segment of each copy path below the root.
func (l *Ledger) Stats(outputRoot string) (*domain.LedgerStats, error) {
	records, err := l.Transfers(outputRoot)
	if err != nil {
		return nil, err
	}

	stats := &domain.LedgerStats{OutputRoot: outputRoot}
	byYear := make(map[string]int)

	for _, rec := range records {
		stats.TotalTransfers++
		if stats.FirstTransfer.IsZero() || rec.TransferredAt.Before(stats.FirstTransfer) {
			stats.FirstTransfer = rec.TransferredAt
		}
		if rec.TransferredAt.After(stats.LastTransfer) {
			stats.LastTransfer = rec.TransferredAt
		}

		rel, err := filepath.Rel(outputRoot, rec.CopyPath)
		if err != nil {
			continue
		}
		if parts := strings.Split(rel, string(filepath.Separator)); len(parts) > 1 {
			byYear[parts[0]]++
		}
	}

	for year, count := range byYear {
		stats.ByYear = append(stats.ByYear, domain.YearCount{Year: year, Count: count})
	}
	sort.Slice(stats.ByYear, func(i, j int) bool {
		return stats.ByYear[i].Year < stats.ByYear[j].Year
	})

	return stats, nil
}

func scanRecords(rows *sql.Rows) ([]domain.TransferRecord, error) {
	defer rows.Close()

	var records []domain.TransferRecord
	for rows.Next() {
		var rec domain.TransferRecord
		var stamp string
		if err := rows.Scan(&rec.OriginalPath, &rec.CopyPath, &rec.OutputRoot, &rec.RunID, &stamp); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transfer timestamp %q: %w", stamp, err)
		}
		rec.TransferredAt = t
		records = append(records, rec)
	}

	return records, rows.Err()
}
