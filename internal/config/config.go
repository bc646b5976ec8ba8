package config

import "os"

const (
	DefaultDatabaseName = "photo-transfer.db"
	DefaultLogDir       = "."
)

// DatabasePath returns the ledger path from the PHOTOTRANSFER_DB env var,
// falling back to DefaultDatabaseName in the working directory.
func DatabasePath() string {
	if env := os.Getenv("PHOTOTRANSFER_DB"); env != "" {
		return env
	}
	return DefaultDatabaseName
}

// LogDir returns the log directory from the PHOTOTRANSFER_LOG_DIR env var,
// falling back to the working directory.
func LogDir() string {
	if env := os.Getenv("PHOTOTRANSFER_LOG_DIR"); env != "" {
		return env
	}
	return DefaultLogDir
}
