package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"tally/internal/colors"
	"tally/internal/config"
	"tally/internal/storage/sqlite"
)

const (
	// BackendCSV selects the file-based csv storage.
	BackendCSV = "csv"
	// BackendSQLite selects SQLite-backed storage.
	BackendSQLite = "sqlite"

	budgetDBFileName = "tally.db"
)

var (
	_ Store = (*CSVStore)(nil)
	_ Store = (*sqlite.Storage)(nil)
)

// NewFromConfig creates a storage backend based on configuration.
func NewFromConfig() (Store, error) {
	config.Load()
	return NewForBackend(config.Get("storage_backend", BackendCSV), config.Get("state_dir", ""))
}

// NewForBackend creates a storage backend by name, rooted at stateDir.
// Backend failures fall back to csv with a warning rather than abort.
func NewForBackend(backend, stateDir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendCSV:
		return NewCSVStore(stateDir)
	case BackendSQLite:
		st, err := sqlite.New(filepath.Join(stateDir, budgetDBFileName))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to csv: %v", err))
			return NewCSVStore(stateDir)
		}
		return st, nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to csv", backend))
		return NewCSVStore(stateDir)
	}
}
