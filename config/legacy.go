package config

import (
	"database/sql"
	"fmt"
	"os"
)

// NewLegacyDB opens the legacy ERP source. The driver is selected by env so
// deployments can link whichever database/sql driver matches their legacy
// engine (registered via a blank import in the custom package).
func NewLegacyDB() (*sql.DB, error) {
	driver := os.Getenv("LEGACY_DRIVER")
	if driver == "" {
		driver = "firebirdsql"
	}
	dsn := os.Getenv("LEGACY_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("LEGACY_DSN not set")
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open legacy source: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("legacy source unreachable: %w", err)
	}
	return db, nil
}
