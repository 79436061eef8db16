package pg

import (
	"database/sql"
	"errors"

	"github.com/kbenedict/customer-orders/pkg/logger"
	_ "github.com/lib/pq"
)

// ConnectAdmin opens a plain SQL connection against the server's
// maintenance database. Statements issued through it are visible
// immediately; there is no transaction wrapping. Returns nil and logs
// when the server is unreachable.
func ConnectAdmin(cfg Config) *sql.DB {
	admin := cfg
	admin.Database = maintenanceDatabase
	db, err := newSqlConnection(admin)
	if err != nil {
		logger.Error("bootstrap: failed to open admin connection", "error", err)
		return nil
	}
	if err := db.Ping(); err != nil {
		logger.Error("bootstrap: failed to reach postgres server", "error", err)
		db.Close()
		return nil
	}
	return db
}

// EnsureDatabase creates the target database when it is missing. The
// database name comes from configuration, not request input, so it is
// interpolated as a quoted identifier. Failures are logged and swallowed.
func EnsureDatabase(cfg Config) {
	admin := ConnectAdmin(cfg)
	if admin == nil {
		return
	}
	defer admin.Close()

	var exists int
	err := admin.QueryRow("SELECT 1 FROM pg_database WHERE datname = $1", cfg.Database).Scan(&exists)
	if err == nil {
		logger.Info("bootstrap: database already exists", "database", cfg.Database)
		return
	}
	if !missingFromCatalog(err) {
		logger.Error("bootstrap: failed to query database catalog", "error", err)
		return
	}

	if _, err := admin.Exec(`CREATE DATABASE "` + cfg.Database + `"`); err != nil {
		logger.Error("bootstrap: failed to create database", "database", cfg.Database, "error", err)
		return
	}
	logger.Info("bootstrap: database created", "database", cfg.Database)
}

// missingFromCatalog reports whether a catalog lookup came back with no
// row, as opposed to failing. Drivers may wrap the sentinel.
func missingFromCatalog(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
