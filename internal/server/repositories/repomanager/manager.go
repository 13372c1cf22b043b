// Package repomanager wires repository constructors, the database connection
// and schema migrations (via goose) behind a single interface. The concrete
// manager is picked from the DSN: postgres:// and postgresql:// DSNs get the
// pgx-backed manager, anything else is treated as an SQLite file path.
package repomanager

import (
	"context"
	"database/sql"
	"strings"

	"impulselog/internal/dbx"
	"impulselog/internal/server/repositories/entries"
	"impulselog/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
	Close() error
}

// NewRepositoryManager opens the database the DSN points at and returns the
// matching manager.
func NewRepositoryManager(dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresRepositoryManager(dsn)
	}
	return NewSQLiteRepositoryManager(dsn)
}
