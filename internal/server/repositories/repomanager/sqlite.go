package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"impulselog/internal/dbx"
	"impulselog/internal/server/migrations"
	"impulselog/internal/server/repositories/entries"
	"impulselog/internal/server/repositories/users"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends repositories bound to an SQLite database.
// It is the default backend when the DSN is a plain file path, and the one
// the tests run against (with an in-memory DSN).
type SQLiteRepositoryManager struct {
	db *sql.DB
}

func NewSQLiteRepositoryManager(dsn string) (*SQLiteRepositoryManager, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// modernc.org/sqlite serializes access per connection; a single
	// connection keeps in-memory databases from vanishing between
	// pool checkouts and avoids SQLITE_BUSY under write contention.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	return &SQLiteRepositoryManager{db: db}, nil
}

func (m *SQLiteRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

func (m *SQLiteRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, m.db, "sqlite")
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}
