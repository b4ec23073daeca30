package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:studio.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/studio?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS quizzes (
  id             TEXT PRIMARY KEY,
  title          TEXT NOT NULL,
  category       TEXT NOT NULL,
  passage        TEXT NOT NULL,
  explanation    TEXT NOT NULL DEFAULT '',
  footnote       TEXT NOT NULL DEFAULT '',
  source         TEXT NOT NULL DEFAULT '',
  unit           TEXT NOT NULL DEFAULT '',
  paragraph      TEXT NOT NULL DEFAULT '',
  positions_json TEXT NOT NULL,
  choices_json   TEXT NOT NULL,
  created_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quizzes_category ON quizzes(category);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS quizzes (
  id             TEXT PRIMARY KEY,
  title          TEXT NOT NULL,
  category       TEXT NOT NULL,
  passage        TEXT NOT NULL,
  explanation    TEXT NOT NULL DEFAULT '',
  footnote       TEXT NOT NULL DEFAULT '',
  source         TEXT NOT NULL DEFAULT '',
  unit           TEXT NOT NULL DEFAULT '',
  paragraph      TEXT NOT NULL DEFAULT '',
  positions_json TEXT NOT NULL,
  choices_json   TEXT NOT NULL,
  created_at     BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quizzes_category ON quizzes(category);
`
