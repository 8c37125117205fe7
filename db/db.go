// Package db provides the optional Postgres connection used by the chat
// transcript recorder, plus its versioned schema migrations. The byline
// pipeline itself keeps no state; when DB_DSN is unset the service runs
// without any database.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx postgres driver registered as 'pgx'
)

// Connect opens a Postgres connection for the given DSN.
func Connect(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("db: empty DSN")
	}
	database, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	database.SetMaxOpenConns(8)
	database.SetMaxIdleConns(4)
	return database, nil
}
