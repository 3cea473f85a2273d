// Package database defines the narrow storage surface the rest of the
// service programs against. Repositories and seeders see these interfaces
// only; the pgx-backed implementation lives in the postgres subpackage.
package database

import (
	"context"
	"database/sql"
)

// Querier is the query surface shared by the pool and open transactions.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

type DB interface {
	Querier

	Ping(ctx context.Context) error
	Close() error
	Begin(ctx context.Context) (Tx, error)

	// SQLDB exposes the database/sql view of the same pool for callers that
	// need it, such as the migration runner.
	SQLDB() *sql.DB
}

type Tx interface {
	Querier

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
