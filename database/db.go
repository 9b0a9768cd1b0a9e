package database

import (
	"context"
	"database/sql"
)

// Database represents a connection to an application database
type Database interface {
	// QueryContext executes a query that returns rows
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}
