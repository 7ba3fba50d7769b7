package db

import "database/sql"

// DB wraps the shared *sql.DB so store code depends on one internal type.
type DB struct {
	*sql.DB
}
