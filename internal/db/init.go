package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Email has no UNIQUE constraint on purpose: uniqueness is an
// application-level pre-check, matching the documented read-then-write
// behavior of signup.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    username TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    avatar JSONB,
    salt TEXT NOT NULL,
    hash TEXT NOT NULL,
    token TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS offers (
    id TEXT PRIMARY KEY,
    product_name TEXT NOT NULL,
    product_description TEXT NOT NULL DEFAULT '',
    product_price DOUBLE PRECISION NOT NULL DEFAULT 0,
    brand TEXT NOT NULL DEFAULT '',
    size TEXT NOT NULL DEFAULT '',
    condition TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    product_image TEXT NOT NULL DEFAULT '',
    owner_id TEXT REFERENCES users(id)
);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
