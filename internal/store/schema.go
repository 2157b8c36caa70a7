package store

import (
	"database/sql"
	"fmt"
)

// DefaultDimension matches the nomic-embed-text embedding size.
const DefaultDimension = 768

const ddl = `
PRAGMA journal_mode=WAL;

CREATE TABLE IF NOT EXISTS records (
    id           TEXT NOT NULL UNIQUE,
    content      TEXT NOT NULL,
    source       TEXT NOT NULL DEFAULT '',
    type         TEXT NOT NULL DEFAULT '',
    chunk_id     INTEGER NOT NULL DEFAULT 0,
    total_chunks INTEGER NOT NULL DEFAULT 0,
    phase        TEXT NOT NULL DEFAULT '',
    element_id   TEXT NOT NULL DEFAULT '',
    element_type TEXT NOT NULL DEFAULT '',
    element_name TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_records_type ON records(type, element_type);

CREATE VIRTUAL TABLE IF NOT EXISTS vec_records USING vec0(
    record_id INTEGER PRIMARY KEY,
    embedding float[%d]
);
`

// Init creates the schema tables if they don't exist.
func Init(db *sql.DB, dimension int) error {
	_, err := db.Exec(fmt.Sprintf(ddl, dimension))
	return err
}
