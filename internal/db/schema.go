package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// history.item_id intentionally has no foreign key: history entries must
// survive deletion of the item they reference.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    quantity    INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    image       TEXT,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_created_at ON items(created_at DESC);

CREATE TABLE IF NOT EXISTS history (
    id         TEXT PRIMARY KEY,
    item_id    TEXT NOT NULL,
    item_name  TEXT NOT NULL,
    action     TEXT NOT NULL CHECK (action IN ('add', 'remove', 'edit')),
    quantity   INTEGER NOT NULL CHECK (quantity >= 0),
    requester  TEXT,
    timestamp  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp DESC);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
