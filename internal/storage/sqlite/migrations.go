package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Item ids are only unique within a session (receipt imports restart at "1").
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    gst REAL NOT NULL,
    service_charge REAL NOT NULL,
    apply_gst INTEGER NOT NULL,
    apply_service_charge INTEGER NOT NULL,
    discount_type TEXT NOT NULL,
    discount_value REAL NOT NULL,
    discount_before_tax INTEGER NOT NULL,
    discount_enabled INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
    session_id TEXT NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (session_id, name),
    FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS items (
    session_id TEXT NOT NULL,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    amount REAL NOT NULL,
    PRIMARY KEY (session_id, id),
    FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS item_assignments (
    session_id TEXT NOT NULL,
    item_id TEXT NOT NULL,
    participant TEXT NOT NULL,
    PRIMARY KEY (session_id, item_id, participant),
    FOREIGN KEY (session_id, item_id) REFERENCES items(session_id, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_participants_session_id ON participants(session_id);
CREATE INDEX IF NOT EXISTS idx_items_session_id ON items(session_id, position);
CREATE INDEX IF NOT EXISTS idx_item_assignments_item ON item_assignments(session_id, item_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
