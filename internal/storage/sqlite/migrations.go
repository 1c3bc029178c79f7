package sqlite

import "database/sql"

// schema sets up the database tables. It runs on every open so tables always exist.
// Amounts are stored as decimal text to keep exact values.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    username TEXT PRIMARY KEY,
    credential_hash TEXT NOT NULL,
    owner TEXT NOT NULL,
    initial_balance TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
    username TEXT NOT NULL,
    seq INTEGER NOT NULL,
    amount TEXT NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (username, seq),
    FOREIGN KEY (username) REFERENCES accounts(username) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_entries_username ON entries(username);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
