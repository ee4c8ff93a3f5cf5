package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the catalog snapshot database and ensures its schema.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every new connection to ":memory:" is a separate empty database.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Last catalog successfully loaded from the remote API
CREATE TABLE IF NOT EXISTS games(
  position INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  rating NUMERIC NOT NULL DEFAULT 0,
  release_date TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_games_title ON games(LOWER(title));

CREATE TABLE IF NOT EXISTS snapshot_meta(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  source TEXT NOT NULL,
  taken_at TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}
