package core

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/store-ratings/desktop/internal/auth"
)

const sessionDBFile = "store_ratings.db"

// SessionDB persists the current session in a local SQLite database so a
// login survives application restarts. It implements auth.SessionStore and
// holds at most one row.
type SessionDB struct {
	dbFile string
	conn   *sql.DB
}

// NewSessionDB prepares a session store under dataDir. An empty dataDir
// falls back to ~/.store-ratings.
func NewSessionDB(dataDir string) (*SessionDB, error) {
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".store-ratings")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &SessionDB{
		dbFile: filepath.Join(dataDir, sessionDBFile),
	}, nil
}

// Connect opens the database and prepares the schema.
func (db *SessionDB) Connect() error {
	conn, err := sql.Open("sqlite3", db.dbFile)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db.conn = conn

	if err := db.initDatabase(); err != nil {
		return err
	}
	return db.checkAndUpdateSchema()
}

func (db *SessionDB) initDatabase() error {
	query := `
    CREATE TABLE IF NOT EXISTS session (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        token TEXT NOT NULL,
        role TEXT NOT NULL
    )`
	_, err := db.conn.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

func (db *SessionDB) checkAndUpdateSchema() error {
	query := "PRAGMA table_info(session)"
	rows, err := db.conn.Query(query)
	if err != nil {
		return fmt.Errorf("failed to fetch table info: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("failed to scan table info: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read table info: %w", err)
	}

	if !columns["created_at"] {
		_, err := db.conn.Exec(`
        ALTER TABLE session
        ADD COLUMN created_at TEXT
        `)
		if err != nil {
			return fmt.Errorf("failed to add created_at column: %w", err)
		}
	}

	return nil
}

// Login stores the session, replacing any previous one.
func (db *SessionDB) Login(token, role string) error {
	query := `
    INSERT OR REPLACE INTO session (id, token, role, created_at)
    VALUES (1, ?, ?, ?)`
	_, err := db.conn.Exec(query, token, role, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Logout deletes the stored session. Deleting when nothing is stored is a
// no-op.
func (db *SessionDB) Logout() error {
	_, err := db.conn.Exec("DELETE FROM session")
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the persisted session, or ok=false when the user is not
// logged in.
func (db *SessionDB) Current() (*auth.Session, bool, error) {
	row := db.conn.QueryRow("SELECT token, role FROM session WHERE id = 1")

	var session auth.Session
	err := row.Scan(&session.Token, &session.Role)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, true, nil
}

// Close releases the underlying database handle.
func (db *SessionDB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}
