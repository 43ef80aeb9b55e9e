// Package history provides SQLite-backed persistence of chat session
// transcripts. Each chat session records its messages (user, assistant,
// and tool results) so past conversations can be reviewed with
// "llmsh history".
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists session transcripts.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the transcript database location:
// ~/.llmsh/history.db
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".llmsh", "history.db")
	}
	return filepath.Join(home, ".llmsh", "history.db")
}

// Open opens (creating as needed) the transcript store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			started INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS messages (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id),
			at         INTEGER NOT NULL,
			role       TEXT NOT NULL,
			content    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	`)
	return err
}

// BeginSession records a new session and returns its id.
func (s *Store) BeginSession(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (started) VALUES (?)`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("begin session: %w", err)
	}
	return res.LastInsertId()
}

// Append records one message in a session.
func (s *Store) Append(ctx context.Context, sessionID int64, role, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, at, role, content) VALUES (?, ?, ?, ?)`,
		sessionID, time.Now().Unix(), role, content)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Session summarises one recorded session.
type Session struct {
	ID       int64
	Started  time.Time
	Messages int
}

// Recent returns the most recent sessions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.started, COUNT(m.id)
		FROM sessions s LEFT JOIN messages m ON m.session_id = s.id
		GROUP BY s.id ORDER BY s.started DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var started int64
		if err := rows.Scan(&sess.ID, &started, &sess.Messages); err != nil {
			return nil, err
		}
		sess.Started = time.Unix(started, 0)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Message is one transcript entry.
type Message struct {
	Role    string
	Content string
	At      time.Time
}

// Messages returns a session's transcript in order.
func (s *Store) Messages(ctx context.Context, sessionID int64) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, at FROM messages
		WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read session %d: %w", sessionID, err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		var at int64
		if err := rows.Scan(&m.Role, &m.Content, &at); err != nil {
			return nil, err
		}
		m.At = time.Unix(at, 0)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
