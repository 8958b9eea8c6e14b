// Package practicelog persists generated practice sheets to SQLite.
//
// This is an outer layer: the computation engine itself performs no I/O
// and never imports this package. Only the CLI writes or reads the log.
package practicelog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bagpyp/fretwork/internal/progression"
)

//go:embed schema.sql
var schemaSQL string

// Session is one saved practice sheet: the display context plus the ranked
// progressions that were recommended for it.
type Session struct {
	ID           string
	CreatedAt    time.Time
	Key          string
	Scale        string
	Mode         string
	Progressions []progression.PracticeProgression
}

// Store provides durable storage for practice sessions.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path, applying
// pragmas and the schema. SQLite supports one writer at a time, so the
// connection pool is capped at a single connection. Idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSession writes a session and its progressions in one transaction.
// A missing session id is assigned a fresh UUID; the assigned id is
// returned.
func (s *Store) SaveSession(ctx context.Context, session Session) (string, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at, key, scale, mode) VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.CreatedAt.UTC().Format(time.RFC3339), session.Key, session.Scale, session.Mode)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	for i, p := range session.Progressions {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO session_progressions
			 (session_id, position, progression_id, title, numerals, chord_names, score)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			session.ID, i, p.ID, p.Title, p.Numerals, p.ChordNames, p.Score)
		if err != nil {
			return "", fmt.Errorf("insert progression %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return session.ID, nil
}

// GetSession reads one session with its progressions in rank order.
// Returns sql.ErrNoRows when the id is unknown.
func (s *Store) GetSession(ctx context.Context, id string) (Session, error) {
	var session Session
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, key, scale, mode FROM sessions WHERE id = ?`, id).
		Scan(&session.ID, &createdAt, &session.Key, &session.Scale, &session.Mode)
	if err != nil {
		return Session{}, err
	}
	session.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Session{}, fmt.Errorf("parse created_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT progression_id, title, numerals, chord_names, score
		 FROM session_progressions WHERE session_id = ? ORDER BY position`, id)
	if err != nil {
		return Session{}, fmt.Errorf("query progressions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p progression.PracticeProgression
		if err := rows.Scan(&p.ID, &p.Title, &p.Numerals, &p.ChordNames, &p.Score); err != nil {
			return Session{}, fmt.Errorf("scan progression: %w", err)
		}
		session.Progressions = append(session.Progressions, p)
	}
	return session, rows.Err()
}

// ListSessions returns session headers (no progressions), newest first.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, key, scale, mode FROM sessions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var session Session
		var createdAt string
		if err := rows.Scan(&session.ID, &createdAt, &session.Key, &session.Scale, &session.Mode); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if session.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, session)
	}
	return out, rows.Err()
}
