// Package storage provides SQLite-based persistence for captured first-party
// data, game scores and the tracking-event log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// CaptureEntry is one persisted first-party-data blob, keyed by template and
// placement.
type CaptureEntry struct {
	ID        int64
	Key       string // fpd_<template>_<placement>
	Template  string
	Placement string
	Fields    map[string]string
	CreatedAt time.Time
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// TrackingEntry is one fired tracking URL, kept for the editor's debug view.
type TrackingEntry struct {
	ID        int64
	EventKey  string
	URL       string
	CreatedAt time.Time
}

// capturePayload is the JSON blob stored per capture.
type capturePayload struct {
	Fields    map[string]string `json:"fields"`
	Timestamp int64             `json:"timestamp"`
	Placement string            `json:"placement"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS captures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			template TEXT NOT NULL,
			placement TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_captures_template ON captures(template);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS tracking_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_key TEXT NOT NULL,
			url TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_tracking_event_key ON tracking_events(event_key);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CaptureKey builds the durable key for a template+placement pair.
func CaptureKey(template, placement string) string {
	return fmt.Sprintf("fpd_%s_%s", template, placement)
}

// SaveCapture persists captured first-party data keyed by template and
// placement. A re-capture for the same key replaces the previous blob.
func (s *Store) SaveCapture(template, placement string, fields map[string]string) error {
	payload := capturePayload{
		Fields:    fields,
		Timestamp: time.Now().Unix(),
		Placement: placement,
	}
	blob, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("storage: cannot encode capture: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO captures (key, template, placement, payload) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, created_at = CURRENT_TIMESTAMP`,
		CaptureKey(template, placement), template, placement, string(blob),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save capture: %w", err)
	}
	return nil
}

// Capture retrieves the persisted blob for a template+placement pair.
// The second return is false when nothing was captured yet.
func (s *Store) Capture(template, placement string) (CaptureEntry, bool, error) {
	var e CaptureEntry
	var blob string
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, key, template, placement, payload, created_at
		 FROM captures WHERE key = ?`,
		CaptureKey(template, placement),
	).Scan(&e.ID, &e.Key, &e.Template, &e.Placement, &blob, &createdAt)
	if err == sql.ErrNoRows {
		return CaptureEntry{}, false, nil
	}
	if err != nil {
		return CaptureEntry{}, false, fmt.Errorf("storage: cannot query capture: %w", err)
	}

	var payload capturePayload
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return CaptureEntry{}, false, fmt.Errorf("storage: cannot decode capture: %w", err)
	}
	e.Fields = payload.Fields
	e.CreatedAt = parseDBTime(createdAt)
	return e, true, nil
}

// AllCaptures retrieves every persisted capture, newest first.
func (s *Store) AllCaptures() ([]CaptureEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, key, template, placement, payload, created_at
		 FROM captures ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query captures: %w", err)
	}
	defer rows.Close()

	var entries []CaptureEntry
	for rows.Next() {
		var e CaptureEntry
		var blob string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Key, &e.Template, &e.Placement, &blob, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		var payload capturePayload
		if err := json.Unmarshal([]byte(blob), &payload); err == nil {
			e.Fields = payload.Fields
		}
		e.CreatedAt = parseDBTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseDBTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// RecordTrackingEvent appends a fired tracking URL to the log.
func (s *Store) RecordTrackingEvent(eventKey, url string) error {
	_, err := s.db.Exec(
		"INSERT INTO tracking_events (event_key, url) VALUES (?, ?)",
		eventKey, url,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record tracking event: %w", err)
	}
	return nil
}

// TrackingEvents retrieves the most recent fired tracking URLs.
func (s *Store) TrackingEvents(limit int) ([]TrackingEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, event_key, url, created_at
		 FROM tracking_events
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tracking events: %w", err)
	}
	defer rows.Close()

	var entries []TrackingEntry
	for rows.Next() {
		var e TrackingEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.EventKey, &e.URL, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseDBTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseDBTime handles both time.Time and string datetime representations
// coming back from the driver.
func parseDBTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
