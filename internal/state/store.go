package state

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// schema creates the settings table. One row per key.
const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Setting keys mirrored to durable storage on every change and read back
// only at cold start.
const (
	keyFunction    = "selected_function"
	keyPathIndex   = "selected_path"
	keyHideUnwind  = "hide_unwind_edges"
	keyHideStorage = "hide_storage_stmts"
)

// Store persists selection snapshots to SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenStore creates or opens the settings database under dir.
func OpenStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(dir, "settings.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening settings database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key, and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, true, nil
}

// Put writes the value for key, replacing any previous one.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// put is the fire-and-forget write used by the Save methods: persistence
// failures are logged and never interrupt the session.
func (s *Store) put(key, value string) {
	if err := s.Put(key, value); err != nil {
		s.logger.Warn("persisting setting failed", "key", key, "error", err)
	}
}

// SaveFunction mirrors the selected function.
func (s *Store) SaveFunction(fn string) {
	s.put(keyFunction, fn)
}

// SavePathIndex mirrors the selected path index. NoPath clears it.
func (s *Store) SavePathIndex(idx int) {
	if idx == NoPath {
		s.put(keyPathIndex, "")
		return
	}
	s.put(keyPathIndex, strconv.Itoa(idx))
}

// HasToggles reports whether a toggle snapshot was ever persisted. A cold
// start with no snapshot takes its display defaults from the config instead.
func (s *Store) HasToggles() bool {
	_, ok, err := s.Get(keyHideUnwind)
	return err == nil && ok
}

// SaveToggles mirrors the display toggles.
func (s *Store) SaveToggles(hideUnwind, hideStorage bool) {
	s.put(keyHideUnwind, strconv.FormatBool(hideUnwind))
	s.put(keyHideStorage, strconv.FormatBool(hideStorage))
}

// Load seeds a Selection from the persisted snapshot. Missing or malformed
// values keep their defaults; this runs once at cold start and never again
// mid-session.
func (s *Store) Load() Selection {
	sel := NewSelection()

	if v, ok, err := s.Get(keyFunction); err == nil && ok {
		sel.Function = v
	}
	if v, ok, err := s.Get(keyPathIndex); err == nil && ok && v != "" {
		if idx, err := strconv.Atoi(v); err == nil && idx >= 0 {
			sel.PathIndex = idx
		}
	}
	if v, ok, err := s.Get(keyHideUnwind); err == nil && ok {
		sel.HideUnwindEdges = v == "true"
	}
	if v, ok, err := s.Get(keyHideStorage); err == nil && ok {
		sel.HideStorageStmts = v == "true"
	}
	return sel
}
