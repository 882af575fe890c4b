package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ytmeta/internal/config"
)

// Entry is one recorded resolution.
type Entry struct {
	ID         int64
	Path       string
	VideoID    string
	Kind       string
	Title      string
	ResolvedAt time.Time
}

// Store persists resolution history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := cfg.HistoryPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one resolution row.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	resolvedAt := entry.ResolvedAt
	if resolvedAt.IsZero() {
		resolvedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO resolutions (path, video_id, kind, title, resolved_at)
         VALUES (?, ?, ?, ?, ?)`,
		entry.Path,
		entry.VideoID,
		strings.ToLower(entry.Kind),
		entry.Title,
		resolvedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert resolution: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, path, video_id, kind, title, resolved_at
         FROM resolutions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query resolutions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var resolvedAt string
		if err := rows.Scan(&entry.ID, &entry.Path, &entry.VideoID, &entry.Kind, &entry.Title, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		parsed, parseErr := time.Parse(time.RFC3339Nano, resolvedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parse resolved_at: %w", parseErr)
		}
		entry.ResolvedAt = parsed
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resolutions: %w", err)
	}
	return entries, nil
}
