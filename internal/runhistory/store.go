package runhistory

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"oppwatch/internal/errorwrapper"
	"oppwatch/internal/models"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store records one row per monitor run in a local sqlite database. It is
// observability for the operator, not part of the transition decision: the
// classifier only ever consults the state file.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Entry represents a record in the run_history table.
type Entry struct {
	ID          int64
	StartedAt   time.Time
	FinishedAt  time.Time
	Category    models.TransitionCategory
	Kind        string
	Fingerprint string
	Notified    bool
	ErrorText   string
}

// NewStore opens (creating if needed) the run-history database and ensures
// the schema exists.
func NewStore(dataSourceName string, logger zerolog.Logger) (*Store, error) {
	storeLogger := logger.With().Str("component", "RunHistoryStore").Logger()

	if err := os.MkdirAll(filepath.Dir(dataSourceName), 0755); err != nil {
		return nil, errorwrapper.WrapErrorf(err, "failed to create run history directory for '%s'", dataSourceName)
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, errorwrapper.WrapErrorf(err, "sql.Open failed for '%s'", dataSourceName)
	}

	store := &Store{db: db, logger: storeLogger}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, errorwrapper.WrapError(err, "failed to initialize run history schema")
	}

	storeLogger.Debug().Str("db_path", dataSourceName).Msg("Run history database ready")
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		category TEXT NOT NULL,
		kind TEXT,
		fingerprint TEXT,
		notified INTEGER NOT NULL DEFAULT 0,
		error_text TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_run_history_started_at ON run_history (started_at);
	`
	_, err := s.db.Exec(query)
	return err
}

// RecordRun appends one run entry. Failures here are the caller's to log
// and ignore; run history must never fail a run.
func (s *Store) RecordRun(entry Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO run_history (started_at, finished_at, category, kind, fingerprint, notified, error_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.StartedAt, entry.FinishedAt, string(entry.Category),
		entry.Kind, entry.Fingerprint, entry.Notified, entry.ErrorText,
	)
	return err
}

// RecentRuns returns up to limit entries, newest first.
func (s *Store) RecentRuns(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, category, kind, fingerprint, notified, error_text
		 FROM run_history ORDER BY started_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var category, kind, fingerprint, errorText sql.NullString
		if err := rows.Scan(&entry.ID, &entry.StartedAt, &entry.FinishedAt, &category, &kind, &fingerprint, &entry.Notified, &errorText); err != nil {
			return nil, err
		}
		entry.Category = models.TransitionCategory(category.String)
		entry.Kind = kind.String
		entry.Fingerprint = fingerprint.String
		entry.ErrorText = errorText.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
