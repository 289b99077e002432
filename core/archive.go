package core

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Archive keeps a queryable history of events and session metadata in SQLite.
type Archive struct {
	conn *sqlx.DB
}

type eventRow struct {
	Turn        int    `db:"turn"`
	Kind        string `db:"kind"`
	Subject     string `db:"subject"`
	Description string `db:"description"`
	RecordedAt  string `db:"recorded_at"`
}

// OpenArchive opens or creates a SQLite database at the given path.
func OpenArchive(path string) (*Archive, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	conn.SetMaxOpenConns(1)

	a := &Archive{conn: conn}
	if err := a.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.conn.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		turn INTEGER NOT NULL,
		kind TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_turn ON events(turn);
	CREATE INDEX IF NOT EXISTS idx_events_subject ON events(subject);
	`
	_, err := a.conn.Exec(schema)
	return err
}

// SaveEvents appends events in a single transaction.
func (a *Archive) SaveEvents(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := a.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (turn, kind, subject, description, recorded_at) VALUES (?, ?, ?, ?, ?)",
			e.Turn, e.Kind, e.Subject, e.Description, e.Time.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentEvents returns up to limit events, newest first.
func (a *Archive) RecentEvents(limit int) ([]Event, error) {
	var rows []eventRow
	err := a.conn.Select(&rows,
		"SELECT turn, kind, subject, description, recorded_at FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}

// SubjectEvents returns every event about subject, oldest first.
func (a *Archive) SubjectEvents(subject string) ([]Event, error) {
	var rows []eventRow
	err := a.conn.Select(&rows,
		"SELECT turn, kind, subject, description, recorded_at FROM events WHERE subject = ? ORDER BY id",
		subject,
	)
	if err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}

func toEvents(rows []eventRow) []Event {
	events := make([]Event, 0, len(rows))
	for _, r := range rows {
		t, _ := time.Parse(time.RFC3339Nano, r.RecordedAt)
		events = append(events, Event{Time: t, Turn: r.Turn, Kind: r.Kind, Subject: r.Subject, Description: r.Description})
	}
	return events
}

// CountEvents returns the number of archived events.
func (a *Archive) CountEvents() (int, error) {
	var n int
	err := a.conn.Get(&n, "SELECT COUNT(*) FROM events")
	return n, err
}

// SaveMeta stores a key-value pair.
func (a *Archive) SaveMeta(key, value string) error {
	_, err := a.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. The second result is false when the key
// is absent.
func (a *Archive) GetMeta(key string) (string, bool, error) {
	var value string
	err := a.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
