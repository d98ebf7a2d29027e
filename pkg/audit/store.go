package audit

import (
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// Store persists audit entries to a sqlite database. Summaries are stored as
// JSON so a trail survives the process and can be queried offline.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS audit_entries (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	stage  TEXT NOT NULL,
	input  TEXT,
	output TEXT,
	at     TEXT NOT NULL
);`

// OpenStore opens (creating if needed) a sqlite-backed audit store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit store: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize audit store: %w", err)
	}
	return &Store{db: db}, nil
}

// Record persists one stage entry. Marshal or write failures are swallowed
// after a best-effort insert; auditing must never fail an evaluation.
func (s *Store) Record(stage string, input, output map[string]any) {
	inJSON, err := json.Marshal(input)
	if err != nil {
		inJSON = []byte("{}")
	}
	outJSON, err := json.Marshal(output)
	if err != nil {
		outJSON = []byte("{}")
	}
	s.db.Exec(`INSERT INTO audit_entries (stage, input, output, at) VALUES (?, ?, ?, ?)`,
		stage, string(inJSON), string(outJSON), time.Now().UTC().Format(time.RFC3339Nano))
}

// Entries returns all persisted entries in record order.
func (s *Store) Entries() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT stage, input, output, at FROM audit_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var stage, in, out, at string
		if err := rows.Scan(&stage, &in, &out, &at); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry := Entry{Stage: stage}
		if err := json.Unmarshal([]byte(in), &entry.Input); err != nil {
			entry.Input = nil
		}
		if err := json.Unmarshal([]byte(out), &entry.Output); err != nil {
			entry.Output = nil
		}
		if ts, err := time.Parse(time.RFC3339Nano, at); err == nil {
			entry.At = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
