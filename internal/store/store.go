// Package store persists per-persona history collections, the shared
// exam schedule, and uploaded materials in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"personalearn/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		key TEXT PRIMARY KEY,
		data TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS materials (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		kind TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func historyKey(p model.Persona) string {
	return "history_" + string(p)
}

const examsKey = "exams_global"

// readCollection unmarshals the collection stored under key into v.
// A missing key leaves v untouched, so callers start from an empty
// collection.
func (s *Store) readCollection(key string, v any) error {
	var data string
	err := s.db.QueryRow(`SELECT data FROM collections WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("decode collection %s: %w", key, err)
	}
	return nil
}

// writeCollection replaces the whole collection stored under key.
func (s *Store) writeCollection(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO collections (key, data) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	return nil
}

// History returns the persona's saved items, newest first.
func (s *Store) History(p model.Persona) ([]model.HistoryItem, error) {
	var items []model.HistoryItem
	if err := s.readCollection(historyKey(p), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.HistoryItem{}
	}
	return items, nil
}

// AppendHistory prepends an item to the persona's history and rewrites
// the collection.
func (s *Store) AppendHistory(p model.Persona, item model.HistoryItem) error {
	items, err := s.History(p)
	if err != nil {
		return err
	}
	items = append([]model.HistoryItem{item}, items...)
	return s.writeCollection(historyKey(p), items)
}

// RemoveHistory deletes the item with the given id from the persona's
// history. The order of the remaining items is unchanged; removing an
// unknown id is not an error.
func (s *Store) RemoveHistory(p model.Persona, id string) error {
	items, err := s.History(p)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return s.writeCollection(historyKey(p), kept)
}

// Exams returns the shared exam schedule in insertion order.
func (s *Store) Exams() ([]model.Exam, error) {
	var exams []model.Exam
	if err := s.readCollection(examsKey, &exams); err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return exams, nil
}

// SaveExam appends an exam to the shared schedule and rewrites it.
func (s *Store) SaveExam(e model.Exam) error {
	exams, err := s.Exams()
	if err != nil {
		return err
	}
	exams = append(exams, e)
	return s.writeCollection(examsKey, exams)
}

// SaveMaterial stores an uploaded material. Materials are immutable
// after insert.
func (s *Store) SaveMaterial(ctx context.Context, m model.Material) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO materials (id, title, kind, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Kind, m.Content, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save material %s: %w", m.ID, err)
	}
	return nil
}

// Materials returns all stored materials, newest first.
func (s *Store) Materials(ctx context.Context) ([]model.Material, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, kind, content, created_at FROM materials ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	materials := []model.Material{}
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.ID, &m.Title, &m.Kind, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// MaterialCount returns the number of stored materials.
func (s *Store) MaterialCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM materials`).Scan(&count)
	return count, err
}
