package database

import (
	"database/sql"
	"fmt"
)

const createVerses = `
CREATE TABLE IF NOT EXISTS verses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	chapter INTEGER NOT NULL,
	verse INTEGER NOT NULL,
	sanskrit_verse_telugu_script TEXT,
	telugu_verse TEXT,
	telugu_meaning TEXT,
	polished_telugu_verse TEXT,
	polished_telugu_meaning TEXT,
	telugu_description TEXT,
	UNIQUE(chapter, verse)
);`

// textColumns lists the nullable text columns of the verses table. Older
// database files predate some of them, so Migrate adds whichever are
// missing by name.
var textColumns = []struct {
	Name string
	Type string
}{
	{"sanskrit_verse_telugu_script", "TEXT"},
	{"telugu_verse", "TEXT"},
	{"telugu_meaning", "TEXT"},
	{"polished_telugu_verse", "TEXT"},
	{"polished_telugu_meaning", "TEXT"},
	{"telugu_description", "TEXT"},
}

// Migrate creates the verses table when absent and adds any missing text
// columns to an existing one. Additive only, never touches data, safe to
// run on every process start.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createVerses); err != nil {
		return fmt.Errorf("create verses table: %w", err)
	}

	existing, err := tableColumns(db, "verses")
	if err != nil {
		return err
	}

	for _, col := range textColumns {
		if existing[col.Name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE verses ADD COLUMN %s %s", col.Name, col.Type)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("add column %s: %w", col.Name, err)
		}
	}
	return nil
}

func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table_info: %w", err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return cols, nil
}
