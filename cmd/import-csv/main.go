package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"geethahub/pkg/database"
	"geethahub/pkg/utils"
)

func main() {
	var (
		in     = flag.String("in", "data/verses.csv", "input CSV path")
		dbPath = flag.String("db", "", "database path (defaults to GEETHAHUB_DB_PATH or geetha_telugu.db)")
	)
	flag.Parse()

	utils.LoadDotenv()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := database.DefaultConfig()
	if *dbPath != "" {
		cfg.Path = *dbPath
	}
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	n, err := importVerses(ctx, db, *in)
	if err != nil {
		log.Fatalf("import verses failed: %v", err)
	}
	log.Printf("✅ imported %d verses from %s", n, *in)
}

// importVerses upserts verses from a CSV produced by export-csv. Rows
// without positive chapter and verse numbers are skipped, and empty text
// cells import as NULL.
func importVerses(ctx context.Context, db *sql.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO verses (chapter, verse, sanskrit_verse_telugu_script, telugu_verse,
		  telugu_meaning, polished_telugu_verse, polished_telugu_meaning, telugu_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chapter, verse) DO UPDATE SET
		  sanskrit_verse_telugu_script = excluded.sanskrit_verse_telugu_script,
		  telugu_verse = excluded.telugu_verse,
		  telugu_meaning = excluded.telugu_meaning,
		  polished_telugu_verse = excluded.polished_telugu_verse,
		  polished_telugu_meaning = excluded.polished_telugu_meaning,
		  telugu_description = excluded.telugu_description
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(row) == 0 {
			continue
		}

		chapter, err := strconv.Atoi(valueAt(header, row, "chapter"))
		if err != nil || chapter <= 0 {
			continue
		}
		verseNum, err := strconv.Atoi(valueAt(header, row, "verse"))
		if err != nil || verseNum <= 0 {
			continue
		}

		if _, err := stmt.ExecContext(
			ctx,
			chapter,
			verseNum,
			nullString(valueAt(header, row, "sanskrit_verse_telugu_script")),
			nullString(valueAt(header, row, "telugu_verse")),
			nullString(valueAt(header, row, "telugu_meaning")),
			nullString(valueAt(header, row, "polished_telugu_verse")),
			nullString(valueAt(header, row, "polished_telugu_meaning")),
			nullString(valueAt(header, row, "telugu_description")),
		); err != nil {
			return count, fmt.Errorf("upsert chapter %d, verse %d: %w", chapter, verseNum, err)
		}
		count++
	}

	return count, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
