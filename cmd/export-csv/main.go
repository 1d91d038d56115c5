package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"geethahub/internal/verse"
	"geethahub/pkg/database"
	"geethahub/pkg/utils"
)

func main() {
	var (
		out    = flag.String("out", "data/verses.csv", "output CSV path")
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

	n, err := exportVerses(ctx, verse.NewRepo(db), *out)
	if err != nil {
		log.Fatalf("export verses failed: %v", err)
	}
	log.Printf("✅ exported %d verses to %s", n, *out)
}

// exportVerses writes every stored verse to a CSV file, one row per verse
// in chapter order. NULL columns come out as empty cells.
func exportVerses(ctx context.Context, repo *verse.Repo, outPath string) (int, error) {
	rows, err := repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"chapter", "verse"}
	for _, field := range verse.TextFields {
		header = append(header, field.Column)
	}
	if err := w.Write(header); err != nil {
		return 0, err
	}

	for _, rec := range rows {
		row := []string{strconv.Itoa(rec.Chapter), strconv.Itoa(rec.Verse)}
		for _, field := range verse.TextFields {
			row = append(row, textOrEmpty(field.Value(&rec)))
		}
		if err := w.Write(row); err != nil {
			return 0, err
		}
	}

	w.Flush()
	return len(rows), w.Error()
}

func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
