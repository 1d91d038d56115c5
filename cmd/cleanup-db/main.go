package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"geethahub/internal/batch"
	"geethahub/internal/verse"
	"geethahub/pkg/database"
	"geethahub/pkg/utils"
)

func main() {
	var (
		yes    = flag.Bool("yes", false, "skip the confirmation prompt")
		dbPath = flag.String("db", "", "database path (defaults to GEETHAHUB_DB_PATH or geetha_telugu.db)")
	)
	flag.Parse()

	utils.LoadDotenv()

	cfg := database.DefaultConfig()
	if *dbPath != "" {
		cfg.Path = *dbPath
	}

	if !*yes && !confirm(cfg.Path) {
		log.Println("cleanup cancelled")
		return
	}

	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	stats, err := batch.NewCleaner(verse.NewRepo(db)).Run(context.Background())
	if err != nil {
		log.Fatalf("cleanup failed: %v", err)
	}
	log.Printf("✅ cleanup finished: %d rows touched, %d columns cleaned, %d failed",
		stats.Rows, stats.Columns, stats.Failed)
}

// confirm warns that the run rewrites stored text and asks for an explicit
// yes on stdin.
func confirm(path string) bool {
	fmt.Printf("WARNING: this rewrites text columns in %s. Back up the file before proceeding.\n", path)
	fmt.Print("Type 'yes' to continue with database cleanup: ")

	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.ToLower(strings.TrimSpace(line)) == "yes"
}
