package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geethahub/internal/batch"
	"geethahub/internal/gemini"
	"geethahub/internal/verse"
	"geethahub/pkg/database"
	"geethahub/pkg/utils"
)

func main() {
	var (
		delay  = flag.Duration("delay", batch.DefaultEnhanceDelay, "pause between Gemini calls")
		dbPath = flag.String("db", "", "database path (defaults to GEETHAHUB_DB_PATH or geetha_telugu.db)")
	)
	flag.Parse()

	utils.LoadDotenv()

	cfg := database.DefaultConfig()
	if *dbPath != "" {
		cfg.Path = *dbPath
	}
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	gcfg := utils.LoadGeminiConfig()
	client := gemini.NewClient(gemini.Config{
		APIKey:  gcfg.APIKey,
		Model:   gcfg.Model,
		BaseURL: gcfg.BaseURL,
	})

	e := batch.NewEnhancer(verse.NewRepo(db), client)
	e.Delay = *delay

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("[enhance] %s received, stopping after the current verse", sig)
		cancel()
	}()

	start := time.Now()
	stats, err := e.Run(ctx)
	summary := fmt.Sprintf("%d enhanced, %d skipped, %d failed in %s",
		stats.Enhanced, stats.Skipped, stats.Failed, time.Since(start).Round(time.Second))
	if err != nil {
		log.Fatalf("enhance stopped early (%s): %v", summary, err)
	}
	log.Printf("✅ enhance finished: %s", summary)
}
