package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"geethahub/internal/gemini"
	"geethahub/internal/middleware"
	"geethahub/internal/verse"
	"geethahub/pkg/database"
	"geethahub/pkg/utils"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address for the HTTP API")
	flag.Parse()

	utils.LoadDotenv()

	logFile, err := utils.SetupLogFile("app.log")
	if err != nil {
		log.Fatalf("log file setup failed: %v", err)
	}
	defer logFile.Close()
	gin.DefaultWriter = io.MultiWriter(os.Stdout, logFile)

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(middleware.RequestID(), middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
	})

	// Verses (public)
	gcfg := utils.LoadGeminiConfig()
	client := gemini.NewClient(gemini.Config{
		APIKey:  gcfg.APIKey,
		Model:   gcfg.Model,
		BaseURL: gcfg.BaseURL,
	})
	repo := verse.NewRepo(db)
	handler := verse.NewHandler(repo, client)
	handler.RegisterRoutes(router.Group("/"))

	httpSrv := &http.Server{
		Addr:    *addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", *addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
