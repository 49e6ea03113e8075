package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfmetrics/bookdash/internal/api"
	"github.com/shelfmetrics/bookdash/internal/config"
	"github.com/shelfmetrics/bookdash/internal/dataset"
	"github.com/shelfmetrics/bookdash/internal/metrics"
	"github.com/shelfmetrics/bookdash/internal/storage"
)

func main() {
	// Command-line flags
	urlFlag := flag.String("url", "", "Server bind address (e.g., :8080 or 0.0.0.0:8080)")
	dataFlag := flag.String("data", "", "Path to the dataset CSV (overrides BOOKDASH_DATASET)")
	flag.Parse()

	// Configuration
	cfg := config.Load()
	if *dataFlag != "" {
		cfg.Dataset.Path = *dataFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Determine bind address: flag takes precedence, then env, then default
	bindAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	if *urlFlag != "" {
		bindAddr = *urlFlag
	}

	// Load the dataset. A missing or malformed file is a startup failure.
	result, err := dataset.LoadFile(cfg.Dataset.Path)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	if result.Skipped > 0 {
		log.Printf("Dataset: skipped %d invalid rows", result.Skipped)
	}

	// Initialize the in-memory store
	db, err := storage.NewDatabase()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.LoadBooks(result.Books); err != nil {
		log.Fatalf("Failed to populate database: %v", err)
	}

	// Metrics and handlers
	m := metrics.NewMetrics()
	handler, err := api.NewHandler(db, m, cfg.Cache.Size, cfg.Dataset.TopBooks)
	if err != nil {
		log.Fatalf("Failed to initialize handlers: %v", err)
	}

	// Set up Gin router
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(corsMiddleware())
	r.Use(m.Middleware())

	// Health check and metrics
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// API routes
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("", handler.APIInfo)
		apiGroup.GET("/books", handler.ListBooks)
		apiGroup.GET("/genres", handler.GetGenres)
		apiGroup.GET("/dashboard", handler.GetDashboard)
		apiGroup.GET("/export", handler.ExportCSV)
	}

	// Serve the dashboard page
	r.Static("/static", cfg.Server.StaticDir)
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(cfg.Server.StaticDir, "index.html"))
	})

	// Start server
	srv := &http.Server{
		Addr:         bindAddr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	log.Printf("Bookdash serving %d books on %s", len(result.Books), bindAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
