package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"product-guide-be/internal/config"
	"product-guide-be/internal/pkg/logger"
	"product-guide-be/internal/scraper"
)

// Crawls the storefront and writes the product catalog snapshot that
// cmd/index imports into the database.
func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	s := scraper.New(cfg.Scrape.BaseURL, time.Duration(cfg.Scrape.DelayMs)*time.Millisecond, sysLogger)

	records, err := s.Run()
	if err != nil {
		log.Fatalf("Scrape failed: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Scrape.OutputPath), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode catalog: %v", err)
	}
	if err := os.WriteFile(cfg.Scrape.OutputPath, payload, 0644); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}

	log.Printf("✅ Wrote %d products to %s", len(records), cfg.Scrape.OutputPath)
}
