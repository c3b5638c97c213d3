package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"product-guide-be/internal/bootstrap"
	"product-guide-be/internal/config"
	"product-guide-be/internal/dto"
	"product-guide-be/pkg/database"
)

// Reads the scraped catalog snapshot, upserts it into Postgres and
// embeds every product through the same pipeline the server uses.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx := context.Background()

	// The channel bus drops messages without a subscriber, so the
	// consumer must be running before the import publishes anything.
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start embedding consumer: %v", err)
	}

	payload, err := os.ReadFile(cfg.Scrape.OutputPath)
	if err != nil {
		log.Fatalf("Failed to read catalog snapshot %s: %v", cfg.Scrape.OutputPath, err)
	}

	var products []*dto.ScrapedProduct
	if err := json.Unmarshal(payload, &products); err != nil {
		log.Fatalf("Failed to parse catalog snapshot: %v", err)
	}

	summary, err := container.CatalogService.Import(ctx, products)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Imported catalog: %d created, %d updated, %d queued for embedding", summary.Created, summary.Updated, summary.Queued)

	// Give the in-process consumer time to drain the embed queue.
	drain := time.Duration(summary.Queued)*2*time.Second + 10*time.Second
	log.Printf("Waiting %s for embeddings to finish...", drain)
	time.Sleep(drain)

	log.Println("✅ Indexing run complete")
}
