package dto

import "github.com/google/uuid"

// ScrapedProduct mirrors one record of data/products.json as written by
// cmd/scrape and read back by cmd/index.
type ScrapedProduct struct {
	Id          string   `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Bullets     []string `json:"bullets"`
	HowToUse    string   `json:"how_to_use"`
	Ingredients string   `json:"ingredients"`
	Tags        []string `json:"tags"`
}

// ImportSummary reports what a catalog import touched.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Queued  int `json:"queued"`
}

// PublishEmbedProductMessage is the payload on the embed topic.
type PublishEmbedProductMessage struct {
	ProductId uuid.UUID `json:"product_id"`
}
