package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a read-only catalog snapshot scraped from the storefront.
// The chat layer never mutates it.
type Product struct {
	Id          uuid.UUID
	SourceId    string // canonical product URL, stable across rescrapes
	Title       string
	Description string
	Price       string
	URL         string
	Image       string
	Bullets     []string
	HowToUse    string
	Ingredients string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ProductEmbedding is one embedded chunk of a product document.
type ProductEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	ProductId      uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
