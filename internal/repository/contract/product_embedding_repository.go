package contract

import (
	"context"

	"product-guide-be/internal/entity"
	"product-guide-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredProductEmbedding pairs an embedding row with its cosine
// similarity against the query vector.
type ScoredProductEmbedding struct {
	Embedding  *entity.ProductEmbedding
	Similarity float64
}

type ProductEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ProductEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.ProductEmbedding) error
	DeleteByProductId(ctx context.Context, productId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProductEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredProductEmbedding, error)
}
