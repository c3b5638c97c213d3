package service

import (
	"context"

	"product-guide-be/internal/entity"
	"product-guide-be/internal/pkg/logger"
	"product-guide-be/internal/repository/specification"
	"product-guide-be/internal/repository/unitofwork"
	"product-guide-be/pkg/embedding"

	"github.com/google/uuid"
)

// RetrievalStatus tells the caller exactly what happened. A search that
// ran and found nothing is not the same as a search that could not run,
// and the dialogue layer words its reply differently for each.
type RetrievalStatus int

const (
	RetrievalFound RetrievalStatus = iota
	RetrievalEmpty
	RetrievalUnavailable
)

type ProductMatch struct {
	Product    *entity.Product
	Similarity float64
}

type RetrievalResult struct {
	Status  RetrievalStatus
	Matches []*ProductMatch
}

type IRetrievalService interface {
	Search(ctx context.Context, query string, topK int) *RetrievalResult
}

type retrievalService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewRetrievalService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

// Search embeds the query and returns the closest products.
// Embedding or database failures come back as RetrievalUnavailable,
// never as an error: the chat flow must degrade, not abort.
func (rs *retrievalService) Search(ctx context.Context, query string, topK int) *RetrievalResult {
	if topK <= 0 {
		topK = 5
	}

	res, err := rs.embeddingProvider.Generate(query, embedding.TaskQuery)
	if err != nil {
		rs.logger.Error("RetrievalService", "Failed to embed query", map[string]interface{}{"error": err.Error()})
		return &RetrievalResult{Status: RetrievalUnavailable}
	}

	uow := rs.uowFactory.NewUnitOfWork(ctx)

	// Products are chunked, so over-fetch chunks and keep the best
	// scoring chunk per product before cutting to topK.
	scored, err := uow.ProductEmbeddingRepository().SearchSimilarWithScore(ctx, res.Embedding.Values, topK*4)
	if err != nil {
		rs.logger.Error("RetrievalService", "Similarity search failed", map[string]interface{}{"error": err.Error()})
		return &RetrievalResult{Status: RetrievalUnavailable}
	}
	if len(scored) == 0 {
		return &RetrievalResult{Status: RetrievalEmpty}
	}

	type best struct {
		productId  uuid.UUID
		similarity float64
	}
	seen := make(map[uuid.UUID]bool)
	ranked := make([]best, 0, topK)
	for _, s := range scored {
		if seen[s.Embedding.ProductId] {
			continue
		}
		seen[s.Embedding.ProductId] = true
		ranked = append(ranked, best{productId: s.Embedding.ProductId, similarity: s.Similarity})
		if len(ranked) == topK {
			break
		}
	}

	matches := make([]*ProductMatch, 0, len(ranked))
	for _, r := range ranked {
		product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: r.productId})
		if err != nil {
			rs.logger.Error("RetrievalService", "Failed to load matched product", map[string]interface{}{"product_id": r.productId, "error": err.Error()})
			return &RetrievalResult{Status: RetrievalUnavailable}
		}
		if product == nil {
			// Embedding row outlived its product; skip it.
			continue
		}
		matches = append(matches, &ProductMatch{Product: product, Similarity: r.similarity})
	}

	if len(matches) == 0 {
		return &RetrievalResult{Status: RetrievalEmpty}
	}
	return &RetrievalResult{Status: RetrievalFound, Matches: matches}
}
