package service

import (
	"context"
	"encoding/json"
	"time"

	"product-guide-be/internal/dto"
	"product-guide-be/internal/entity"
	"product-guide-be/internal/pkg/logger"
	"product-guide-be/internal/repository/specification"
	"product-guide-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICatalogService interface {
	Import(ctx context.Context, products []*dto.ScrapedProduct) (*dto.ImportSummary, error)
	Count(ctx context.Context) (int64, error)
}

type catalogService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewCatalogService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	logger logger.ILogger,
) ICatalogService {
	return &catalogService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           logger,
	}
}

// Import upserts scraped records by source id and queues each touched
// product for (re)embedding. Existing rows keep their primary key so
// stale embeddings can be replaced in place.
func (c *catalogService) Import(ctx context.Context, products []*dto.ScrapedProduct) (*dto.ImportSummary, error) {
	summary := &dto.ImportSummary{}
	uow := c.uowFactory.NewUnitOfWork(ctx)

	for _, scraped := range products {
		existing, err := uow.ProductRepository().FindOne(ctx, specification.BySourceId{SourceId: scraped.Id})
		if err != nil {
			return nil, err
		}

		now := time.Now()
		var product *entity.Product
		if existing != nil {
			product = existing
			product.Title = scraped.Title
			product.Description = scraped.Description
			product.Price = scraped.Price
			product.URL = scraped.URL
			product.Image = scraped.Image
			product.Bullets = scraped.Bullets
			product.HowToUse = scraped.HowToUse
			product.Ingredients = scraped.Ingredients
			product.Tags = scraped.Tags
			product.UpdatedAt = &now

			if err := uow.ProductRepository().Update(ctx, product); err != nil {
				return nil, err
			}
			summary.Updated++
		} else {
			product = &entity.Product{
				Id:          uuid.New(),
				SourceId:    scraped.Id,
				Title:       scraped.Title,
				Description: scraped.Description,
				Price:       scraped.Price,
				URL:         scraped.URL,
				Image:       scraped.Image,
				Bullets:     scraped.Bullets,
				HowToUse:    scraped.HowToUse,
				Ingredients: scraped.Ingredients,
				Tags:        scraped.Tags,
				CreatedAt:   now,
			}
			if err := uow.ProductRepository().Create(ctx, product); err != nil {
				return nil, err
			}
			summary.Created++
		}

		msgPayload := dto.PublishEmbedProductMessage{
			ProductId: product.Id,
		}
		msgJson, err := json.Marshal(msgPayload)
		if err != nil {
			return nil, err
		}
		if err := c.publisherService.Publish(ctx, msgJson); err != nil {
			return nil, err
		}
		summary.Queued++

		c.logger.Info("CatalogService", "Product imported", map[string]interface{}{
			"source_id": scraped.Id,
			"title":     scraped.Title,
		})
	}

	return summary, nil
}

func (c *catalogService) Count(ctx context.Context) (int64, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.ProductRepository().Count(ctx)
}
