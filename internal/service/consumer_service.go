package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"product-guide-be/internal/dto"
	"product-guide-be/internal/entity"
	"product-guide-be/internal/pkg/logger"
	"product-guide-be/internal/repository/specification"
	"product-guide-be/internal/repository/unitofwork"
	"product-guide-be/pkg/embedding"
	"product-guide-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Chunking tuned for embedding context limits:
// documents are capped at 5000 chars, chunks at 1500 with 200 overlap.
const (
	maxDocumentChars = 5000
	chunkSize        = 1500
	chunkOverlap     = 200
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedProductMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("ConsumerService", "Processing product embedding", map[string]interface{}{"product_id": payload.ProductId})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: payload.ProductId})
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to get product", map[string]interface{}{"product_id": payload.ProductId, "error": err.Error()})
		msg.Nack() // Nack for retriable errors
		return
	}
	if product == nil {
		cs.logger.Warn("ConsumerService", "Product not found, skipping", map[string]interface{}{"product_id": payload.ProductId})
		msg.Ack() // Product deleted? Ack.
		return
	}

	content := buildProductDocument(product)

	chunks := utils.SplitText(content, chunkSize, chunkOverlap)
	cs.logger.Info("ConsumerService", "Document split into chunks", map[string]interface{}{"product_id": payload.ProductId, "chunks": len(chunks)})

	vectors, err := cs.embeddingProvider.GenerateBatch(chunks, embedding.TaskDocument)
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to generate embeddings", map[string]interface{}{"product_id": payload.ProductId, "error": err.Error()})
		msg.Nack()
		return
	}
	if len(vectors) != len(chunks) {
		cs.logger.Error("ConsumerService", "Embedding count mismatch", map[string]interface{}{"product_id": payload.ProductId, "chunks": len(chunks), "vectors": len(vectors)})
		msg.Nack()
		return
	}

	newEmbeddings := make([]*entity.ProductEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		newEmbeddings = append(newEmbeddings, &entity.ProductEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: vectors[i],
			ProductId:      product.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("ConsumerService", "Failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ProductEmbeddingRepository().DeleteByProductId(ctx, product.Id); err != nil {
		cs.logger.Error("ConsumerService", "Failed to delete old embeddings", map[string]interface{}{"product_id": payload.ProductId, "error": err.Error()})
		msg.Nack()
		return
	}

	if len(newEmbeddings) > 0 {
		if err := uow.ProductEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			cs.logger.Error("ConsumerService", "Failed to create embeddings", map[string]interface{}{"product_id": payload.ProductId, "error": err.Error()})
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("ConsumerService", "Failed to commit transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	cs.logger.Info("ConsumerService", "Product indexed", map[string]interface{}{"product_id": payload.ProductId, "chunks": len(newEmbeddings)})
	msg.Ack()
}

// buildProductDocument folds the fields the retriever should match on
// into one block of text. Order matters: title carries the most signal.
func buildProductDocument(product *entity.Product) string {
	var sb strings.Builder
	sb.WriteString(product.Title)
	sb.WriteString("\n\n")
	sb.WriteString(product.Description)
	if len(product.Bullets) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(strings.Join(product.Bullets, "\n"))
	}
	if product.HowToUse != "" {
		sb.WriteString(fmt.Sprintf("\n\nHow to use: %s", product.HowToUse))
	}
	if len(product.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("\n\nTags: %s", strings.Join(product.Tags, ", ")))
	}
	return utils.Truncate(sb.String(), maxDocumentChars)
}
