package bootstrap

import (
	"context"
	"log"

	"product-guide-be/internal/config"
	"product-guide-be/internal/controller"
	"product-guide-be/internal/pkg/logger"
	"product-guide-be/internal/repository/memory"
	"product-guide-be/internal/repository/redisstore"
	"product-guide-be/internal/repository/unitofwork"
	"product-guide-be/internal/service"
	"product-guide-be/pkg/embedding"
	"product-guide-be/pkg/llm/factory"
	"product-guide-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	CatalogController controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// CatalogService is exposed for cmd/index to drive imports.
	CatalogService service.ICatalogService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Session Storage (memory by default, redis for multi-instance)
	var sessionRepo store.SessionStore
	if cfg.App.SessionStore == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisstore.NewSessionRepository(rdb, sysLogger)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 5. Services
	embedLogger := logger.NewIsolatedLogger("logs/embedding.log")
	publisherService := service.NewPublisherService(cfg.Ai.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedTopic,
		uowFactory,
		embeddingProvider,
		embedLogger,
	)

	retrievalService := service.NewRetrievalService(uowFactory, embeddingProvider, sysLogger)
	catalogService := service.NewCatalogService(uowFactory, publisherService, sysLogger)
	chatService := service.NewChatService(
		sessionRepo,
		retrievalService,
		llmProvider,
		sysLogger,
		cfg.Ai.RetrievalTopK,
	)

	// 6. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService),
		CatalogController: controller.NewCatalogController(catalogService, retrievalService),

		ConsumerService: consumerService,
		CatalogService:  catalogService,
	}
}
