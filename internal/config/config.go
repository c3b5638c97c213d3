package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Scrape   ScrapeConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SessionStore       string // "memory" or "redis"
	RedisURL           string
	WebDir             string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	OpenAIKey         string
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string
	OllamaBaseURL     string
	EmbedTopic        string
	RetrievalTopK     int
}

type ScrapeConfig struct {
	BaseURL    string
	OutputPath string
	DelayMs    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
			SessionStore:       getEnv("SESSION_STORE", "memory"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			WebDir:             getEnv("WEB_DIR", "./web"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("OPENAI_MODEL_EMBED", "text-embedding-3-small"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("OPENAI_MODEL_CHAT", "gpt-4o-mini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbedTopic:        getEnv("EMBED_PRODUCT_TOPIC_NAME", "EMBED_PRODUCT"),
			RetrievalTopK:     getEnvAsInt("RETRIEVAL_TOP_K", 5),
		},
		Scrape: ScrapeConfig{
			BaseURL:    getEnv("BASE_URL", "https://ortahaus.com"),
			OutputPath: getEnv("SCRAPE_OUTPUT", "data/products.json"),
			DelayMs:    getEnvAsInt("SCRAPE_DELAY_MS", 200),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
