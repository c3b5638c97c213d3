package embedding

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// batchLimit caps the number of inputs sent per embeddings request.
const batchLimit = 64

// OpenAIProvider implements EmbeddingProvider on the OpenAI embeddings
// API (text-embedding-3-small, 1536 dimensions).
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.EmbeddingModel(model),
	}
}

func (p *OpenAIProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	// taskType is kept for interface compatibility; OpenAI does not
	// distinguish document and query embeddings.
	vectors, err := p.GenerateBatch([]string{text}, taskType)
	if err != nil {
		return nil, err
	}
	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{Values: vectors[0]},
	}, nil
}

func (p *OpenAIProvider) GenerateBatch(texts []string, taskType string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += batchLimit {
		end := start + batchLimit
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := p.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
			Model: p.model,
			Input: texts[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("openai embeddings: %w", err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("openai embeddings: got %d vectors for %d inputs", len(resp.Data), end-start)
		}

		for _, d := range resp.Data {
			out = append(out, d.Embedding)
		}
	}

	return out, nil
}
