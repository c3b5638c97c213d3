package embedding

// TaskDocument and TaskQuery distinguish indexing-time from query-time
// embedding calls for providers that care about the distinction.
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// EmbeddingProvider defines the interface for generating text embeddings.
// GenerateBatch exists for indexing workloads; providers without a batch
// endpoint loop per text.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
	GenerateBatch(texts []string, taskType string) ([][]float32, error)
}
