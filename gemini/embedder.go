package gemini

import (
	"context"

	"github.com/hransun/coursechat"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is the embedding model used when none is configured.
const DefaultEmbeddingModel = "gemini-embedding-001"

// maxEmbedBatch is the largest number of texts sent in one EmbedContent call.
const maxEmbedBatch = 100

// Ensure Embedder implements coursechat.Embedder at compile time.
var _ coursechat.Embedder = (*Embedder)(nil)

// Embedder implements coursechat.Embedder using the Gemini embedding API.
// Requests are rate limited with a token bucket so batch ingestion stays
// inside the API quota.
type Embedder struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel; a non-positive rps disables rate limiting.
func NewEmbedder(client *genai.Client, model string, rps float64) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Embedder{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// EmbedTexts embeds texts in batches, preserving input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxEmbedBatch {
		end := start + maxEmbedBatch
		if end > len(texts) {
			end = len(texts)
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		contents := make([]*genai.Content, 0, end-start)
		for _, text := range texts[start:end] {
			contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
		}

		result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
		if err != nil {
			return nil, coursechat.Errorf(coursechat.EUNAVAILABLE, "gemini embed content: %v", err)
		}
		if result == nil {
			return nil, coursechat.Errorf(coursechat.EINTERNAL, "gemini returned nil embedding result")
		}
		if len(result.Embeddings) != end-start {
			return nil, coursechat.Errorf(coursechat.EINTERNAL,
				"gemini returned %d embeddings for %d texts", len(result.Embeddings), end-start)
		}

		for _, embedding := range result.Embeddings {
			vectors = append(vectors, embedding.Values)
		}
	}

	return vectors, nil
}
