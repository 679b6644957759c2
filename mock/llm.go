package mock

import (
	"context"

	"github.com/hransun/coursechat"
)

var _ coursechat.ChatClient = (*ChatClient)(nil)

// ChatClient is a mock implementation of coursechat.ChatClient.
type ChatClient struct {
	GenerateFn func(ctx context.Context, req coursechat.ChatRequest) (*coursechat.LLMResponse, error)
}

func (c *ChatClient) Generate(ctx context.Context, req coursechat.ChatRequest) (*coursechat.LLMResponse, error) {
	return c.GenerateFn(ctx, req)
}

var _ coursechat.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of coursechat.Embedder.
type Embedder struct {
	EmbedTextsFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedTextsFn(ctx, texts)
}

var _ coursechat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of coursechat.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
