package gemini

import (
	"context"

	"github.com/hransun/coursechat"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// Ensure TokenCounter implements coursechat.TokenCounter at compile time.
var _ coursechat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens with the local Gemini tokenizer. Counting
// happens entirely in-process; no API calls are made.
type TokenCounter struct {
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer data for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, coursechat.Errorf(coursechat.EINTERNAL, "load tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{local: local}, nil
}

// CountTokens returns the number of tokens in text. Empty text counts as
// zero without touching the tokenizer.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.local.CountTokens([]*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}, nil)
	if err != nil {
		return 0, coursechat.Errorf(coursechat.EINTERNAL, "count tokens: %v", err)
	}

	return int(result.TotalTokens), nil
}
